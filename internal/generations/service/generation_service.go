package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/desainin/desainin-backend/internal/generations/domain"
	projdomain "github.com/desainin/desainin-backend/internal/projects/domain"
	"github.com/desainin/desainin-backend/pkg/logger"
)

// Store is the persistence surface for generations.
type Store interface {
	Insert(ctx context.Context, g *domain.Generation) error
	ListByProject(ctx context.Context, projectID string) ([]domain.Generation, error)
}

// ProjectStore resolves project ownership. Satisfied by the projects
// repository.
type ProjectStore interface {
	GetByID(ctx context.Context, id string) (*projdomain.Project, error)
}

// Service stores and lists design artifacts for owned projects. The same
// auth -> validate -> store ordering as the project operations applies.
type Service struct {
	store    Store
	projects ProjectStore
}

func NewService(store Store, projects ProjectStore) *Service {
	return &Service{store: store, projects: projects}
}

// Add records a new generation for the project, using the next version.
func (s *Service) Add(ctx context.Context, userID, projectID, htmlCode string) (*domain.Generation, error) {
	if userID == "" {
		return nil, projdomain.ErrUnauthenticated
	}
	if strings.TrimSpace(projectID) == "" {
		return nil, projdomain.NewValidationError(projdomain.MsgInvalidID)
	}
	if strings.TrimSpace(htmlCode) == "" {
		return nil, projdomain.NewValidationError(domain.MsgEmptyHTML)
	}

	if err := s.checkOwnership(ctx, userID, projectID); err != nil {
		return nil, err
	}

	g := &domain.Generation{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		HTMLCode:  htmlCode,
	}
	if err := s.store.Insert(ctx, g); err != nil {
		logger.L().Error("generation insert failed", zap.String("project_id", projectID), zap.Error(err))
		return nil, err
	}

	logger.L().Info("generation stored",
		zap.String("project_id", projectID),
		zap.Int("version", g.Version))
	return g, nil
}

// List returns the project's generations, newest version first.
func (s *Service) List(ctx context.Context, userID, projectID string) ([]domain.Generation, error) {
	if userID == "" {
		return nil, projdomain.ErrUnauthenticated
	}
	if strings.TrimSpace(projectID) == "" {
		return nil, projdomain.NewValidationError(projdomain.MsgInvalidID)
	}

	if err := s.checkOwnership(ctx, userID, projectID); err != nil {
		return nil, err
	}

	return s.store.ListByProject(ctx, projectID)
}

func (s *Service) checkOwnership(ctx context.Context, userID, projectID string) error {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return projdomain.ErrAccessDenied
	}
	return nil
}

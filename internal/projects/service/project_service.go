package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/desainin/desainin-backend/internal/projects/domain"
	"github.com/desainin/desainin-backend/pkg/logger"
)

// Store is the persistence surface the service needs. Keeping it an
// interface makes the operations testable with fakes.
type Store interface {
	Insert(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	UpdateTitle(ctx context.Context, id, title string) (string, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Project, error)
}

// ViewCache mirrors project records for fast workspace loads. A nil cache
// disables caching entirely; cache failures never fail an operation.
type ViewCache interface {
	Get(ctx context.Context, id string) (*domain.Project, error)
	Set(ctx context.Context, p *domain.Project) error
	Invalidate(ctx context.Context, id string) error
}

// MinPromptRunes and MinTitleRunes are the input constraints of the
// create and rename operations.
const (
	MinPromptRunes = 10
	MinTitleRunes  = 3
)

// Service implements the project lifecycle operations. Every operation
// checks authentication strictly before input validation, and validation
// strictly before any store access.
type Service struct {
	store Store
	cache ViewCache
}

func NewService(store Store, cache ViewCache) *Service {
	return &Service{store: store, cache: cache}
}

// Create validates the prompt and type, derives the initial title and
// inserts one project row. The returned project carries the generated id.
func (s *Service) Create(ctx context.Context, userID, prompt string, typ domain.ProjectType) (*domain.Project, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if utf8.RuneCountInString(prompt) < MinPromptRunes {
		return nil, domain.NewValidationError(domain.MsgPromptTooShort)
	}
	if !typ.Valid() {
		return nil, domain.NewValidationError(domain.MsgInvalidType)
	}

	p := &domain.Project{
		ID:     uuid.NewString(),
		UserID: userID,
		Title:  domain.DeriveTitle(prompt),
		Prompt: prompt,
		Type:   typ,
	}
	if err := s.store.Insert(ctx, p); err != nil {
		logger.L().Error("project insert failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	logger.L().Info("project created",
		zap.String("project_id", p.ID),
		zap.String("user_id", userID),
		zap.String("type", string(p.Type)))
	return p, nil
}

// Get fetches a project by id. Projects are only readable by their owner;
// a project owned by someone else surfaces as access denied, distinct
// from not found.
func (s *Service) Get(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if strings.TrimSpace(projectID) == "" {
		return nil, domain.NewValidationError(domain.MsgInvalidID)
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, projectID)
		if err != nil {
			logger.L().Warn("project cache lookup failed", zap.String("project_id", projectID), zap.Error(err))
		} else if cached != nil {
			if cached.UserID != userID {
				return nil, domain.ErrAccessDenied
			}
			return cached, nil
		}
	}

	p, err := s.store.GetByID(ctx, projectID)
	if err != nil {
		if err != domain.ErrNotFound {
			logger.L().Error("project fetch failed", zap.String("project_id", projectID), zap.Error(err))
		}
		return nil, err
	}
	if p.UserID != userID {
		return nil, domain.ErrAccessDenied
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, p); err != nil {
			logger.L().Warn("project cache set failed", zap.String("project_id", projectID), zap.Error(err))
		}
	}
	return p, nil
}

// UpdateTitle renames a project and returns the title as stored. The
// ownership check mirrors the read path, so a caller cannot rename a
// project it does not own. The cached view is invalidated on success.
func (s *Service) UpdateTitle(ctx context.Context, userID, projectID, newTitle string) (string, error) {
	if userID == "" {
		return "", domain.ErrUnauthenticated
	}
	if strings.TrimSpace(projectID) == "" {
		return "", domain.NewValidationError(domain.MsgInvalidID)
	}
	title := strings.TrimSpace(newTitle)
	if utf8.RuneCountInString(title) < MinTitleRunes {
		return "", domain.NewValidationError(domain.MsgTitleTooShort)
	}

	p, err := s.store.GetByID(ctx, projectID)
	if err != nil {
		if err != domain.ErrNotFound {
			logger.L().Error("project fetch failed", zap.String("project_id", projectID), zap.Error(err))
		}
		return "", err
	}
	if p.UserID != userID {
		return "", domain.ErrAccessDenied
	}

	stored, err := s.store.UpdateTitle(ctx, projectID, title)
	if err != nil {
		if err != domain.ErrNotFound {
			logger.L().Error("title update failed", zap.String("project_id", projectID), zap.Error(err))
		}
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, projectID); err != nil {
			logger.L().Warn("project cache invalidate failed", zap.String("project_id", projectID), zap.Error(err))
		}
	}

	logger.L().Info("project renamed", zap.String("project_id", projectID), zap.String("user_id", userID))
	return stored, nil
}

// List returns the caller's projects, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]domain.Project, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.store.ListByUser(ctx, userID)
}

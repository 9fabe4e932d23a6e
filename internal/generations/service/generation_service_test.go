package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desainin/desainin-backend/internal/generations/domain"
	projdomain "github.com/desainin/desainin-backend/internal/projects/domain"
)

type fakeGenStore struct {
	byProject map[string][]domain.Generation
}

func newFakeGenStore() *fakeGenStore {
	return &fakeGenStore{byProject: map[string][]domain.Generation{}}
}

func (f *fakeGenStore) Insert(_ context.Context, g *domain.Generation) error {
	g.Version = len(f.byProject[g.ProjectID]) + 1
	f.byProject[g.ProjectID] = append(f.byProject[g.ProjectID], *g)
	return nil
}

func (f *fakeGenStore) ListByProject(_ context.Context, projectID string) ([]domain.Generation, error) {
	items := f.byProject[projectID]
	out := make([]domain.Generation, len(items))
	for i, g := range items {
		out[len(items)-1-i] = g
	}
	return out, nil
}

type fakeProjectStore struct {
	projects map[string]*projdomain.Project
}

func (f *fakeProjectStore) GetByID(_ context.Context, id string) (*projdomain.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, projdomain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func newFixture() (*Service, *fakeGenStore) {
	store := newFakeGenStore()
	projects := &fakeProjectStore{projects: map[string]*projdomain.Project{
		"proj-1": {ID: "proj-1", UserID: "user-a", Title: "Judul", Type: projdomain.TypeWebsite},
	}}
	return NewService(store, projects), store
}

func TestAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("requires authentication", func(t *testing.T) {
		svc, store := newFixture()

		_, err := svc.Add(ctx, "", "proj-1", "<html></html>")

		assert.ErrorIs(t, err, projdomain.ErrUnauthenticated)
		assert.Empty(t, store.byProject)
	})

	t.Run("rejects empty html", func(t *testing.T) {
		svc, _ := newFixture()

		_, err := svc.Add(ctx, "user-a", "proj-1", "   ")

		var ve *projdomain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, domain.MsgEmptyHTML, ve.Message)
	})

	t.Run("non-owner cannot add to the project", func(t *testing.T) {
		svc, store := newFixture()

		_, err := svc.Add(ctx, "user-b", "proj-1", "<html></html>")

		assert.ErrorIs(t, err, projdomain.ErrAccessDenied)
		assert.Empty(t, store.byProject)
	})

	t.Run("versions increase per project starting at 1", func(t *testing.T) {
		svc, _ := newFixture()

		first, err := svc.Add(ctx, "user-a", "proj-1", "<html>v1</html>")
		require.NoError(t, err)
		second, err := svc.Add(ctx, "user-a", "proj-1", "<html>v2</html>")
		require.NoError(t, err)

		assert.Equal(t, 1, first.Version)
		assert.Equal(t, 2, second.Version)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown project is not found", func(t *testing.T) {
		svc, _ := newFixture()

		_, err := svc.List(ctx, "user-a", "missing-id")
		assert.ErrorIs(t, err, projdomain.ErrNotFound)
	})

	t.Run("owner gets generations newest first", func(t *testing.T) {
		svc, _ := newFixture()

		_, err := svc.Add(ctx, "user-a", "proj-1", "<html>v1</html>")
		require.NoError(t, err)
		_, err = svc.Add(ctx, "user-a", "proj-1", "<html>v2</html>")
		require.NoError(t, err)

		items, err := svc.List(ctx, "user-a", "proj-1")
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, 2, items[0].Version)
		assert.Equal(t, 1, items[1].Version)
	})

	t.Run("non-owner is denied", func(t *testing.T) {
		svc, _ := newFixture()

		_, err := svc.List(ctx, "user-b", "proj-1")
		assert.ErrorIs(t, err, projdomain.ErrAccessDenied)
	})
}

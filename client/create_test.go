package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desainin/desainin-backend/internal/projects/domain"
)

type fakeCreator struct {
	projectID   string
	err         error
	sawPending  bool
	flowPending func() bool
}

func (f *fakeCreator) CreateProject(_ context.Context, _ string, _ domain.ProjectType) (string, error) {
	if f.flowPending != nil {
		f.sawPending = f.flowPending()
	}
	if f.err != nil {
		return "", f.err
	}
	return f.projectID, nil
}

type recordingNavigator struct {
	paths []string
}

func (n *recordingNavigator) NavigateTo(path string) { n.paths = append(n.paths, path) }

func TestCreateFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("success notifies and navigates to the workspace", func(t *testing.T) {
		api := &fakeCreator{projectID: "proj-123"}
		notifier := &recordingNotifier{}
		nav := &recordingNavigator{}
		flow := NewCreateFlow(api, notifier, nav)

		id, err := flow.Create(ctx, "Buat landing page untuk startup AI", domain.TypeWebsite)

		require.NoError(t, err)
		assert.Equal(t, "proj-123", id)
		assert.Equal(t, []string{MsgProjectCreated}, notifier.successes)
		assert.Equal(t, []string{"/project/proj-123"}, nav.paths)
	})

	t.Run("failure surfaces the server message and does not navigate", func(t *testing.T) {
		api := &fakeCreator{err: errors.New("Prompt minimal 10 karakter")}
		notifier := &recordingNotifier{}
		nav := &recordingNavigator{}
		flow := NewCreateFlow(api, notifier, nav)

		_, err := flow.Create(ctx, "pendek", domain.TypeWebsite)

		assert.Error(t, err)
		assert.Equal(t, []string{"Prompt minimal 10 karakter"}, notifier.errors)
		assert.Empty(t, nav.paths)
	})

	t.Run("pending is set while the request is in flight and cleared after", func(t *testing.T) {
		api := &fakeCreator{projectID: "proj-123"}
		notifier := &recordingNotifier{}
		nav := &recordingNavigator{}
		flow := NewCreateFlow(api, notifier, nav)
		api.flowPending = flow.Pending

		assert.False(t, flow.Pending())
		_, err := flow.Create(ctx, "Buat landing page untuk startup AI", domain.TypeWebsite)
		require.NoError(t, err)

		assert.True(t, api.sawPending, "pending during the request")
		assert.False(t, flow.Pending(), "cleared once settled")
	})
}

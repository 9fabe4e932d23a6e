package client

import (
	"context"

	"github.com/desainin/desainin-backend/internal/projects/domain"
)

// Notifier receives transient user notifications. The UI shows the
// messages verbatim.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Navigator moves the UI to another view.
type Navigator interface {
	NavigateTo(path string)
}

// MsgProjectCreated is shown after a successful create.
const MsgProjectCreated = "Project berhasil dibuat!"

// ProjectCreator is the subset of Client the create flow needs.
type ProjectCreator interface {
	CreateProject(ctx context.Context, prompt string, typ domain.ProjectType) (string, error)
}

// CreateFlow wraps project creation in a request lifecycle: on success it
// notifies and navigates to the new project's workspace; on failure it
// surfaces the server's message. It tracks a single in-flight request via
// Pending; callers are responsible for not invoking Create again while
// pending, as concurrent calls are not serialized here.
type CreateFlow struct {
	api      ProjectCreator
	notifier Notifier
	nav      Navigator
	pending  bool
}

func NewCreateFlow(api ProjectCreator, notifier Notifier, nav Navigator) *CreateFlow {
	return &CreateFlow{api: api, notifier: notifier, nav: nav}
}

// Pending reports whether a create request is in flight.
func (f *CreateFlow) Pending() bool { return f.pending }

// Create submits the prompt. It returns the new project id on success.
func (f *CreateFlow) Create(ctx context.Context, prompt string, typ domain.ProjectType) (string, error) {
	f.pending = true
	defer func() { f.pending = false }()

	projectID, err := f.api.CreateProject(ctx, prompt, typ)
	if err != nil {
		f.notifier.Error(err.Error())
		return "", err
	}

	f.notifier.Success(MsgProjectCreated)
	f.nav.NavigateTo("/project/" + projectID)
	return projectID, nil
}

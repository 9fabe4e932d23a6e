package client

import (
	"context"
	"strings"
	"unicode/utf8"
)

// EditState is the title editor's lifecycle state.
type EditState int

const (
	StateIdle EditState = iota
	StateEditing
	StateSaving
)

// Messages surfaced by the title editor.
const (
	MsgTitleUpdated  = "Judul berhasil diubah"
	MsgTitleTooShort = "Judul minimal 3 karakter"
)

const minTitleRunes = 3

// TitleUpdater is the subset of Client the editor needs.
type TitleUpdater interface {
	UpdateProjectTitle(ctx context.Context, projectID, newTitle string) (string, error)
}

// TitleEditor holds a local draft of the project title distinct from the
// last-known-good value, applies the draft optimistically on save, and
// rolls back to the value captured at the moment the request was issued
// when the save fails. Edit mode exits once a save settles, success or
// failure. A second save while one is pending is not guarded against;
// last settled wins.
type TitleEditor struct {
	api       TitleUpdater
	notifier  Notifier
	projectID string

	state    EditState
	title    string // displayed, last-known-good between saves
	draft    string
	snapshot string // restore value for a failed save
}

func NewTitleEditor(api TitleUpdater, notifier Notifier, projectID, initialTitle string) *TitleEditor {
	return &TitleEditor{
		api:       api,
		notifier:  notifier,
		projectID: projectID,
		state:     StateIdle,
		title:     initialTitle,
		draft:     initialTitle,
	}
}

// State returns the current lifecycle state.
func (e *TitleEditor) State() EditState { return e.state }

// Title returns the displayed title, which may be an optimistic value
// while a save is in flight.
func (e *TitleEditor) Title() string { return e.title }

// Draft returns the local draft.
func (e *TitleEditor) Draft() string { return e.draft }

// Begin enters edit mode, seeding the draft with the displayed title.
func (e *TitleEditor) Begin() {
	if e.state != StateIdle {
		return
	}
	e.draft = e.title
	e.state = StateEditing
}

// SetDraft replaces the local draft while editing.
func (e *TitleEditor) SetDraft(draft string) {
	if e.state == StateEditing {
		e.draft = draft
	}
}

// Cancel leaves edit mode and discards the draft.
func (e *TitleEditor) Cancel() {
	if e.state != StateEditing {
		return
	}
	e.draft = e.title
	e.state = StateIdle
}

// Save validates the draft locally, applies it optimistically and issues
// the update. A trimmed draft equal to the displayed title short-circuits
// with no network call.
func (e *TitleEditor) Save(ctx context.Context) {
	if e.state != StateEditing {
		return
	}

	trimmed := strings.TrimSpace(e.draft)
	if utf8.RuneCountInString(trimmed) < minTitleRunes {
		e.notifier.Error(MsgTitleTooShort)
		return
	}
	if trimmed == e.title {
		e.state = StateIdle
		return
	}

	// Optimistic apply: show the draft immediately, remember what to
	// restore if the save fails.
	e.snapshot = e.title
	e.title = trimmed
	e.state = StateSaving

	stored, err := e.api.UpdateProjectTitle(ctx, e.projectID, trimmed)

	// Edit mode exits unconditionally once the request settles.
	e.state = StateIdle

	if err != nil {
		e.title = e.snapshot
		e.draft = e.snapshot
		e.notifier.Error(err.Error())
		return
	}

	e.title = stored
	e.draft = stored
	e.notifier.Success(MsgTitleUpdated)
}

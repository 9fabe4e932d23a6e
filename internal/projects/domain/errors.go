package domain

import "errors"

// Expected, enumerable failure modes of the project operations. Anything
// not in this taxonomy is treated as a store failure and surfaced as a
// generic message only.
var (
	ErrUnauthenticated = errors.New("caller not authenticated")
	ErrNotFound        = errors.New("project not found")
	ErrAccessDenied    = errors.New("caller does not own project")
)

// ValidationError carries the user-facing message of the first violated
// input constraint.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// User-facing messages. The UI surfaces these verbatim, so they are the
// product's localized strings.
const (
	MsgLoginRequired  = "Anda harus login terlebih dahulu"
	MsgPromptTooShort = "Prompt minimal 10 karakter"
	MsgInvalidType    = "Tipe harus 'website' atau 'app'"
	MsgInvalidInput   = "Input tidak valid"
	MsgInvalidID      = "Project ID tidak valid"
	MsgTitleTooShort  = "Judul minimal 3 karakter"
	MsgNotFound       = "Project tidak ditemukan"
	MsgAccessDenied   = "Anda tidak memiliki akses ke project ini"
	MsgCreateFailed   = "Gagal membuat project. Silakan coba lagi."
	MsgGetFailed      = "Gagal memuat project. Silakan coba lagi."
	MsgUpdateFailed   = "Gagal mengubah judul. Silakan coba lagi."
)

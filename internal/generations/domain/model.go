package domain

import "time"

// Generation is one produced design artifact for a project. Versions are
// per-project and start at 1.
type Generation struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	HTMLCode  string    `json:"html_code"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

const MsgEmptyHTML = "Kode HTML tidak boleh kosong"

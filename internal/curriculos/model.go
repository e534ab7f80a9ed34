package curriculos

import "time"

// Curriculo is the stored résumé record. Each user has at most one; a new
// upload replaces the previous file and metadata.
type Curriculo struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	FileName   string    `json:"file_name"`
	FilePath   string    `json:"file_path"`
	FileSize   int64     `json:"file_size"`
	UploadedAt time.Time `json:"uploaded_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

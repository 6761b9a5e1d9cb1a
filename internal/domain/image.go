package domain

import "time"

// ImageAsset represents an image in the back-office image library. The
// binary lives on disk under the configured upload directory; only the
// metadata is stored in the database.
type ImageAsset struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	StoredPath string    `json:"-"`
	MIMEType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	Category   string    `json:"category"`
	Tags       []string  `json:"tags"`
	UploadedBy string    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

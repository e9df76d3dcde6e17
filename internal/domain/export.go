package domain

import (
	"time"
)

// ExportRequest is assembled by the HTTP layer; dates arrive already
// parsed and ordered.
type ExportRequest struct {
	ReportType string
	Format     string
	From       *time.Time
	To         *time.Time
	Email      string
}

// ExportResult is the rendered artifact. Content is empty for the
// email format, where the artifact leaves as an attachment instead.
type ExportResult struct {
	Content  []byte
	Filename string
	MimeType string
}

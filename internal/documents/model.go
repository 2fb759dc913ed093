package documents

import "time"

// Document represents an uploaded contract owned by a user, together with the
// storage keys for the original file and the rendered analysis report.
type Document struct {
	ID            string
	UserID        string
	Title         string
	StorageKey    string
	ReportKey     string
	ExtractedText string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

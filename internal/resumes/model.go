package resumes

import "time"

// Resume is the stored record of one generated document.
type Resume struct {
	ID            string
	UserID        string
	Name          string
	Title         string
	Email         string
	Phone         string
	Location      string
	Link          string
	Education     string
	Experience    string
	Skills        string
	TemplateStyle string
	FileName      string
	StorageKey    string
	MimeType      string
	SizeBytes     int64
	Pages         int
	CreatedAt     time.Time
}

package model

import "time"

// SourceType identifies how the analyzed image entered the system
type SourceType string

const (
	SourceUpload SourceType = "upload"
	SourceURL    SourceType = "url"
	SourceFile   SourceType = "file"
)

// ImageMeta holds best-effort metadata captured from the image bytes.
// It never influences the verdict.
type ImageMeta struct {
	Format      string `json:"format,omitempty"`       // sniffed MIME type
	CameraMake  string `json:"camera_make,omitempty"`  // EXIF Make
	CameraModel string `json:"camera_model,omitempty"` // EXIF Model
	Software    string `json:"software,omitempty"`     // EXIF Software
}

// ScanRecord is one persisted analysis, as stored in the history store
type ScanRecord struct {
	ID         string     `json:"id"`
	Source     string     `json:"source"` // file name or URL
	SourceType SourceType `json:"source_type"`

	Result AnalysisResult `json:"result"`

	PerceptualHash string    `json:"perceptual_hash,omitempty"` // dHash of the analyzed frame
	Meta           ImageMeta `json:"meta,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

package models

import "time"

const XmlContentType = "application/xml"

// ExportResult is everything needed to deliver an export to a caller as a file.
type ExportResult struct {
	Content     []byte
	ContentType string
	FileName    string
	Count       int
	Checksum    string
	ArchiveKey  string
}

// ArchivedExport is an export payload stored in the S3 export bucket.
type ArchivedExport struct {
	AwsBucket    string    `json:"aws_bucket"`
	Key          string    `json:"key"`
	FileName     string    `json:"file_name"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	SignedUrl    string    `json:"signed_url,omitempty"`
}

// ExportEvent is published every time an export is produced.
type ExportEvent struct {
	FileName   string            `json:"file_name"`
	Count      int               `json:"count"`
	Checksum   string            `json:"checksum"`
	ArchiveKey string            `json:"archive_key,omitempty"`
	Criteria   CarSearchCriteria `json:"criteria"`
	ExportedAt time.Time         `json:"exported_at"`
}

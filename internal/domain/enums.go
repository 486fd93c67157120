package domain

// IngestPath identifies which extraction path handles an uploaded file.
type IngestPath string

const (
	PathTabular  IngestPath = "tabular"
	PathDocument IngestPath = "document"
)

// TabularExtensions maps extensions (without dot) handled by the local
// header-synonym extractor.
var TabularExtensions = map[string]bool{
	"csv":  true,
	"xls":  true,
	"xlsx": true,
}

// DocumentExtensions maps extensions handled by the remote document
// extraction service.
var DocumentExtensions = map[string]bool{
	"pdf":  true,
	"doc":  true,
	"docx": true,
}

// ContentTypes maps extensions to the MIME type used when archiving the
// source file.
var ContentTypes = map[string]string{
	"csv":  "text/csv",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// RecordStatus is the lifecycle state of a saved record.
type RecordStatus string

const (
	RecordStatusCompleted RecordStatus = "completed"
)

package ingest

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"sofhub/internal/domain"
)

// Route classifies a file name into an extraction path by extension.
// CSV/XLS/XLSX go to the tabular path, PDF/DOC/DOCX to the document path;
// anything else is rejected.
func Route(filename string) (domain.IngestPath, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch {
	case domain.TabularExtensions[ext]:
		return domain.PathTabular, nil
	case domain.DocumentExtensions[ext]:
		return domain.PathDocument, nil
	default:
		return "", domain.ErrUnsupportedFormat
	}
}

// Ext returns the lowercased extension of a filename without the dot.
func Ext(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// Select picks the files to process from an upload batch: the first file
// routed to each path wins, the rest are silently discarded. Files with an
// unrecognized extension are reported so the caller can reject the batch
// when nothing is processable.
func Select(files []*multipart.FileHeader) (tabular, document *multipart.FileHeader, unsupported []*multipart.FileHeader) {
	for _, fh := range files {
		path, err := Route(fh.Filename)
		if err != nil {
			unsupported = append(unsupported, fh)
			continue
		}
		switch path {
		case domain.PathTabular:
			if tabular == nil {
				tabular = fh
			}
		case domain.PathDocument:
			if document == nil {
				document = fh
			}
		}
	}
	return tabular, document, unsupported
}

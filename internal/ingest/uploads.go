package ingest

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ansel1/merry"
)

// Upload slots accepted by the ingestion endpoint
const (
	FieldCAD = "cadFile"
	FieldRFQ = "rfqFile"
)

// DefaultMaxFileSize is the per-file upload limit
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

// Slots lists the upload fields in processing order
var Slots = []string{FieldCAD, FieldRFQ}

var allowedExtensions = map[string]map[string]bool{
	FieldCAD: set(".pdf", ".dwg", ".dxf", ".dwf", ".step", ".stp", ".iges", ".igs", ".stl",
		".sldprt", ".sldasm", ".x_t", ".x_b", ".3dm", ".obj", ".jpg", ".jpeg", ".png", ".zip"),
	FieldRFQ: set(".pdf", ".doc", ".docx", ".xls", ".xlsx"),
}

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, item := range items {
		m[item] = true
	}
	return m
}

// ValidateUpload checks one file against its slot's extension allow-list and the size limit
func ValidateUpload(field string, file *multipart.FileHeader, maxSize int64) error {
	allowed, ok := allowedExtensions[field]
	if !ok {
		return badRequest(fmt.Sprintf("Unexpected file field: %s", field))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowed[ext] {
		if ext == "" {
			ext = "(none)"
		}
		return badRequest(fmt.Sprintf("Invalid file type for %s: %s is not allowed", field, ext))
	}

	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	if file.Size > maxSize {
		return badRequest(fmt.Sprintf("File too large: %s exceeds the %dMB limit", field, maxSize/(1024*1024)))
	}

	return nil
}

func badRequest(msg string) error {
	return merry.New(msg).WithHTTPCode(http.StatusBadRequest).WithUserMessage(msg)
}

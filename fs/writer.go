// Package fs writes extraction results to disk as JSON files, one file per
// page, mirroring the page's URL path.
package fs

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hricks/onpage"
)

// URLToPath converts a page URL to a relative file path.
// Example: https://example.com/docs/api/users → docs/api/users.json
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := u.Path

	// Handle root or trailing slash → index.json
	if path == "" || path == "/" {
		return "index.json", nil
	}

	// Remove leading slash
	path = strings.TrimPrefix(path, "/")

	// Trailing slash becomes index.json in that directory
	if strings.HasSuffix(path, "/") {
		return path + "index.json", nil
	}

	// Otherwise append .json
	return path + ".json", nil
}

// Ensure Writer implements onpage.ExtractionWriter at compile time.
var _ onpage.ExtractionWriter = (*Writer)(nil)

// Writer writes extracted documents as JSON files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteExtraction writes an extraction's document to disk as indented JSON.
// Unlike database storage, file output does not require a job ID, so single
// page extractions can be written directly.
func (w *Writer) WriteExtraction(ctx context.Context, ext *onpage.Extraction) error {
	if ext.SourceURL == "" {
		return onpage.Errorf(onpage.EINVALID, "extraction source URL required")
	}
	if ext.Document == nil {
		return onpage.Errorf(onpage.EINVALID, "extraction document required")
	}

	relPath, err := URLToPath(ext.SourceURL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, relPath)

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(ext.Document, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	return os.WriteFile(fullPath, data, 0644)
}

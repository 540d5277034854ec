package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hricks/onpage"
	"github.com/hricks/onpage/fs"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	html, sourceURL, err := c.readInput(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", onpage.ErrorMessage(err))
		return err
	}

	doc, err := deps.Extractor.Extract(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", onpage.ErrorMessage(err))
		return err
	}

	for _, msg := range doc.Validation.Messages {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", msg)
	}

	if c.Out != "" {
		if sourceURL == "" {
			err := onpage.Errorf(onpage.EINVALID, "file output requires a source URL; pass a URL or --base")
			fmt.Fprintf(deps.Stderr, "error: %s\n", onpage.ErrorMessage(err))
			return err
		}

		writer := fs.NewWriter(c.Out)
		ext := &onpage.Extraction{SourceURL: sourceURL, Document: doc}
		if err := writer.WriteExtraction(deps.Ctx, ext); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", onpage.ErrorMessage(err))
			return err
		}

		relPath, _ := fs.URLToPath(sourceURL)
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", filepath.Join(c.Out, relPath))
		return nil
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// readInput returns the HTML to extract and the URL it is attributed to.
// Input comes from a file, stdin, or a fetched URL.
func (c *ExtractCmd) readInput(deps *Dependencies) (string, string, error) {
	sourceURL := c.URL
	if c.Base != "" {
		sourceURL = c.Base
	}

	switch {
	case c.File == "-":
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", "", err
		}
		return string(data), sourceURL, nil

	case c.File != "":
		data, err := os.ReadFile(c.File)
		if err != nil {
			return "", "", err
		}
		return string(data), sourceURL, nil

	case c.URL != "":
		html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
		if err != nil {
			return "", "", err
		}
		return html, c.URL, nil

	default:
		return "", "", onpage.Errorf(onpage.EINVALID, "provide a URL to fetch or --file to read from")
	}
}

package onpage

import "encoding/json"

// SourceMetadata holds page-level metadata read from the document head.
// Every field is best-effort; an empty string means the element was absent.
type SourceMetadata struct {
	URL             string `json:"url,omitempty"`
	Title           string `json:"title,omitempty"`
	Canonical       string `json:"canonical,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
}

// Validation statuses.
const (
	ValidationPass = "pass"
	ValidationWarn = "warn"
)

// Validation summarizes the structural checks run on the extracted blocks.
type Validation struct {
	Status   string   `json:"status"`
	H1Count  int      `json:"h1_count"`
	Messages []string `json:"messages"`
}

// Document is the structured representation of one page's meaningful content:
// head metadata plus the ordered block tree. It is assembled once per
// extraction and immutable afterwards.
type Document struct {
	Source     SourceMetadata `json:"source"`
	Blocks     []Block        `json:"blocks"`
	Validation Validation     `json:"validation"`
}

// MarshalJSON serializes the document, guaranteeing non-null blocks and
// messages arrays so repeated runs produce byte-identical output.
func (d Document) MarshalJSON() ([]byte, error) {
	type alias Document
	if d.Blocks == nil {
		d.Blocks = []Block{}
	}
	if d.Validation.Messages == nil {
		d.Validation.Messages = []string{}
	}
	return json.Marshal(alias(d))
}

// UnmarshalJSON decodes a serialized document, dispatching blocks on their
// type discriminants.
func (d *Document) UnmarshalJSON(data []byte) error {
	var aux struct {
		Source     SourceMetadata  `json:"source"`
		Blocks     json.RawMessage `json:"blocks"`
		Validation Validation      `json:"validation"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return Errorf(EINVALID, "invalid document: %v", err)
	}

	blocks, err := UnmarshalBlocks(aux.Blocks)
	if err != nil {
		return err
	}

	d.Source = aux.Source
	d.Blocks = blocks
	d.Validation = aux.Validation
	if d.Validation.Messages == nil {
		d.Validation.Messages = []string{}
	}
	return nil
}

// Extractor converts a single rendered HTML page into a structured Document.
// Implementations are pure and deterministic: identical input produces
// identical output, and no state persists across calls.
type Extractor interface {
	// Extract processes rendered HTML and returns the structured document.
	// Malformed-but-parseable markup is normal input; structural oddities
	// are absorbed by policy, never surfaced as errors.
	Extract(html string) (*Document, error)
}

package onpage

import (
	"encoding/json"
)

// BlockType is the serialized discriminant for a block variant.
type BlockType string

// Block type discriminants as they appear in serialized output.
const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockList      BlockType = "list"
	BlockCta       BlockType = "cta"
	BlockTable     BlockType = "table"
	BlockFaq       BlockType = "faq"
	BlockAccordion BlockType = "accordion"
	BlockTabset    BlockType = "tabset"
)

// Block is one typed content block extracted from a page, in reading order.
// The variant set is closed: Heading, Paragraph, List, Cta, Table, Faq,
// Accordion, Tabset. Compound variants (Faq, Accordion, Tabset) own nested
// block sequences, so blocks form a tree mirroring the source markup.
// A block is immutable once constructed; post-passes remove blocks rather
// than edit their fields.
type Block interface {
	// Type returns the variant's serialized discriminant.
	Type() BlockType
}

// Heading is an h1-h6 (or role="heading") block.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Type returns the heading discriminant.
func (Heading) Type() BlockType { return BlockHeading }

// Paragraph is a run of body text.
type Paragraph struct {
	Text string `json:"text"`
}

// Type returns the paragraph discriminant.
func (Paragraph) Type() BlockType { return BlockParagraph }

// List is an ordered or unordered list. Items are normalized and non-empty.
type List struct {
	Ordered bool     `json:"ordered"`
	Items   []string `json:"items"`
}

// Type returns the list discriminant.
func (List) Type() BlockType { return BlockList }

// Cta is a call-to-action: a button or a non-navigation-chrome link.
type Cta struct {
	Text string `json:"text"`
	Href string `json:"href,omitempty"`
}

// Type returns the cta discriminant.
func (Cta) Type() BlockType { return BlockCta }

// Table holds row-major cell text in document order.
type Table struct {
	Rows [][]string `json:"rows"`
}

// Type returns the table discriminant.
func (Table) Type() BlockType { return BlockTable }

// Faq is a disclosure widget whose trigger reads as a question.
type Faq struct {
	Question     string  `json:"question"`
	AnswerBlocks []Block `json:"answer_blocks"`
}

// Type returns the faq discriminant.
func (Faq) Type() BlockType { return BlockFaq }

// Accordion is a disclosure widget with a non-question trigger.
type Accordion struct {
	Title         string  `json:"title"`
	ContentBlocks []Block `json:"content_blocks"`
}

// Type returns the accordion discriminant.
func (Accordion) Type() BlockType { return BlockAccordion }

// Tab is a single tab within a Tabset.
type Tab struct {
	Title         string  `json:"title"`
	ContentBlocks []Block `json:"content_blocks"`
}

// Tabset is a role="tablist" widget with its tabs in document order.
type Tabset struct {
	Tabs []Tab `json:"tabs"`
}

// Type returns the tabset discriminant.
func (Tabset) Type() BlockType { return BlockTabset }

// MarshalJSON serializes the heading with its type discriminant.
func (b Heading) MarshalJSON() ([]byte, error) {
	type alias Heading
	return json.Marshal(struct {
		Type BlockType `json:"type"`
		alias
	}{b.Type(), alias(b)})
}

// MarshalJSON serializes the paragraph with its type discriminant.
func (b Paragraph) MarshalJSON() ([]byte, error) {
	type alias Paragraph
	return json.Marshal(struct {
		Type BlockType `json:"type"`
		alias
	}{b.Type(), alias(b)})
}

// MarshalJSON serializes the list with its type discriminant.
func (b List) MarshalJSON() ([]byte, error) {
	type alias List
	return json.Marshal(struct {
		Type BlockType `json:"type"`
		alias
	}{b.Type(), alias(b)})
}

// MarshalJSON serializes the cta with its type discriminant.
func (b Cta) MarshalJSON() ([]byte, error) {
	type alias Cta
	return json.Marshal(struct {
		Type BlockType `json:"type"`
		alias
	}{b.Type(), alias(b)})
}

// MarshalJSON serializes the table with its type discriminant.
func (b Table) MarshalJSON() ([]byte, error) {
	type alias Table
	return json.Marshal(struct {
		Type BlockType `json:"type"`
		alias
	}{b.Type(), alias(b)})
}

// MarshalJSON serializes the faq with its type discriminant.
func (b Faq) MarshalJSON() ([]byte, error) {
	type alias Faq
	if b.AnswerBlocks == nil {
		b.AnswerBlocks = []Block{}
	}
	return json.Marshal(struct {
		Type BlockType `json:"type"`
		alias
	}{b.Type(), alias(b)})
}

// MarshalJSON serializes the accordion with its type discriminant.
func (b Accordion) MarshalJSON() ([]byte, error) {
	type alias Accordion
	if b.ContentBlocks == nil {
		b.ContentBlocks = []Block{}
	}
	return json.Marshal(struct {
		Type BlockType `json:"type"`
		alias
	}{b.Type(), alias(b)})
}

// MarshalJSON serializes the tab, guaranteeing a non-null content_blocks array.
func (t Tab) MarshalJSON() ([]byte, error) {
	type alias Tab
	if t.ContentBlocks == nil {
		t.ContentBlocks = []Block{}
	}
	return json.Marshal(alias(t))
}

// MarshalJSON serializes the tabset with its type discriminant.
func (b Tabset) MarshalJSON() ([]byte, error) {
	type alias Tabset
	if b.Tabs == nil {
		b.Tabs = []Tab{}
	}
	return json.Marshal(struct {
		Type BlockType `json:"type"`
		alias
	}{b.Type(), alias(b)})
}

// UnmarshalBlocks decodes a serialized block array, dispatching each element
// on its "type" discriminant. An unknown discriminant is EINVALID.
func UnmarshalBlocks(data []byte) ([]Block, error) {
	if len(data) == 0 {
		return []Block{}, nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, Errorf(EINVALID, "invalid block array: %v", err)
	}

	blocks := make([]Block, 0, len(raws))
	for _, raw := range raws {
		block, err := unmarshalBlock(raw)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

func unmarshalBlock(data []byte) (Block, error) {
	var probe struct {
		Type BlockType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, Errorf(EINVALID, "invalid block: %v", err)
	}

	switch probe.Type {
	case BlockHeading:
		var b Heading
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, Errorf(EINVALID, "invalid heading block: %v", err)
		}
		return b, nil

	case BlockParagraph:
		var b Paragraph
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, Errorf(EINVALID, "invalid paragraph block: %v", err)
		}
		return b, nil

	case BlockList:
		var b List
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, Errorf(EINVALID, "invalid list block: %v", err)
		}
		return b, nil

	case BlockCta:
		var b Cta
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, Errorf(EINVALID, "invalid cta block: %v", err)
		}
		return b, nil

	case BlockTable:
		var b Table
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, Errorf(EINVALID, "invalid table block: %v", err)
		}
		return b, nil

	case BlockFaq:
		var aux struct {
			Question     string          `json:"question"`
			AnswerBlocks json.RawMessage `json:"answer_blocks"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return nil, Errorf(EINVALID, "invalid faq block: %v", err)
		}
		nested, err := UnmarshalBlocks(aux.AnswerBlocks)
		if err != nil {
			return nil, err
		}
		return Faq{Question: aux.Question, AnswerBlocks: nested}, nil

	case BlockAccordion:
		var aux struct {
			Title         string          `json:"title"`
			ContentBlocks json.RawMessage `json:"content_blocks"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return nil, Errorf(EINVALID, "invalid accordion block: %v", err)
		}
		nested, err := UnmarshalBlocks(aux.ContentBlocks)
		if err != nil {
			return nil, err
		}
		return Accordion{Title: aux.Title, ContentBlocks: nested}, nil

	case BlockTabset:
		var aux struct {
			Tabs []struct {
				Title         string          `json:"title"`
				ContentBlocks json.RawMessage `json:"content_blocks"`
			} `json:"tabs"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return nil, Errorf(EINVALID, "invalid tabset block: %v", err)
		}
		tabs := make([]Tab, 0, len(aux.Tabs))
		for _, t := range aux.Tabs {
			nested, err := UnmarshalBlocks(t.ContentBlocks)
			if err != nil {
				return nil, err
			}
			tabs = append(tabs, Tab{Title: t.Title, ContentBlocks: nested})
		}
		return Tabset{Tabs: tabs}, nil
	}

	return nil, Errorf(EINVALID, "unknown block type %q", probe.Type)
}

package onpage

import "strings"

// DeduplicateBlocks removes blocks that repeat earlier content anywhere in the
// tree. A single signature set is shared across the whole document, top-level
// and nested blocks alike; the first occurrence in depth-first traversal order
// is kept and every later block with the same signature is removed in full,
// nested content included. Input blocks are never mutated; compound variants
// are rebuilt with filtered nested sequences.
func DeduplicateBlocks(blocks []Block) []Block {
	seen := make(map[string]bool)
	return dedupeBlocks(blocks, seen)
}

func dedupeBlocks(blocks []Block, seen map[string]bool) []Block {
	out := make([]Block, 0, len(blocks))
	for _, block := range blocks {
		key := blockSignature(block)
		if key != "" {
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, dedupeNested(block, seen))
	}
	return out
}

// dedupeNested filters a compound block's nested sequences against the shared
// signature set, returning a rebuilt copy. Leaf blocks pass through unchanged.
func dedupeNested(block Block, seen map[string]bool) Block {
	switch b := block.(type) {
	case Faq:
		b.AnswerBlocks = dedupeBlocks(b.AnswerBlocks, seen)
		return b
	case Accordion:
		b.ContentBlocks = dedupeBlocks(b.ContentBlocks, seen)
		return b
	case Tabset:
		tabs := make([]Tab, 0, len(b.Tabs))
		for _, tab := range b.Tabs {
			tab.ContentBlocks = dedupeBlocks(tab.ContentBlocks, seen)
			tabs = append(tabs, tab)
		}
		b.Tabs = tabs
		return b
	default:
		return block
	}
}

// blockSignature returns the (variant, SignatureKey) pair as a single string,
// or "" for blocks with no representative text. Blocks without a signature are
// always kept and never enter the seen set.
func blockSignature(block Block) string {
	text := representativeText(block)
	if text == "" {
		return ""
	}
	return string(block.Type()) + ":" + SignatureKey(text)
}

// representativeText returns the text a block is identified by for duplicate
// detection. Compound variants use only their own question/title labels, never
// nested content, so structurally distinct containers that happen to share
// similar contents are not conflated.
func representativeText(block Block) string {
	switch b := block.(type) {
	case Heading:
		return b.Text
	case Paragraph:
		return b.Text
	case Cta:
		return b.Text
	case List:
		return strings.Join(b.Items, " ")
	case Table:
		var cells []string
		for _, row := range b.Rows {
			cells = append(cells, row...)
		}
		return strings.Join(cells, " ")
	case Faq:
		return b.Question
	case Accordion:
		return b.Title
	case Tabset:
		titles := make([]string, 0, len(b.Tabs))
		for _, tab := range b.Tabs {
			titles = append(titles, tab.Title)
		}
		return strings.Join(titles, " ")
	}
	return ""
}

package onpage

import "fmt"

// EnforceSingleH1 enforces the document-wide invariant that at most one
// level-1 heading exists anywhere in the block tree. The first level-1 heading
// in depth-first traversal order is kept, wherever located; every later one is
// removed. Nothing is demoted or renumbered, and headings of other levels are
// untouched. The returned Validation summarizes the outcome.
func EnforceSingleH1(blocks []Block) ([]Block, Validation) {
	total := countH1(blocks)

	validation := Validation{
		Status:   ValidationPass,
		H1Count:  total,
		Messages: []string{},
	}

	switch {
	case total == 0:
		validation.Status = ValidationWarn
		validation.Messages = append(validation.Messages, "No H1 found in extracted blocks.")
		return blocks, validation
	case total == 1:
		return blocks, validation
	}

	var kept bool
	filtered := dropExtraH1(blocks, &kept)

	validation.Status = ValidationWarn
	validation.H1Count = 1
	validation.Messages = append(validation.Messages,
		fmt.Sprintf("Multiple H1 headings found (%d). Kept the first.", total))

	return filtered, validation
}

func countH1(blocks []Block) int {
	var count int
	for _, block := range blocks {
		switch b := block.(type) {
		case Heading:
			if b.Level == 1 {
				count++
			}
		case Faq:
			count += countH1(b.AnswerBlocks)
		case Accordion:
			count += countH1(b.ContentBlocks)
		case Tabset:
			for _, tab := range b.Tabs {
				count += countH1(tab.ContentBlocks)
			}
		}
	}
	return count
}

// dropExtraH1 rebuilds the tree without level-1 headings past the first.
// The kept flag threads through the pre-order traversal so nested and
// top-level headings compete for the same single slot.
func dropExtraH1(blocks []Block, kept *bool) []Block {
	out := make([]Block, 0, len(blocks))
	for _, block := range blocks {
		switch b := block.(type) {
		case Heading:
			if b.Level == 1 {
				if *kept {
					continue
				}
				*kept = true
			}
			out = append(out, b)
		case Faq:
			b.AnswerBlocks = dropExtraH1(b.AnswerBlocks, kept)
			out = append(out, b)
		case Accordion:
			b.ContentBlocks = dropExtraH1(b.ContentBlocks, kept)
			out = append(out, b)
		case Tabset:
			tabs := make([]Tab, 0, len(b.Tabs))
			for _, tab := range b.Tabs {
				tab.ContentBlocks = dropExtraH1(tab.ContentBlocks, kept)
				tabs = append(tabs, tab)
			}
			b.Tabs = tabs
			out = append(out, b)
		default:
			out = append(out, block)
		}
	}
	return out
}

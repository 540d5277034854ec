package goquery_test

import (
	"testing"

	"github.com/hricks/onpage"
	"github.com/hricks/onpage/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extract(t *testing.T, body string) []onpage.Block {
	t.Helper()

	e := goquery.NewExtractor()
	doc, err := e.Extract(`<html><body><main>` + body + `</main></body></html>`)
	require.NoError(t, err)
	return doc.Blocks
}

func TestWalk_AriaDisclosureAccordion(t *testing.T) {
	t.Parallel()

	blocks := extract(t, `
		<button aria-expanded="false" aria-controls="panel-1">Shipping information</button>
		<div id="panel-1"><p>Orders ship within two days.</p></div>`)

	require.Len(t, blocks, 1)
	assert.Equal(t, onpage.Accordion{
		Title:         "Shipping information",
		ContentBlocks: []onpage.Block{onpage.Paragraph{Text: "Orders ship within two days."}},
	}, blocks[0])
}

func TestWalk_AriaDisclosureFaqByQuestionMark(t *testing.T) {
	t.Parallel()

	blocks := extract(t, `
		<button aria-expanded="false" aria-controls="a1">Shipping costs, explained?</button>
		<div id="a1"><p>Standard shipping is always free.</p></div>`)

	require.Len(t, blocks, 1)
	faq, ok := blocks[0].(onpage.Faq)
	require.True(t, ok)
	assert.Equal(t, "Shipping costs, explained?", faq.Question)
}

func TestWalk_AriaDisclosureFaqByQuestionWord(t *testing.T) {
	t.Parallel()

	blocks := extract(t, `
		<button aria-expanded="true" aria-controls="a1">How returns work</button>
		<div id="a1"><p>Send it back within thirty days.</p></div>`)

	require.Len(t, blocks, 1)
	assert.IsType(t, onpage.Faq{}, blocks[0])
}

func TestWalk_DisclosureNestedInsideDisclosure(t *testing.T) {
	t.Parallel()

	// A compound extractor recurses back through the classifier table, so a
	// disclosure inside another disclosure's content must classify normally.
	blocks := extract(t, `
		<details>
			<summary>What does the plan include?</summary>
			<p>Everything in the starter tier.</p>
			<details>
				<summary>Can I add more seats?</summary>
				<p>Seats are added from the billing page.</p>
			</details>
		</details>`)

	require.Len(t, blocks, 1)
	outer, ok := blocks[0].(onpage.Faq)
	require.True(t, ok)
	assert.Equal(t, "What does the plan include?", outer.Question)
	require.Len(t, outer.AnswerBlocks, 2)
	assert.Equal(t, onpage.Paragraph{Text: "Everything in the starter tier."}, outer.AnswerBlocks[0])

	inner, ok := outer.AnswerBlocks[1].(onpage.Faq)
	require.True(t, ok)
	assert.Equal(t, "Can I add more seats?", inner.Question)
	assert.Equal(t, []onpage.Block{onpage.Paragraph{Text: "Seats are added from the billing page."}}, inner.AnswerBlocks)
}

func TestWalk_DetailsNonQuestionIsAccordion(t *testing.T) {
	t.Parallel()

	blocks := extract(t, `<details><summary>Technical specifications</summary><p>Weighs about two kilograms.</p></details>`)

	require.Len(t, blocks, 1)
	assert.Equal(t, onpage.Accordion{
		Title:         "Technical specifications",
		ContentBlocks: []onpage.Block{onpage.Paragraph{Text: "Weighs about two kilograms."}},
	}, blocks[0])
}

func TestWalk_ConsumedPanelNotReEmitted(t *testing.T) {
	t.Parallel()

	blocks := extract(t, `
		<button aria-expanded="false" aria-controls="p1">Delivery options</button>
		<div id="p1"><p>Pick a courier at checkout time.</p></div>
		<p>Unrelated trailing paragraph here.</p>`)

	require.Len(t, blocks, 2)
	assert.IsType(t, onpage.Accordion{}, blocks[0])
	assert.Equal(t, onpage.Paragraph{Text: "Unrelated trailing paragraph here."}, blocks[1])
}

func TestWalk_UnresolvedDisclosureTarget(t *testing.T) {
	t.Parallel()

	blocks := extract(t, `<button aria-expanded="false" aria-controls="missing">Open the panel</button>`)

	require.Len(t, blocks, 1)
	assert.Equal(t, onpage.Accordion{
		Title:         "Open the panel",
		ContentBlocks: []onpage.Block{},
	}, blocks[0])
}

func TestWalk_Tabset(t *testing.T) {
	t.Parallel()

	blocks := extract(t, `
		<div role="tablist">
			<button role="tab" aria-controls="t1">Monthly</button>
			<button role="tab" aria-controls="t2">Yearly</button>
			<button role="tab" aria-controls="nowhere">Ghost</button>
		</div>
		<div id="t1"><p>Billed every single month.</p></div>
		<div id="t2"><p>Two months free on this plan.</p></div>`)

	require.Len(t, blocks, 1)
	tabset, ok := blocks[0].(onpage.Tabset)
	require.True(t, ok)
	require.Len(t, tabset.Tabs, 3)

	assert.Equal(t, "Monthly", tabset.Tabs[0].Title)
	assert.Equal(t, []onpage.Block{onpage.Paragraph{Text: "Billed every single month."}}, tabset.Tabs[0].ContentBlocks)
	assert.Equal(t, "Yearly", tabset.Tabs[1].Title)
	assert.Empty(t, tabset.Tabs[2].ContentBlocks)
}

func TestWalk_EmptyTablistEmitsNothing(t *testing.T) {
	t.Parallel()

	blocks := extract(t, `<div role="tablist"></div><p>Following paragraph for balance.</p>`)

	require.Len(t, blocks, 1)
	assert.IsType(t, onpage.Paragraph{}, blocks[0])
}

func TestWalk_RoleHeadingLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		body  string
		level int
	}{
		{name: "default level", body: `<div role="heading">Plain role heading</div>`, level: 2},
		{name: "explicit level", body: `<div role="heading" aria-level="3">Level three heading</div>`, level: 3},
		{name: "clamped high", body: `<div role="heading" aria-level="9">Too deep heading</div>`, level: 6},
		{name: "clamped low", body: `<div role="heading" aria-level="0">Too shallow heading</div>`, level: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			blocks := extract(t, tt.body)

			require.Len(t, blocks, 1)
			h, ok := blocks[0].(onpage.Heading)
			require.True(t, ok)
			assert.Equal(t, tt.level, h.Level)
		})
	}
}

func TestWalk_EmptyHeadingConsumedSilently(t *testing.T) {
	t.Parallel()

	blocks := extract(t, `<h2>   </h2><p>Paragraph after the blank heading.</p>`)

	require.Len(t, blocks, 1)
	assert.IsType(t, onpage.Paragraph{}, blocks[0])
}

func TestWalk_Lists(t *testing.T) {
	t.Parallel()

	blocks := extract(t, `
		<ul>
			<li>alpha entry</li>
			<li>   </li>
			<li hidden>ghost entry</li>
			<li>beta entry</li>
		</ul>
		<ol><li>first step</li></ol>`)

	require.Len(t, blocks, 2)
	assert.Equal(t, onpage.List{Ordered: false, Items: []string{"alpha entry", "beta entry"}}, blocks[0])
	assert.Equal(t, onpage.List{Ordered: true, Items: []string{"first step"}}, blocks[1])
}

func TestWalk_EmptyListEmitsNothing(t *testing.T) {
	t.Parallel()

	blocks := extract(t, `<ul><li> </li></ul><p>Only this paragraph survives.</p>`)

	require.Len(t, blocks, 1)
	assert.IsType(t, onpage.Paragraph{}, blocks[0])
}

func TestWalk_Table(t *testing.T) {
	t.Parallel()

	blocks := extract(t, `
		<table>
			<thead><tr><th>Plan</th><th>Price</th></tr></thead>
			<tbody>
				<tr><td>Pro</td><td>$10</td></tr>
				<tr><td>  </td><td> </td></tr>
			</tbody>
		</table>`)

	require.Len(t, blocks, 1)
	assert.Equal(t, onpage.Table{Rows: [][]string{{"Plan", "Price"}, {"Pro", "$10"}}}, blocks[0])
}

func TestWalk_CtaExclusions(t *testing.T) {
	t.Parallel()

	// Excluded candidates are transparent, so their labels are kept short
	// enough that no bare-text paragraph surfaces either.
	blocks := extract(t, `
		<form><button>Apply now</button></form>
		<button type="submit">Submit</button>
		<button type="reset">Reset</button>
		<a href="#">Top</a>
		<a href="javascript:void(0)">Open menu</a>
		<a>No target</a>
		<button>Real call to action</button>`)

	require.Len(t, blocks, 1)
	assert.Equal(t, onpage.Cta{Text: "Real call to action"}, blocks[0])
}

func TestWalk_ExcludedCtaStaysTransparent(t *testing.T) {
	t.Parallel()

	// An excluded anchor is not a block, but content under it still walks.
	blocks := extract(t, `<a href="#"><p>Paragraph nested under dead anchor.</p></a>`)

	require.Len(t, blocks, 1)
	assert.Equal(t, onpage.Paragraph{Text: "Paragraph nested under dead anchor."}, blocks[0])
}

func TestWalk_RoleButtonCta(t *testing.T) {
	t.Parallel()

	blocks := extract(t, `<div role="button">Request a product demo</div>`)

	require.Len(t, blocks, 1)
	assert.Equal(t, onpage.Cta{Text: "Request a product demo"}, blocks[0])
}

func TestWalk_HiddenContentSkipped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "hidden attribute", body: `<p hidden>Hidden paragraph never appears.</p>`},
		{name: "aria-hidden", body: `<p aria-hidden="true">Hidden paragraph never appears.</p>`},
		{name: "display none", body: `<p style="display: none">Hidden paragraph never appears.</p>`},
		{name: "visibility hidden", body: `<p style="visibility:hidden">Hidden paragraph never appears.</p>`},
		{name: "sr-only class", body: `<p class="sr-only">Hidden paragraph never appears.</p>`},
		{name: "screen-reader-text class", body: `<p class="screen-reader-text">Hidden paragraph never appears.</p>`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			blocks := extract(t, tt.body+`<p>Visible paragraph stays put.</p>`)

			assert.Equal(t, []onpage.Block{
				onpage.Paragraph{Text: "Visible paragraph stays put."},
			}, blocks)
		})
	}
}

func TestWalk_HiddenSpanExcludedFromText(t *testing.T) {
	t.Parallel()

	blocks := extract(t, `<p>Visible before <span class="visually-hidden">(screen reader note)</span> and after.</p>`)

	require.Len(t, blocks, 1)
	assert.Equal(t, onpage.Paragraph{Text: "Visible before and after."}, blocks[0])
}

func TestWalk_ShortParagraphDropped(t *testing.T) {
	t.Parallel()

	blocks := extract(t, `<p>Too short.</p><p>This one is long enough to keep.</p>`)

	assert.Equal(t, []onpage.Block{
		onpage.Paragraph{Text: "This one is long enough to keep."},
	}, blocks)
}

func TestWalk_StandaloneTextRuns(t *testing.T) {
	t.Parallel()

	// Short bare text is ignored; long bare text becomes a paragraph.
	blocks := extract(t, `<div>ok then</div><div>A bare text run long enough to matter.</div>`)

	assert.Equal(t, []onpage.Block{
		onpage.Paragraph{Text: "A bare text run long enough to matter."},
	}, blocks)
}

func TestWalk_InlineMarkupFlattened(t *testing.T) {
	t.Parallel()

	blocks := extract(t, `<p>Mixed <strong>bold</strong> and <em>italic</em> inline text.</p>`)

	require.Len(t, blocks, 1)
	assert.Equal(t, onpage.Paragraph{Text: "Mixed bold and italic inline text."}, blocks[0])
}

func TestWalk_ReadingOrderPreserved(t *testing.T) {
	t.Parallel()

	blocks := extract(t, `
		<h1>Page title</h1>
		<p>Opening paragraph of the page.</p>
		<h2>Second section</h2>
		<ul><li>first point</li><li>second point</li></ul>`)

	require.Len(t, blocks, 4)
	assert.Equal(t, onpage.BlockHeading, blocks[0].Type())
	assert.Equal(t, onpage.BlockParagraph, blocks[1].Type())
	assert.Equal(t, onpage.BlockHeading, blocks[2].Type())
	assert.Equal(t, onpage.BlockList, blocks[3].Type())
}

package goquery

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hricks/onpage"
	"golang.org/x/net/html"
)

// chromeTags are page-chrome landmarks excluded from content extraction.
var chromeTags = map[string]bool{
	"header": true,
	"nav":    true,
	"footer": true,
	"aside":  true,
}

// chromeRoles are the ARIA equivalents of the chrome landmark tags.
var chromeRoles = map[string]bool{
	"banner":        true,
	"navigation":    true,
	"contentinfo":   true,
	"complementary": true,
}

// skippedTags root subtrees the walker never enters, beyond chrome:
// forms and non-content machinery.
var skippedTags = map[string]bool{
	"form":     true,
	"script":   true,
	"style":    true,
	"noscript": true,
	"meta":     true,
	"link":     true,
	"img":      true,
	"svg":      true,
	"picture":  true,
}

// neverVisibleTags contribute no visible text in any context.
var neverVisibleTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
}

const (
	// standaloneTextMin is the minimum normalized length for a bare text run
	// to be considered paragraph material.
	standaloneTextMin = 10

	// paragraphMinLen is the global noise floor: shorter paragraphs are
	// dropped regardless of origin.
	paragraphMinLen = 15
)

// walker performs the single depth-first, pre-order traversal that produces
// the raw block tree. All traversal state (id index, consumed panels) is
// owned by the walker instance, so concurrent extractions of distinct
// documents never share anything.
type walker struct {
	root     *html.Node
	base     *url.URL
	ids      map[string]*html.Node
	consumed map[*html.Node]bool
}

func newWalker(root *html.Node, base *url.URL) *walker {
	w := &walker{
		root:     root,
		base:     base,
		ids:      make(map[string]*html.Node),
		consumed: make(map[*html.Node]bool),
	}
	w.indexIDs(root)
	return w
}

// indexIDs builds the id lookup used to resolve aria-controls references.
// Scoped to the walk root: references pointing outside it stay unresolved.
func (w *walker) indexIDs(n *html.Node) {
	if n.Type == html.ElementNode {
		if id := attr(n, "id"); id != "" {
			if _, ok := w.ids[id]; !ok {
				w.ids[id] = n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.indexIDs(c)
	}
}

func (w *walker) run() []onpage.Block {
	blocks := []onpage.Block{}
	w.visit(w.root, &blocks)
	return blocks
}

// rule pairs a predicate with an extractor. The table below is evaluated
// top to bottom; the first match consumes the node's subtree whether or not
// the extractor emits a block.
type rule struct {
	match   func(w *walker, n *html.Node) bool
	extract func(w *walker, n *html.Node) (onpage.Block, bool)
}

// classifierRules is the fixed, precedence-ordered dispatch table. It is
// populated in init because the compound extractors recurse back into visit,
// which reads the table.
var classifierRules []rule

func init() {
	classifierRules = []rule{
		{matchFaq, extractFaq},
		{matchAccordion, extractAccordion},
		{matchTabset, extractTabset},
		{matchHeading, extractHeading},
		{matchList, extractList},
		{matchCta, extractCta},
		{matchTable, extractTable},
		{matchParagraph, extractParagraph},
	}
}

// visit classifies a single element. Skipped subtrees are never entered;
// a matched rule consumes the subtree; anything else is transparent and
// its children are walked in order.
func (w *walker) visit(n *html.Node, blocks *[]onpage.Block) {
	if n.Type != html.ElementNode {
		return
	}
	if skippedTags[n.Data] || chromeTags[n.Data] || chromeRoles[attr(n, "role")] {
		return
	}
	if w.consumed[n] || isHidden(n) {
		return
	}

	for _, r := range classifierRules {
		if r.match(w, n) {
			if block, ok := r.extract(w, n); ok {
				*blocks = append(*blocks, block)
			}
			return
		}
	}

	w.walkChildren(n, blocks)
}

// walkChildren visits a transparent container's children in document order.
// Bare text runs longer than standaloneTextMin become paragraph candidates.
func (w *walker) walkChildren(n *html.Node, blocks *[]onpage.Block) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			text := onpage.Normalize(c.Data)
			if utf8.RuneCountInString(text) > standaloneTextMin {
				if p, ok := newParagraph(text); ok {
					*blocks = append(*blocks, p)
				}
			}
		case html.ElementNode:
			w.visit(c, blocks)
		}
	}
}

// collect re-invokes the classifier over a compound block's content
// container, returning the nested block sequence. The container itself is
// treated as transparent.
func (w *walker) collect(n *html.Node) []onpage.Block {
	blocks := []onpage.Block{}
	w.walkChildren(n, &blocks)
	return blocks
}

// --- Disclosure (FAQ / Accordion) ---

// isDisclosure reports whether the element is a disclosure trigger: a
// details/summary pair, or an aria-expanded + aria-controls pair. Tabs carry
// aria-controls too and belong to the tabset rule instead.
func isDisclosure(n *html.Node) bool {
	if n.Data == "details" && findFirst(n, "summary") != nil {
		return true
	}
	return hasAttr(n, "aria-expanded") && attr(n, "aria-controls") != "" &&
		attr(n, "role") != "tab"
}

// disclosureTrigger returns the normalized trigger text: the summary for a
// details element, the trigger element's own text otherwise.
func disclosureTrigger(n *html.Node) string {
	if n.Data == "details" {
		if s := findFirst(n, "summary"); s != nil {
			return visibleText(s)
		}
		return ""
	}
	return visibleText(n)
}

// questionLeads are the interrogative openers that mark a disclosure trigger
// as an FAQ question.
var questionLeads = map[string]bool{
	"what": true, "who": true, "where": true, "when": true, "why": true,
	"how": true, "can": true, "do": true, "does": true, "is": true,
	"are": true, "will": true, "would": true,
}

// isFaqQuestion reports whether trigger text reads as a question: it ends
// with "?" or opens with an interrogative word (case-insensitive).
func isFaqQuestion(text string) bool {
	key := onpage.SignatureKey(text)
	if key == "" {
		return false
	}
	if strings.HasSuffix(key, "?") {
		return true
	}
	first, _, _ := strings.Cut(key, " ")
	return questionLeads[first]
}

func matchFaq(w *walker, n *html.Node) bool {
	return isDisclosure(n) && isFaqQuestion(disclosureTrigger(n))
}

func extractFaq(w *walker, n *html.Node) (onpage.Block, bool) {
	question := disclosureTrigger(n)
	if question == "" {
		return nil, false
	}
	return onpage.Faq{Question: question, AnswerBlocks: w.disclosureContent(n)}, true
}

func matchAccordion(w *walker, n *html.Node) bool {
	return isDisclosure(n)
}

func extractAccordion(w *walker, n *html.Node) (onpage.Block, bool) {
	title := disclosureTrigger(n)
	if title == "" {
		return nil, false
	}
	return onpage.Accordion{Title: title, ContentBlocks: w.disclosureContent(n)}, true
}

// disclosureContent walks the revealed container. For details elements that
// is every non-summary child; for aria pairs it is the aria-controls target,
// resolved through the id index. An unresolved reference yields empty
// content, not a failure. The target is marked consumed before walking so a
// trigger nested inside its own panel cannot recurse forever, and so the
// panel is not re-emitted when the outer traversal reaches it.
func (w *walker) disclosureContent(n *html.Node) []onpage.Block {
	if n.Data == "details" {
		blocks := []onpage.Block{}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "summary" {
				continue
			}
			switch c.Type {
			case html.TextNode:
				text := onpage.Normalize(c.Data)
				if utf8.RuneCountInString(text) > standaloneTextMin {
					if p, ok := newParagraph(text); ok {
						blocks = append(blocks, p)
					}
				}
			case html.ElementNode:
				w.visit(c, &blocks)
			}
		}
		return blocks
	}

	target := w.ids[strings.TrimPrefix(attr(n, "aria-controls"), "#")]
	if target == nil || w.consumed[target] {
		return []onpage.Block{}
	}
	w.consumed[target] = true
	return w.collect(target)
}

// --- Tabset ---

func matchTabset(w *walker, n *html.Node) bool {
	return attr(n, "role") == "tablist"
}

// extractTabset enumerates descendant role="tab" elements in document order
// and resolves each tab's panel via its aria-controls id reference. An
// unresolved reference yields an empty tab, not a failure.
func extractTabset(w *walker, n *html.Node) (onpage.Block, bool) {
	var tabs []onpage.Tab
	for _, tabNode := range findAllByRole(n, "tab") {
		title := visibleText(tabNode)
		if title == "" {
			continue
		}

		content := []onpage.Block{}
		if id := strings.TrimPrefix(attr(tabNode, "aria-controls"), "#"); id != "" {
			if panel := w.ids[id]; panel != nil && !w.consumed[panel] {
				w.consumed[panel] = true
				content = w.collect(panel)
			}
		}

		tabs = append(tabs, onpage.Tab{Title: title, ContentBlocks: content})
	}

	if len(tabs) == 0 {
		return nil, false
	}
	return onpage.Tabset{Tabs: tabs}, true
}

// --- Heading ---

func matchHeading(w *walker, n *html.Node) bool {
	return headingLevel(n.Data) > 0 || attr(n, "role") == "heading"
}

func extractHeading(w *walker, n *html.Node) (onpage.Block, bool) {
	text := visibleText(n)
	if text == "" {
		return nil, false
	}

	level := headingLevel(n.Data)
	if level == 0 {
		level = 2
		if v, err := strconv.Atoi(attr(n, "aria-level")); err == nil {
			level = v
		}
		level = max(1, min(6, level))
	}

	return onpage.Heading{Level: level, Text: text}, true
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// --- List ---

func matchList(w *walker, n *html.Node) bool {
	return n.Data == "ul" || n.Data == "ol"
}

func extractList(w *walker, n *html.Node) (onpage.Block, bool) {
	var items []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" || isHidden(c) {
			continue
		}
		if text := visibleText(c); text != "" {
			items = append(items, text)
		}
	}

	if len(items) == 0 {
		return nil, false
	}
	return onpage.List{Ordered: n.Data == "ol", Items: items}, true
}

// --- CTA ---

// matchCta matches buttons, role="button" elements, and anchors, except those
// excluded by policy: inside a form, submit/reset buttons, and anchors with
// empty, "#", or javascript: targets. Excluded candidates stay transparent so
// their children are still walked.
func matchCta(w *walker, n *html.Node) bool {
	switch {
	case n.Data == "button", n.Data == "a", attr(n, "role") == "button":
	default:
		return false
	}

	if w.hasFormAncestor(n) {
		return false
	}

	if n.Data == "button" {
		switch strings.ToLower(attr(n, "type")) {
		case "submit", "reset":
			return false
		}
	}

	if n.Data == "a" {
		href := strings.TrimSpace(attr(n, "href"))
		if href == "" || href == "#" || strings.HasPrefix(strings.ToLower(href), "javascript:") {
			return false
		}
	}

	return true
}

func extractCta(w *walker, n *html.Node) (onpage.Block, bool) {
	text := visibleText(n)
	if text == "" {
		return nil, false
	}

	cta := onpage.Cta{Text: text}
	if n.Data == "a" {
		cta.Href = w.resolveHref(attr(n, "href"))
	}
	return cta, true
}

// resolveHref resolves an anchor target against the page base when one is
// known; otherwise the href is kept as written.
func (w *walker) resolveHref(href string) string {
	href = strings.TrimSpace(href)
	if w.base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return w.base.ResolveReference(ref).String()
}

// hasFormAncestor checks the ancestor chain up to the walk root.
func (w *walker) hasFormAncestor(n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == "form" {
			return true
		}
		if p == w.root {
			break
		}
	}
	return false
}

// --- Table ---

func matchTable(w *walker, n *html.Node) bool {
	return n.Data == "table"
}

func extractTable(w *walker, n *html.Node) (onpage.Block, bool) {
	var rows [][]string
	for _, tr := range findAll(n, "tr") {
		var row []string
		for _, cell := range findAll(tr, "th", "td") {
			if text := visibleText(cell); text != "" {
				row = append(row, text)
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}

	if len(rows) == 0 {
		return nil, false
	}
	return onpage.Table{Rows: rows}, true
}

// --- Paragraph ---

func matchParagraph(w *walker, n *html.Node) bool {
	return n.Data == "p"
}

func extractParagraph(w *walker, n *html.Node) (onpage.Block, bool) {
	return newParagraph(visibleText(n))
}

// newParagraph applies the global noise floor: normalized text shorter than
// paragraphMinLen is dropped whatever its origin.
func newParagraph(text string) (onpage.Block, bool) {
	if utf8.RuneCountInString(text) < paragraphMinLen {
		return nil, false
	}
	return onpage.Paragraph{Text: text}, true
}

// Package onpage converts fully-rendered HTML pages into a structured,
// order-preserving representation of their meaningful content for on-page
// SEO analysis. Chrome, forms, scripts, and visual-only markup are discarded;
// the remaining content is classified into typed blocks (headings, paragraphs,
// lists, CTAs, tables, and nested interactive widgets), deduplicated, and
// checked against a single-top-heading invariant.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package onpage

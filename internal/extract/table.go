package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// TableMatcher reports whether a table with the given header labels is the one sought
type TableMatcher func(headers []string) bool

// HasAllHeaders matches tables that have a header cell equal to every label
func HasAllHeaders(labels ...string) TableMatcher {
	return func(headers []string) bool {
		present := make(map[string]bool, len(headers))
		for _, h := range headers {
			present[h] = true
		}
		for _, label := range labels {
			if !present[label] {
				return false
			}
		}
		return true
	}
}

// HeaderTextContains matches tables whose joined header text contains every substring
func HeaderTextContains(substrs ...string) TableMatcher {
	return func(headers []string) bool {
		text := strings.Join(headers, " ")
		for _, s := range substrs {
			if !strings.Contains(text, s) {
				return false
			}
		}
		return true
	}
}

// ColumnResolver returns the index of a column for the given headers, or -1 if it
// cannot decide.
type ColumnResolver func(headers []string) int

// ExactHeader resolves to the first header equal to label
func ExactHeader(label string) ColumnResolver {
	return func(headers []string) int {
		for i, h := range headers {
			if h == label {
				return i
			}
		}
		return -1
	}
}

// LastExactHeader resolves to the last header equal to label
func LastExactHeader(label string) ColumnResolver {
	return func(headers []string) int {
		for i := len(headers) - 1; i >= 0; i-- {
			if headers[i] == label {
				return i
			}
		}
		return -1
	}
}

// Positional resolves to idx when the table has more than idx headers, otherwise to fallback
func Positional(idx, fallback int) ColumnResolver {
	return func(headers []string) int {
		if len(headers) > idx {
			return idx
		}
		return fallback
	}
}

// FromEnd resolves to the column n places from the end, clamped at 0
func FromEnd(n int) ColumnResolver {
	return func(headers []string) int {
		return max(0, len(headers)-n)
	}
}

// ResolveColumn tries resolvers in order and returns the first non-negative index.
// It returns 0 when no resolver decides.
func ResolveColumn(headers []string, resolvers ...ColumnResolver) int {
	for _, resolve := range resolvers {
		if idx := resolve(headers); idx >= 0 {
			return idx
		}
	}
	return 0
}

// Table is a located HTML table reduced to header labels and data rows
type Table struct {
	Headers []string
	Rows    [][]string // cell texts of every row that has at least one td
}

// FindTable returns the first table in document order whose headers satisfy match
func FindTable(doc *goquery.Selection, match TableMatcher) (*Table, bool) {
	var found *Table

	doc.Find("table").EachWithBreak(func(i int, table *goquery.Selection) bool {
		headers := make([]string, 0)
		ownElements(table, "th").Each(func(_ int, th *goquery.Selection) {
			headers = append(headers, nodeText(th, ""))
		})

		if !match(headers) {
			return true
		}

		found = &Table{
			Headers: headers,
			Rows:    readRows(table),
		}
		return false
	})

	return found, found != nil
}

// readRows collects the cell texts of the table's own data rows
func readRows(table *goquery.Selection) [][]string {
	rows := make([][]string, 0)

	ownElements(table, "tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.ChildrenFiltered("td")
		if cells.Length() == 0 {
			return
		}
		texts := make([]string, 0, cells.Length())
		cells.Each(func(_ int, td *goquery.Selection) {
			texts = append(texts, nodeText(td, " "))
		})
		rows = append(rows, texts)
	})

	return rows
}

// ownElements finds descendants of table matching selector that do not belong to a nested table
func ownElements(table *goquery.Selection, selector string) *goquery.Selection {
	return table.Find(selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Closest("table").IsSelection(table)
	})
}

// nodeText joins the trimmed, non-empty text nodes below sel with sep
func nodeText(sel *goquery.Selection, sep string) string {
	parts := make([]string, 0)
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, sep)
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

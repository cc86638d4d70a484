// Package export renders the currently visible records (after search,
// filters, and sort, across all pages) into a printable report.
package export

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// Cell is one table cell. When ImageURL is set the cell renders a
// thumbnail instead of text.
type Cell struct {
	Text     string
	ImageURL string
}

// Text returns a plain text cell.
func Text(s string) Cell { return Cell{Text: s} }

// Image returns an image cell pointing at an absolute URL.
func Image(url string) Cell { return Cell{ImageURL: url} }

// Document is a fully prepared report awaiting rendering.
type Document struct {
	Title       string
	GeneratedAt time.Time
	Headers     []string
	Rows        [][]Cell
}

// HTML renders the document as a standalone page. All user-supplied
// values are escaped.
func (d Document) HTML() string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><style>")
	b.WriteString(reportStyle)
	b.WriteString("</style></head><body>")
	fmt.Fprintf(&b, "<h1>%s</h1>", html.EscapeString(d.Title))
	fmt.Fprintf(&b, "<p class=\"meta\">Generated %s &middot; %d records</p>",
		d.GeneratedAt.Format("2006-01-02 15:04"), len(d.Rows))
	b.WriteString("<table><thead><tr>")
	for _, h := range d.Headers {
		fmt.Fprintf(&b, "<th>%s</th>", html.EscapeString(h))
	}
	b.WriteString("</tr></thead><tbody>")
	for _, row := range d.Rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			if cell.ImageURL != "" {
				fmt.Fprintf(&b, "<td><img src=\"%s\" alt=\"\"></td>", html.EscapeString(cell.ImageURL))
			} else {
				fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(cell.Text))
			}
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table></body></html>")
	return b.String()
}

const reportStyle = `
body { font-family: sans-serif; margin: 24px; color: #222; }
h1 { font-size: 20px; margin-bottom: 4px; }
.meta { color: #666; font-size: 12px; margin-top: 0; }
table { border-collapse: collapse; width: 100%; font-size: 12px; }
th { text-align: left; background: #f0f0f0; }
th, td { border: 1px solid #ccc; padding: 6px 8px; }
img { max-height: 48px; }
`

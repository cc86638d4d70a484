package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDocumentHTML(t *testing.T) {
	doc := Document{
		Title:       "Assets",
		GeneratedAt: time.Date(2026, 8, 31, 14, 5, 0, 0, time.UTC),
		Headers:     []string{"Name", "Status", "Image"},
		Rows: [][]Cell{
			{Text("Water pump"), Text("ACTIVE"), Image("https://farm.example/uploads/pump.jpg")},
			{Text("Net <large>"), Text("RETIRED"), Text("")},
		},
	}

	out := doc.HTML()

	assert.Contains(t, out, "<h1>Assets</h1>")
	assert.Contains(t, out, "Generated 2026-08-31 14:05")
	assert.Contains(t, out, "2 records")
	assert.Contains(t, out, "<th>Name</th>")
	assert.Contains(t, out, `<img src="https://farm.example/uploads/pump.jpg"`)
	assert.Contains(t, out, "Net &lt;large&gt;", "cell text is escaped")
	assert.NotContains(t, out, "<large>")
}

func TestDocumentHTML_EscapesTitleAndHeaders(t *testing.T) {
	doc := Document{
		Title:   `<script>alert("x")</script>`,
		Headers: []string{"A & B"},
	}

	out := doc.HTML()

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "A &amp; B")
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "asset_export_20260831.pdf", Filename("asset", now))
	assert.Equal(t, "feedstock_export_20260831.pdf", Filename("feedstock", now))
}

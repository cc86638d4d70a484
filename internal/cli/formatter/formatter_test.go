package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"NAME", "QTY"},
		[][]string{
			{"Water pump", "5"},
			{"Net", "12"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4, "header, separator, two rows")
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[2], "Water pump")
	assert.Contains(t, lines[3], "Net")
}

func TestRenderTable_EmptyHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}

func TestStatus(t *testing.T) {
	assert.Contains(t, Status("ACTIVE"), "ACTIVE")
	assert.Contains(t, Status("DISPOSED"), "DISPOSED")
}

func TestPager(t *testing.T) {
	assert.Empty(t, Pager([]int{1}, 1, 1), "single page renders nothing")

	out := Pager([]int{2, 3, 4, 5, 6}, 4, 9)
	assert.Contains(t, out, "[4]")
	assert.Contains(t, out, "‹")
	assert.Contains(t, out, "›")

	first := Pager([]int{1, 2, 3, 4, 5}, 1, 9)
	assert.NotContains(t, first, "‹", "no back arrow on first page")
}

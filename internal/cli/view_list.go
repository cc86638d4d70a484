package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mkvist/hatchctl/internal/cli/formatter"
	"github.com/mkvist/hatchctl/internal/collection"
	"github.com/mkvist/hatchctl/internal/domain"
	"github.com/mkvist/hatchctl/internal/export"
	"github.com/mkvist/hatchctl/internal/form"
)

type listLoadedMsg[T domain.Entity] struct {
	records []T
	err     error
}

// mutationDoneMsg reports a completed delete. The apply closure runs on
// the update loop, where the store may be touched.
type mutationDoneMsg struct {
	resource domain.Resource
	apply    func(*App) bool
	toast    string
	err      error
}

type exportDoneMsg struct {
	filename string
	err      error
}

// listView is the searchable, filterable, sorted, paginated table over
// one resource's collection. All six resources use this view; the
// resourceSpec supplies what differs.
type listView[T domain.Entity] struct {
	state *SharedState
	spec  resourceSpec[T]
	cfg   collection.Config[T]

	query  collection.Query
	view   collection.View[T]
	cursor int

	search    textinput.Model
	searching bool

	loading bool
	// busy locks mutating keys while a delete or export is in flight.
	busy bool
	err  error

	// filterIdx tracks the cycle position per filter key; 0 means "all".
	filterIdx map[string]int
}

func newListView[T domain.Entity](state *SharedState, spec resourceSpec[T]) *listView[T] {
	cfg := spec.config
	cfg.PageSize = state.App.PageSize

	search := textinput.New()
	search.Placeholder = "search"
	search.Prompt = "/"
	search.CharLimit = 64

	return &listView[T]{
		state:     state,
		spec:      spec,
		cfg:       cfg,
		query:     collection.Query{Page: 1},
		search:    search,
		loading:   true,
		filterIdx: make(map[string]int),
	}
}

func (v *listView[T]) ID() ViewID    { return ViewResourceList }
func (v *listView[T]) Title() string { return v.spec.title }

func (v *listView[T]) capturingInput() bool { return v.searching }

func (v *listView[T]) ShortHelp() []key.Binding {
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "order")),
	}
	if len(v.spec.filters) > 0 {
		bindings = append(bindings, key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")))
	}
	return append(bindings,
		key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "page")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "export pdf")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	)
}

func (v *listView[T]) Init() tea.Cmd {
	return v.load()
}

func (v *listView[T]) load() tea.Cmd {
	v.loading = true
	app := v.state.App
	v.spec.store(app).BeginLoad()
	fetch := v.spec.fetch
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		records, err := fetch(ctx, app)
		return listLoadedMsg[T]{records: records, err: err}
	}
}

// recompute re-derives the visible rows from the shared collection and
// syncs the query's page with the clamped result.
func (v *listView[T]) recompute() {
	v.view = collection.Resolve(v.spec.store(v.state.App).Records(), v.cfg, v.query)
	v.query.Page = v.view.Page
	if v.cursor >= len(v.view.Rows) {
		v.cursor = len(v.view.Rows) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *listView[T]) selected() (T, bool) {
	var zero T
	if v.cursor >= len(v.view.Rows) {
		return zero, false
	}
	return v.view.Rows[v.cursor], true
}

func (v *listView[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg[T]:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.spec.store(v.state.App).SetRecords(msg.records)
		v.recompute()
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case recomputeViewMsg:
		if msg.resource == v.spec.resource {
			v.recompute()
		}
		return v, nil

	case mutationDoneMsg:
		v.busy = false
		if msg.err != nil {
			return v, showToast(msg.err.Error(), true)
		}
		msg.apply(v.state.App)
		v.recompute()
		return v, showToast(msg.toast, false)

	case exportDoneMsg:
		v.busy = false
		if msg.err != nil {
			return v, showToast("Export failed: "+msg.err.Error(), true)
		}
		return v, showToast("Exported "+msg.filename, false)

	case tea.KeyMsg:
		if v.searching {
			return v.updateSearch(msg)
		}
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *listView[T]) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		v.searching = false
		v.search.Blur()
		v.query = v.query.WithSearch(v.search.Value())
		v.recompute()
		return v, nil
	case tea.KeyEsc:
		v.searching = false
		v.search.Blur()
		v.search.SetValue(v.query.Search)
		return v, nil
	}
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	return v, cmd
}

func (v *listView[T]) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.view.Rows)-1 {
			v.cursor++
		}
	case "/":
		v.searching = true
		return v, v.search.Focus()
	case "s":
		v.query = v.query.WithSort(v.nextSortKey())
		v.recompute()
	case "o":
		if v.query.SortKey != "" {
			v.query = v.query.WithSort(v.query.SortKey)
			v.recompute()
		}
	case "f":
		v.cycleFilter(0)
	case "g":
		v.cycleFilter(1)
	case "[":
		v.query = v.query.WithPage(v.query.Page - 1)
		v.recompute()
	case "]":
		v.query = v.query.WithPage(v.query.Page + 1)
		v.recompute()
	case "a":
		if v.busy {
			return v, nil
		}
		var zero T
		return v, pushView(v.spec.form(v.state, form.Create{}, zero))
	case "e", "enter":
		if v.busy {
			return v, nil
		}
		if rec, ok := v.selected(); ok {
			return v, pushView(v.spec.form(v.state, form.Update{ID: rec.EntityID()}, rec))
		}
	case "x":
		if v.busy {
			return v, nil
		}
		if rec, ok := v.selected(); ok {
			v.busy = true
			return v, v.deleteRecord(rec.EntityID())
		}
	case "p":
		if v.busy {
			return v, nil
		}
		v.busy = true
		return v, v.exportPDF()
	case "r":
		return v, v.load()
	}
	return v, nil
}

// nextSortKey returns the sort column after the current one, wrapping.
func (v *listView[T]) nextSortKey() string {
	keys := v.spec.sortKeys
	if len(keys) == 0 {
		return v.query.SortKey
	}
	current := v.query.SortKey
	if current == "" {
		current = v.cfg.DefaultSort
	}
	for i, k := range keys {
		if k == current {
			return keys[(i+1)%len(keys)]
		}
	}
	return keys[0]
}

// cycleFilter advances the nth filter through all → value1 → value2 → all.
func (v *listView[T]) cycleFilter(n int) {
	if n >= len(v.spec.filters) {
		return
	}
	f := v.spec.filters[n]
	idx := (v.filterIdx[f.key] + 1) % (len(f.values) + 1)
	v.filterIdx[f.key] = idx
	value := ""
	if idx > 0 {
		value = f.values[idx-1]
	}
	v.query = v.query.WithFilter(f.key, value)
	v.recompute()
}

func (v *listView[T]) deleteRecord(id string) tea.Cmd {
	app, spec := v.state.App, v.spec
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		message, err := spec.remove(ctx, app, id)
		if err != nil {
			app.Log.Warn("delete record",
				zap.String("resource", string(spec.resource)),
				zap.String("id", id),
				zap.Error(err))
			return mutationDoneMsg{resource: spec.resource, err: err}
		}
		if message == "" {
			message = "Deleted"
		}
		return mutationDoneMsg{
			resource: spec.resource,
			apply: func(a *App) bool {
				return spec.store(a).Apply(collection.Deleted[T](id))
			},
			toast: message,
		}
	}
}

// exportPDF renders every record matching the current search, filters,
// and sort — all pages, not just the visible one.
func (v *listView[T]) exportPDF() tea.Cmd {
	app, spec := v.state.App, v.spec
	filtered := v.view.Filtered
	return func() tea.Msg {
		now := time.Now()
		doc := spec.doc(app, filtered, now)
		data, err := app.Renderer.Render(doc)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		filename := export.Filename(string(spec.resource), now)
		if err := os.WriteFile(filename, data, 0o644); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{filename: filename}
	}
}

// ── rendering ───────────────────────────────────────────────────────────────

func (v *listView[T]) View() string {
	var b strings.Builder
	b.WriteString("\n")

	b.WriteString("  " + v.renderQueryLine() + "\n\n")

	total := v.spec.store(v.state.App).Len()
	switch {
	case v.loading:
		b.WriteString("  " + formatter.Dim("Loading...") + "\n")
	case v.err != nil:
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n")
	case total == 0:
		b.WriteString("  " + formatter.Dim("No records.") + "\n")
	case v.view.Total == 0:
		b.WriteString("  " + formatter.Dim("No matches.") + "\n")
	default:
		b.WriteString(v.renderTable())
	}

	if pager := formatter.Pager(v.view.PageWindow, v.view.Page, v.view.TotalPages); pager != "" {
		b.WriteString("\n  " + pager)
	}
	if !v.loading && total > 0 {
		b.WriteString("\n  " + formatter.Dim(fmt.Sprintf("%d of %d records", v.view.Total, total)))
	}
	return b.String()
}

// renderQueryLine shows the active search, filters, and sort.
func (v *listView[T]) renderQueryLine() string {
	var parts []string
	if v.searching {
		parts = append(parts, v.search.View())
	} else if v.query.Search != "" {
		parts = append(parts, formatter.Bold("/"+v.query.Search))
	}
	for _, f := range v.spec.filters {
		if val := v.query.Filters[f.key]; val != "" {
			parts = append(parts, formatter.StyleBlue.Render(f.label+"="+val))
		}
	}
	sortKey := v.query.SortKey
	if sortKey == "" {
		sortKey = v.cfg.DefaultSort
	}
	if sortKey != "" {
		arrow := "↑"
		if v.query.SortOrder == collection.SortDesc {
			arrow = "↓"
		}
		parts = append(parts, formatter.Dim("sort: "+sortKey+" "+arrow))
	}
	if v.busy {
		parts = append(parts, formatter.StyleYellow.Render("working..."))
	}
	return strings.Join(parts, "  ")
}

func (v *listView[T]) renderTable() string {
	headers := make([]string, 0, len(v.spec.columns)+1)
	headers = append(headers, "")
	for _, c := range v.spec.columns {
		headers = append(headers, c.header)
	}

	rows := make([][]string, 0, len(v.view.Rows))
	for i, rec := range v.view.Rows {
		cursor := " "
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸")
		}
		row := make([]string, 0, len(v.spec.columns)+1)
		row = append(row, cursor)
		for _, c := range v.spec.columns {
			row = append(row, c.cell(rec))
		}
		rows = append(rows, row)
	}

	table := formatter.RenderTable(headers, rows)
	var indented strings.Builder
	for _, line := range strings.Split(strings.TrimRight(table, "\n"), "\n") {
		indented.WriteString("  " + line + "\n")
	}
	return indented.String()
}

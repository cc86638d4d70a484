package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkvist/hatchctl/internal/cli/formatter"
	"github.com/mkvist/hatchctl/internal/collection"
	"github.com/mkvist/hatchctl/internal/domain"
)

// dashboardRecords is everything the overview fetches in one sweep.
type dashboardRecords struct {
	assets         []*domain.Asset
	feedstocks     []*domain.Feedstock
	pools          []*domain.ParentFishPool
	migrations     []*domain.EggMigration
	parentFeedings []*domain.FeedingRecord
	eggFeedings    []*domain.FeedingRecord
}

type dashboardLoadedMsg struct {
	records dashboardRecords
	err     error
}

// dashEntry is one navigable row on the dashboard menu.
type dashEntry struct {
	title string
	count func(*App) int
	open  func(*SharedState) View
}

// dashboardView is the home screen: summary cards over the loaded
// collections plus a menu into each resource list.
type dashboardView struct {
	state   *SharedState
	entries []dashEntry
	cursor  int
	loading bool
	err     error
}

func newDashboardView(state *SharedState) *dashboardView {
	entries := []dashEntry{
		{"Assets", func(a *App) int { return a.Assets.Len() },
			func(s *SharedState) View { return newListView(s, assetSpec()) }},
		{"Feedstock", func(a *App) int { return a.Feedstocks.Len() },
			func(s *SharedState) View { return newListView(s, feedstockSpec()) }},
		{"Parent Fish Pools", func(a *App) int { return a.Pools.Len() },
			func(s *SharedState) View { return newListView(s, poolSpec()) }},
		{"Egg Migrations", func(a *App) int { return a.Migrations.Len() },
			func(s *SharedState) View { return newListView(s, migrationSpec()) }},
		{"Parent Fish Feedings", func(a *App) int { return a.ParentFeedings.Len() },
			func(s *SharedState) View { return newListView(s, parentFeedingSpec()) }},
		{"Egg Fish Feedings", func(a *App) int { return a.EggFeedings.Len() },
			func(s *SharedState) View { return newListView(s, eggFeedingSpec()) }},
	}
	return &dashboardView{state: state, entries: entries, loading: true}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("1"), key.WithHelp("1-6", "jump")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.load()
}

func (v *dashboardView) load() tea.Cmd {
	v.loading = true
	app := v.state.App
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var recs dashboardRecords
		var err error
		if recs.assets, err = app.API.Assets().List(ctx); err != nil {
			return dashboardLoadedMsg{err: err}
		}
		if recs.feedstocks, err = app.API.Feedstocks().List(ctx); err != nil {
			return dashboardLoadedMsg{err: err}
		}
		if recs.pools, err = app.API.Pools().List(ctx); err != nil {
			return dashboardLoadedMsg{err: err}
		}
		if recs.migrations, err = app.API.EggMigrations().List(ctx); err != nil {
			return dashboardLoadedMsg{err: err}
		}
		if recs.parentFeedings, err = app.API.ParentFishFeedings().List(ctx); err != nil {
			return dashboardLoadedMsg{err: err}
		}
		if recs.eggFeedings, err = app.API.EggFishFeedings().List(ctx); err != nil {
			return dashboardLoadedMsg{err: err}
		}
		return dashboardLoadedMsg{records: recs}
	}
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		app := v.state.App
		app.Assets.SetRecords(msg.records.assets)
		app.Feedstocks.SetRecords(msg.records.feedstocks)
		app.Pools.SetRecords(msg.records.pools)
		app.Migrations.SetRecords(msg.records.migrations)
		app.ParentFeedings.SetRecords(msg.records.parentFeedings)
		app.EggFeedings.SetRecords(msg.records.eggFeedings)
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case recomputeViewMsg:
		// Counts and cards read the stores directly; nothing to refetch.
		return v, nil

	case tea.KeyMsg:
		switch k := msg.String(); k {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.entries)-1 {
				v.cursor++
			}
		case "enter":
			return v, pushView(v.entries[v.cursor].open(v.state))
		case "r":
			return v, v.load()
		default:
			if len(k) == 1 && k[0] >= '1' && k[0] <= '6' {
				idx := int(k[0] - '1')
				if idx < len(v.entries) {
					v.cursor = idx
					return v, pushView(v.entries[idx].open(v.state))
				}
			}
		}
	}
	return v, nil
}

func (v *dashboardView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading farm data...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error()) +
			"\n\n  " + formatter.Dim("r: retry")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(v.renderCards())
	b.WriteString("\n\n")

	for _, line := range strings.Split(formatter.Header("Resources"), "\n") {
		b.WriteString("  " + line + "\n")
	}
	for i, e := range v.entries {
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		count := formatter.Dim(fmt.Sprintf("(%d)", e.count(v.state.App)))
		b.WriteString(fmt.Sprintf("  %s%s %s %s\n",
			cursor, formatter.Dim(strconv.Itoa(i+1)+"."), e.title, count))
	}
	return b.String()
}

func (v *dashboardView) renderCards() string {
	app := v.state.App

	assetSummary := collection.Summarize(app.Assets.Records(), assetSpec().config)
	feedSummary := collection.Summarize(app.Feedstocks.Records(), feedstockSpec().config)
	poolSummary := collection.Summarize(app.Pools.Records(), poolSpec().config)

	cards := []string{
		formatter.Card("Assets",
			fmt.Sprintf("%d active / %d", assetSummary.ByStatus["ACTIVE"], assetSummary.Total),
			formatter.ColorGreen),
		formatter.Card("Low stock",
			strconv.Itoa(feedSummary.LowStock),
			lowStockColor(feedSummary.LowStock)),
		formatter.Card("Pools",
			fmt.Sprintf("%d active / %d", poolSummary.ByStatus["ACTIVE"], poolSummary.Total),
			formatter.ColorBlue),
	}
	return formatter.Cards(cards...)
}

func lowStockColor(n int) lipgloss.Color {
	if n > 0 {
		return formatter.ColorRed
	}
	return formatter.ColorGreen
}

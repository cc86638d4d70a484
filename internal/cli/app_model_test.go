package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkvist/hatchctl/internal/collection"
	"github.com/mkvist/hatchctl/internal/domain"
)

func testModel(t *testing.T) (appModel, *App) {
	t.Helper()
	app := newTestApp()
	m := newAppModel(app)
	m.state.Width = 100
	m.state.Height = 30
	return m, app
}

// pushTestList opens a loaded asset list on top of the dashboard.
func pushTestList(t *testing.T, m appModel, records []*domain.Asset) appModel {
	t.Helper()
	v := newListView(m.state, testSpec(records))
	updated, cmd := m.Update(pushViewMsg{view: v})
	m = updated.(appModel)
	require.NotNil(t, cmd)
	updated, _ = m.Update(cmd())
	return updated.(appModel)
}

func TestAppModel_PushAndPopViews(t *testing.T) {
	m, _ := testModel(t)
	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewDashboard, m.activeView().ID())

	m = pushTestList(t, m, someAssets(2))
	require.Len(t, m.viewStack, 2)
	assert.Equal(t, ViewResourceList, m.activeView().ID())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(appModel)
	assert.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewDashboard, m.activeView().ID())

	// Esc on the home view stays put.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(appModel)
	assert.Len(t, m.viewStack, 1)
}

func TestAppModel_QuitKeys(t *testing.T) {
	m, _ := testModel(t)

	updated, cmd := m.Update(keyPress("q"))
	m = updated.(appModel)
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Empty(t, m.View(), "quitting model renders nothing")

	m, _ = testModel(t)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
}

func TestAppModel_SearchCapturesQuitKey(t *testing.T) {
	m, _ := testModel(t)
	m = pushTestList(t, m, someAssets(2))

	// Enter search mode, then press q: it must land in the input, not quit.
	updated, _ := m.Update(keyPress("/"))
	m = updated.(appModel)
	updated, _ = m.Update(keyPress("q"))
	m = updated.(appModel)

	assert.False(t, m.quitting)
	lv := m.activeView().(*listView[*domain.Asset])
	assert.Equal(t, "q", lv.search.Value())
}

func TestAppModel_ToastExpiryGuardsSequence(t *testing.T) {
	m, _ := testModel(t)

	updated, _ := m.Update(toastMsg{text: "first"})
	m = updated.(appModel)
	updated, _ = m.Update(toastMsg{text: "second"})
	m = updated.(appModel)
	assert.Equal(t, "second", m.toast)

	// The first toast's timer fires late; the newer toast survives.
	updated, _ = m.Update(toastExpireMsg{seq: 1})
	m = updated.(appModel)
	assert.Equal(t, "second", m.toast)

	updated, _ = m.Update(toastExpireMsg{seq: 2})
	m = updated.(appModel)
	assert.Empty(t, m.toast)
}

func TestAppModel_AnyKeyDismissesToast(t *testing.T) {
	m, _ := testModel(t)

	updated, _ := m.Update(toastMsg{text: "saved"})
	m = updated.(appModel)
	require.Equal(t, "saved", m.toast)

	updated, _ = m.Update(keyPress("j"))
	m = updated.(appModel)
	assert.Empty(t, m.toast)
}

func TestAppModel_ToastShownInStatusBar(t *testing.T) {
	m, _ := testModel(t)

	updated, _ := m.Update(toastMsg{text: "Asset created successfully"})
	m = updated.(appModel)
	assert.Contains(t, m.View(), "Asset created successfully")
}

func TestAppModel_AppliedEventRecomputesStackedViews(t *testing.T) {
	m, app := testModel(t)
	m = pushTestList(t, m, someAssets(2))

	pushed := testAsset("a9", "Pushed asset", 9)
	updated, _ := m.Update(applyEventMsg{
		resource: domain.ResourceAsset,
		apply: func() bool {
			return app.Assets.Apply(collection.Created(pushed))
		},
	})
	m = updated.(appModel)

	lv := m.activeView().(*listView[*domain.Asset])
	assert.Equal(t, 3, lv.view.Total)
}

func TestAppModel_NoopEventLeavesViewsAlone(t *testing.T) {
	m, _ := testModel(t)
	m = pushTestList(t, m, someAssets(2))

	updated, cmd := m.Update(applyEventMsg{
		resource: domain.ResourceAsset,
		apply:    func() bool { return false },
	})
	m = updated.(appModel)
	assert.Nil(t, cmd)

	lv := m.activeView().(*listView[*domain.Asset])
	assert.Equal(t, 2, lv.view.Total)
}

func TestAppModel_HeaderShowsBreadcrumbAndUser(t *testing.T) {
	m, _ := testModel(t)
	m = pushTestList(t, m, nil)

	out := m.View()
	assert.Contains(t, out, "hatchctl")
	assert.Contains(t, out, "Assets")
	assert.Contains(t, out, "user@example.com")
}

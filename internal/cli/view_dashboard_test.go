package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_RefreshMessageTriggersReload(t *testing.T) {
	state := &SharedState{App: newTestApp(), Width: 100, Height: 30}
	v := newDashboardView(state)
	v.loading = false

	updated, cmd := v.Update(refreshViewMsg{})
	v = updated.(*dashboardView)
	require.NotNil(t, cmd, "a reconnected feed refetches the overview")
	assert.True(t, v.loading)
}

func TestDashboard_ViewListsResourcesUnderHeader(t *testing.T) {
	state := &SharedState{App: newTestApp(), Width: 100, Height: 30}
	v := newDashboardView(state)
	v.loading = false

	out := v.View()
	assert.Contains(t, out, "RESOURCES")
	assert.Contains(t, out, "Assets")
	assert.Contains(t, out, "Egg Migrations")
}

package cli

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charmbracelet/huh"

	"github.com/mkvist/hatchctl/internal/domain"
	"github.com/mkvist/hatchctl/internal/draft"
	"github.com/mkvist/hatchctl/internal/form"
	"github.com/mkvist/hatchctl/internal/teatest"
	"github.com/mkvist/hatchctl/internal/testutil"
	"github.com/mkvist/hatchctl/internal/validate"
)

func newDraftApp(t *testing.T) *App {
	t.Helper()
	app := newTestApp()
	app.Drafts = draft.NewStore(testutil.NewTestDB(t))
	return app
}

func assetDraftKey(app *App) string {
	return draft.Key("asset", "", app.User)
}

func openAssetForm(t *testing.T, app *App) (*teatest.Driver, *formView) {
	t.Helper()
	state := &SharedState{App: app, Width: 100, Height: 30}
	fv := newAssetFormView(state, form.Create{}, nil).(*formView)
	d := teatest.New(t, fv)
	d.DrainInit()
	return d, fv
}

func TestFormView_EscSavesDraftWhenDirty(t *testing.T) {
	app := newDraftApp(t)
	d, fv := openAssetForm(t, app)

	*fv.values["name"] = "Backup generator"
	d.PressEsc()

	saved, err := app.Drafts.Load(context.Background(), assetDraftKey(app))
	require.NoError(t, err)
	assert.Equal(t, "Backup generator", saved["name"])
}

func TestFormView_EscWithoutEditsLeavesNoDraft(t *testing.T) {
	app := newDraftApp(t)
	d, _ := openAssetForm(t, app)

	d.PressEsc()

	saved, err := app.Drafts.Load(context.Background(), assetDraftKey(app))
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestFormView_CtrlSSavesDraftAndStaysOpen(t *testing.T) {
	app := newDraftApp(t)
	d, fv := openAssetForm(t, app)

	*fv.values["quantity"] = "7"
	d.Send(tea.KeyMsg{Type: tea.KeyCtrlS})

	saved, err := app.Drafts.Load(context.Background(), assetDraftKey(app))
	require.NoError(t, err)
	assert.Equal(t, "7", saved["quantity"])
}

func TestFormView_DraftPrefillsOnOpen(t *testing.T) {
	app := newDraftApp(t)
	err := app.Drafts.Save(context.Background(), assetDraftKey(app), map[string]string{
		"name": "Half-entered pump",
	})
	require.NoError(t, err)

	_, fv := openAssetForm(t, app)

	assert.Equal(t, "Half-entered pump", *fv.values["name"])
	// Seed defaults survive where the draft is silent.
	assert.Equal(t, "ACTIVE", *fv.values["status"])
}

func TestFormView_RemoteSelectOptionsLoadInBackground(t *testing.T) {
	app := newDraftApp(t)
	state := &SharedState{App: app, Width: 100, Height: 30}

	calls := 0
	fields := []fieldDef{
		{key: "poolId", title: "Pool", loadOptions: func(context.Context, *App) ([]huh.Option[string], error) {
			calls++
			return []huh.Option[string]{huh.NewOption("Pool A", "p1")}, nil
		}},
		{key: "notes", title: "Notes"},
	}
	passAll := func(map[string]string) validate.Result { return validate.Result{Valid: true} }
	fv := newFormView(state, "New Feeding", domain.ResourceParentFishFeeding, "parentFishFeeding",
		form.Create{}, map[string]string{}, fields, passAll, nil)

	require.Zero(t, calls, "constructing the view must not fetch")
	assert.True(t, fv.loadingOptions)
	assert.Contains(t, fv.View(), "Loading options...")

	d := teatest.New(t, fv)
	d.DrainInit()

	assert.Equal(t, 1, calls)
	assert.False(t, fv.loadingOptions)
	require.Len(t, fv.fields[0].options, 1)
	assert.NotContains(t, d.View(), "Loading options...")
}

func TestFormView_ServerErrorKeepsFormOpen(t *testing.T) {
	app := newDraftApp(t)
	d, fv := openAssetForm(t, app)

	*fv.values["name"] = "Pump"
	*fv.values["cost"] = "10"
	for k, p := range fv.values {
		fv.ctrl.SetField(k, *p)
	}
	require.NoError(t, fv.ctrl.Submit())
	fv.busy = true

	d.Send(formResultMsg{err: assert.AnError})

	assert.False(t, fv.busy)
	assert.Contains(t, d.View(), assert.AnError.Error())
	assert.Equal(t, "Pump", *fv.values["name"], "values survive a rejected submit")
}

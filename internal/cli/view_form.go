package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"go.uber.org/zap"

	"github.com/mkvist/hatchctl/internal/api"
	"github.com/mkvist/hatchctl/internal/cli/formatter"
	"github.com/mkvist/hatchctl/internal/domain"
	"github.com/mkvist/hatchctl/internal/draft"
	"github.com/mkvist/hatchctl/internal/form"
)

// fieldDef describes one form field. Fields with options render as a
// select, otherwise as a text input. loadOptions marks a select whose
// options come from the backend; the fetch runs in a tea.Cmd after the
// form opens, never on the update loop.
type fieldDef struct {
	key         string
	title       string
	placeholder string
	options     []huh.Option[string]
	loadOptions func(context.Context, *App) ([]huh.Option[string], error)
}

// submitResult is what a resource's submit function hands back on
// success: an apply closure that reconciles the saved record into
// the resource's collection, and a toast message.
type submitResult struct {
	apply func(*App) bool
	toast string
}

// submitFunc performs the create or update call for one resource.
type submitFunc func(ctx context.Context, values map[string]string, mode form.Mode) (submitResult, error)

type draftLoadedMsg struct {
	values map[string]string
	err    error
}

// optionsLoadedMsg delivers the fetched select options, keyed by field.
type optionsLoadedMsg struct {
	options map[string][]huh.Option[string]
	err     error
}

type formResultMsg struct {
	res submitResult
	err error
}

// formView hosts a huh form over a form.Controller. The controller owns
// validation and the submit lifecycle; huh owns input and focus.
//
// Field values not yet submitted survive closing the form: esc saves
// them as a draft keyed by form kind, record, and user, and the draft is
// merged back over the seed values the next time the form opens.
type formView struct {
	state    *SharedState
	titleStr string
	resource domain.Resource
	formKind string
	recordID string

	ctrl   *form.Controller
	fields []fieldDef
	values map[string]*string
	seed   map[string]string
	submit submitFunc

	huhForm *huh.Form
	busy    bool
	// loadingOptions is true while remote select options are in flight.
	loadingOptions bool
}

func newFormView(state *SharedState, title string, resource domain.Resource, formKind string, mode form.Mode,
	seed map[string]string, fields []fieldDef, validator form.Validator, submit submitFunc) *formView {

	recordID := ""
	if u, ok := mode.(form.Update); ok {
		recordID = u.ID
	}

	ctrl := form.NewController(mode, validator)
	ctrl.Seed(seed)

	v := &formView{
		state:    state,
		titleStr: title,
		resource: resource,
		formKind: formKind,
		recordID: recordID,
		ctrl:     ctrl,
		fields:   fields,
		seed:     seed,
		submit:   submit,
	}
	for _, f := range fields {
		if f.loadOptions != nil {
			v.loadingOptions = true
			break
		}
	}
	v.bindValues(seed)
	v.huhForm = v.buildForm()
	return v
}

// bindValues points each field at a fresh string the huh inputs mutate.
func (v *formView) bindValues(initial map[string]string) {
	v.values = make(map[string]*string, len(v.fields))
	for _, f := range v.fields {
		val := initial[f.key]
		v.values[f.key] = &val
	}
}

func (v *formView) buildForm() *huh.Form {
	huhFields := make([]huh.Field, 0, len(v.fields))
	for _, f := range v.fields {
		if len(f.options) > 0 || f.loadOptions != nil {
			huhFields = append(huhFields, huh.NewSelect[string]().
				Title(f.title).
				Options(f.options...).
				Value(v.values[f.key]))
			continue
		}
		huhFields = append(huhFields, huh.NewInput().
			Title(f.title).
			Placeholder(f.placeholder).
			Value(v.values[f.key]))
	}
	return huh.NewForm(huh.NewGroup(huhFields...)).
		WithTheme(hatchctlHuhTheme()).
		WithShowHelp(false)
}

func (v *formView) draftKey() string {
	return draft.Key(v.formKind, v.recordID, v.state.App.User)
}

func (v *formView) Init() tea.Cmd {
	app := v.state.App
	dk := v.draftKey()
	return tea.Batch(v.huhForm.Init(), v.fetchOptions(), func() tea.Msg {
		values, err := app.Drafts.Load(context.Background(), dk)
		return draftLoadedMsg{values: values, err: err}
	})
}

// fetchOptions loads every remote select's options in one command, off
// the update loop so the UI stays responsive while the backend answers.
func (v *formView) fetchOptions() tea.Cmd {
	loaders := make(map[string]func(context.Context, *App) ([]huh.Option[string], error))
	for _, f := range v.fields {
		if f.loadOptions != nil {
			loaders[f.key] = f.loadOptions
		}
	}
	if len(loaders) == 0 {
		return nil
	}
	app := v.state.App
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		options := make(map[string][]huh.Option[string], len(loaders))
		for key, load := range loaders {
			opts, err := load(ctx, app)
			if err != nil {
				return optionsLoadedMsg{err: err}
			}
			options[key] = opts
		}
		return optionsLoadedMsg{options: options}
	}
}

func (v *formView) snapshot() map[string]string {
	out := make(map[string]string, len(v.values))
	for k, p := range v.values {
		out[k] = *p
	}
	return out
}

// dirty reports whether any field differs from the seed values.
func (v *formView) dirty() bool {
	for k, p := range v.values {
		if *p != v.seed[k] {
			return true
		}
	}
	return false
}

func (v *formView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case draftLoadedMsg:
		if msg.err != nil {
			v.state.App.Log.Warn("load draft", zap.String("key", v.draftKey()), zap.Error(msg.err))
			return v, nil
		}
		if len(msg.values) == 0 {
			return v, nil
		}
		v.bindValues(draft.Merge(msg.values, v.seed))
		v.huhForm = v.buildForm()
		return v, v.huhForm.Init()

	case optionsLoadedMsg:
		v.loadingOptions = false
		if msg.err != nil {
			// The select stays empty; the backend still validates the
			// reference on submit.
			v.state.App.Log.Warn("load form options",
				zap.String("form", v.formKind), zap.Error(msg.err))
			return v, showToast("Could not load options: "+msg.err.Error(), true)
		}
		for i := range v.fields {
			if opts, ok := msg.options[v.fields[i].key]; ok {
				v.fields[i].options = opts
			}
		}
		v.huhForm = v.buildForm()
		return v, v.huhForm.Init()

	case formResultMsg:
		v.busy = false
		if msg.err != nil {
			v.ctrl.Resolve(msg.err)
			v.huhForm = v.buildForm()
			return v, v.huhForm.Init()
		}
		v.ctrl.Resolve(nil)
		msg.res.apply(v.state.App)
		app, dk := v.state.App, v.draftKey()
		clearDraft := func() tea.Msg {
			if err := app.Drafts.Clear(context.Background(), dk); err != nil {
				app.Log.Warn("clear draft", zap.String("key", dk), zap.Error(err))
			}
			return nil
		}
		return v, tea.Batch(
			popView(),
			clearDraft,
			showToast(msg.res.toast, false),
			recomputeViews(v.resource),
		)

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		if msg.Type == tea.KeyEsc {
			return v, v.cancel()
		}
		if msg.String() == "ctrl+s" {
			return v, v.saveDraft()
		}
	}

	if v.busy {
		return v, nil
	}

	updated, cmd := v.huhForm.Update(msg)
	if f, ok := updated.(*huh.Form); ok {
		v.huhForm = f
	}

	if v.huhForm.State == huh.StateCompleted {
		return v, tea.Batch(cmd, v.trySubmit())
	}
	return v, cmd
}

// cancel saves a draft when the form has unsubmitted edits, then pops.
func (v *formView) cancel() tea.Cmd {
	if !v.dirty() {
		return popView()
	}
	return tea.Batch(popView(), v.saveDraft())
}

// saveDraft persists the current field values without closing the form.
func (v *formView) saveDraft() tea.Cmd {
	app, dk, values := v.state.App, v.draftKey(), v.snapshot()
	return func() tea.Msg {
		if err := app.Drafts.Save(context.Background(), dk, values); err != nil {
			app.Log.Warn("save draft", zap.String("key", dk), zap.Error(err))
			return toastMsg{text: "Could not save draft", isErr: true}
		}
		return toastMsg{text: "Draft saved"}
	}
}

// trySubmit runs client-side validation through the controller and, if
// clean, fires the request.
func (v *formView) trySubmit() tea.Cmd {
	for k, p := range v.values {
		v.ctrl.SetField(k, *p)
	}
	if err := v.ctrl.Submit(); err != nil {
		// Invalid: rebuild the form so the user can correct fields.
		v.huhForm = v.buildForm()
		return v.huhForm.Init()
	}
	v.busy = true
	app, submit, mode, values := v.state.App, v.submit, v.ctrl.Mode(), v.ctrl.Fields()
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		res, err := submit(ctx, values, mode)
		if err != nil {
			app.Log.Warn("submit form", zap.String("form", v.formKind), zap.Error(err))
		}
		return formResultMsg{res: res, err: err}
	}
}

func (v *formView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	if v.busy {
		b.WriteString("  " + formatter.Dim("Saving...") + "\n\n")
	}
	if v.loadingOptions {
		b.WriteString("  " + formatter.Dim("Loading options...") + "\n\n")
	}
	b.WriteString(v.huhForm.View())

	if msg := v.ctrl.FormError(); msg != "" {
		b.WriteString("\n  " + formatter.StyleRed.Render("✗ "+msg))
	}
	for _, f := range v.fields {
		if msg := v.ctrl.FieldError(f.key); msg != "" {
			b.WriteString("\n  " + formatter.StyleRed.Render("✗ "+msg))
		}
	}
	return b.String()
}

func (v *formView) ID() ViewID           { return ViewForm }
func (v *formView) Title() string        { return v.titleStr }
func (v *formView) capturingInput() bool { return true }

func (v *formView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next/submit")),
		key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save draft")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "save draft & close")),
	}
}

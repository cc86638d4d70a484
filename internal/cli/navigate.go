package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkvist/hatchctl/internal/domain"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// refreshViewMsg asks every view on the stack to refetch its data.
// Broadcast after the event feed reconnects, when pushed events may
// have been missed.
type refreshViewMsg struct{}

// recomputeViewMsg asks views showing the named resource to re-derive
// their rows from the shared collection, without refetching. Sent after
// a pushed event or a local mutation was applied to a store.
type recomputeViewMsg struct {
	resource domain.Resource
}

// applyEventMsg carries a reconciliation closure from the event feed
// goroutine onto the update loop, where stores may be touched.
type applyEventMsg struct {
	resource domain.Resource
	apply    func() bool
}

// toastMsg shows a transient status line at the bottom of the screen.
type toastMsg struct {
	text  string
	isErr bool
}

// quitMsg requests application exit.
type quitMsg struct{}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

// showToast returns a tea.Cmd that displays a transient status message.
func showToast(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return toastMsg{text: text, isErr: isErr} }
}

func recomputeViews(resource domain.Resource) tea.Cmd {
	return func() tea.Msg { return recomputeViewMsg{resource: resource} }
}

package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mkvist/hatchctl/internal/realtime"
)

// NewRootCmd creates the top-level "hatchctl" command. Running it bare
// in a terminal launches the TUI; subcommands cover one-shot use. The
// subscriber may be nil when live updates are disabled.
func NewRootCmd(app *App, sub *realtime.Subscriber) *cobra.Command {
	root := &cobra.Command{
		Use:   "hatchctl",
		Short: "Fish farm operations console",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
				return cmd.Help()
			}
			return RunTUI(cmd.Context(), app, sub)
		},
	}

	assetCmd := newResourceCmd(app, "asset", "Manage assets", assetSpec())
	assetCmd.AddCommand(newAssetStatusCmd(app))

	root.AddCommand(
		assetCmd,
		newResourceCmd(app, "feedstock", "Manage feedstock", feedstockSpec()),
		newResourceCmd(app, "pool", "Manage parent fish pools", poolSpec()),
		newResourceCmd(app, "migration", "Manage egg migrations", migrationSpec()),
		newResourceCmd(app, "feeding", "Manage parent fish feedings", parentFeedingSpec()),
		newResourceCmd(app, "egg-feeding", "Manage egg fish feedings", eggFeedingSpec()),
	)

	return root
}

// RunTUI starts the interactive console and, when a subscriber is
// provided, pumps its events into the program until the UI exits.
func RunTUI(ctx context.Context, app *App, sub *realtime.Subscriber) error {
	m := newAppModel(app)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if sub != nil {
		WireEvents(app, sub, p.Send)
		feedCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			_ = sub.Run(feedCtx)
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

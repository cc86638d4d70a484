package cli

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mkvist/hatchctl/internal/cli/formatter"
	"github.com/mkvist/hatchctl/internal/collection"
	"github.com/mkvist/hatchctl/internal/domain"
	"github.com/mkvist/hatchctl/internal/export"
	"github.com/mkvist/hatchctl/internal/form"
)

// newResourceCmd builds the list/rm/export subcommands one resource
// shares, for scripting and non-interactive terminals. The TUI is the
// primary surface; these cover the same operations one-shot.
func newResourceCmd[T domain.Entity](app *App, use, short string, spec resourceSpec[T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}
	cmd.AddCommand(
		newListCmd(app, spec),
		newAddCmd(app, spec),
		newRemoveCmd(app, spec),
		newExportCmd(app, spec),
	)
	return cmd
}

// newAddCmd creates a record from --set key=value pairs, running the
// same validation and submit path as the interactive form.
func newAddCmd[T domain.Entity](app *App, spec resourceSpec[T]) *cobra.Command {
	var values map[string]string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a record",
		RunE: func(cmd *cobra.Command, args []string) error {
			if values == nil {
				values = map[string]string{}
			}
			if res := spec.validator(values); !res.Valid {
				for _, field := range sortedKeys(res.Errors) {
					fmt.Fprintln(cmd.ErrOrStderr(), res.Errors[field])
				}
				return fmt.Errorf("invalid %s", spec.formKind)
			}
			result, err := spec.submit(app)(cmd.Context(), values, form.Create{})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.toast)
			return nil
		},
	}

	cmd.Flags().StringToStringVar(&values, "set", nil, "field as key=value (repeatable)")
	return cmd
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// listFlags holds the query options the list subcommand exposes.
type listFlags struct {
	search  string
	sortBy  string
	desc    bool
	page    int
	all     bool
	filters map[string]string
}

func (f *listFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.search, "search", "", "case-insensitive search term")
	fs.StringVar(&f.sortBy, "sort", "", "sort column")
	fs.BoolVar(&f.desc, "desc", false, "sort descending")
	fs.IntVar(&f.page, "page", 1, "page number")
	fs.BoolVar(&f.all, "all", false, "print every matching record")
	fs.StringToStringVar(&f.filters, "filter", nil, "filter as key=value, e.g. status=ACTIVE")
}

// query translates the parsed flags into a collection query.
func (f *listFlags) query() collection.Query {
	q := collection.Query{Page: 1}.WithSearch(f.search)
	if f.sortBy != "" {
		q = q.WithSort(f.sortBy)
		if f.desc {
			q = q.WithSort(f.sortBy) // second press flips to descending
		}
	}
	for k, v := range f.filters {
		q = q.WithFilter(k, v)
	}
	return q.WithPage(f.page)
}

func newListCmd[T domain.Entity](app *App, spec resourceSpec[T]) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + spec.title,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := spec.fetch(cmd.Context(), app)
			if err != nil {
				return err
			}

			cfg := spec.config
			cfg.PageSize = app.PageSize
			q := flags.query()

			view := collection.Resolve(records, cfg, q)
			rows := view.Rows
			if flags.all {
				rows = view.Filtered
			}

			headers := make([]string, len(spec.columns))
			for i, c := range spec.columns {
				headers[i] = c.header
			}
			out := make([][]string, 0, len(rows))
			for _, r := range rows {
				row := make([]string, len(spec.columns))
				for i, c := range spec.columns {
					row[i] = c.cell(r)
				}
				out = append(out, row)
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(headers, out))
			if !flags.all && view.TotalPages > 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "\npage %d of %d (%d records)\n",
					view.Page, view.TotalPages, len(view.Filtered))
			}
			return nil
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func newRemoveCmd[T domain.Entity](app *App, spec resourceSpec[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := spec.remove(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if message == "" {
				message = "deleted"
			}
			fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	}
}

func newExportCmd[T domain.Entity](app *App, spec resourceSpec[T]) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all records to PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := spec.fetch(cmd.Context(), app)
			if err != nil {
				return err
			}

			cfg := spec.config
			view := collection.Resolve(records, cfg, collection.Query{Page: 1})

			now := time.Now()
			doc := spec.doc(app, view.Filtered, now)
			data, err := app.Renderer.Render(doc)
			if err != nil {
				return fmt.Errorf("render pdf: %w", err)
			}

			if outPath == "" {
				outPath = export.Filename(string(spec.resource), now)
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default <resource>_export_<date>.pdf)")
	return cmd
}

// newAssetStatusCmd is the shortcut endpoint for flipping an asset's
// status without editing the whole record.
func newAssetStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <ACTIVE|MAINTENANCE|RETIRED|DISPOSED>",
		Short: "Update an asset's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := domain.AssetStatus(args[1])
			if !domain.ValidAssetStatuses[string(status)] {
				return fmt.Errorf("invalid status %q", args[1])
			}
			asset, err := app.API.Assets().UpdateStatus(cmd.Context(), args[0], status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s → %s\n", asset.Name, asset.Status)
			return nil
		},
	}
}

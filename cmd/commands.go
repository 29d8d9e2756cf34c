package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Akashdeep-Patra/tabula/internal/config"
	"github.com/Akashdeep-Patra/tabula/internal/data"
	"github.com/spf13/cobra"
)

// openStore opens the configured inventory for a one-shot command.
func openStore(cmd *cobra.Command) (*data.SQLiteService, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	store, err := data.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening inventory: %w", err)
	}
	return store, cfg, nil
}

// buildImportCmd creates `tabula import`, which appends the rows of a
// workbook to the inventory.
func buildImportCmd() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Append assets from an Excel workbook",
		Long: `Append assets from an Excel workbook.

The first row of the sheet is the header. Columns are matched to inventory
fields by name ("Serial License", "serial_license" and "serial-license" all
match); other columns are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := data.ImportXLSX(args[0], sheet)
			if err != nil {
				return err
			}
			store, _, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.Insert(cmd.Context(), rows)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d assets into %s\n", n, store.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet to read (default: the first sheet)")
	return cmd
}

// buildExportCmd creates `tabula export`, which writes the inventory, or a
// filtered part of it, to a workbook.
func buildExportCmd() *cobra.Command {
	var (
		search  string
		filters []string
	)

	cmd := &cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Write assets to an Excel workbook",
		Example: `  tabula export all.xlsx
  tabula export york.xlsx --filter location:York --filter status:active
  tabula export dell.xlsx --search dell`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			rows, err := store.Search(cmd.Context(), search, filters)
			if err != nil {
				return err
			}

			var widths map[string]int
			if cfg.PersistLayout {
				if l, err := config.LoadLayout(config.Dir()); err == nil {
					widths = l.ColumnWidths
				}
			}
			if err := data.ExportXLSX(args[0], store.Columns(), rows, widths); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d assets to %s\n", len(rows), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Only assets matching this term in any column")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "Only assets matching key:value (repeatable)")
	return cmd
}

// buildLocationsCmd creates `tabula locations` with list, add and rm.
func buildLocationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "Manage the location catalogue",
		Long: `Manage the location catalogue.

Examples:
  tabula locations list
  tabula locations add "Building 4"
  tabula locations rm "Building 4"`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List known locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()
			return listLocations(cmd.Context(), store, cmd.OutOrStdout())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.AddLocation(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q\n", strings.TrimSpace(args[0]))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Remove a location",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()
			return removeLocation(cmd.Context(), store, args[0], cmd.OutOrStdout())
		},
	})

	return cmd
}

func listLocations(ctx context.Context, store data.LocationStore, out io.Writer) error {
	locs, err := store.Locations(ctx)
	if err != nil {
		return err
	}
	if len(locs) == 0 {
		fmt.Fprintln(out, "No locations.")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, l := range locs {
		fmt.Fprintf(tw, "%d\t%s\n", l.ID, l.Name)
	}
	return tw.Flush()
}

func removeLocation(ctx context.Context, store data.LocationStore, name string, out io.Writer) error {
	locs, err := store.Locations(ctx)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	for _, l := range locs {
		if strings.EqualFold(l.Name, name) {
			if err := store.DeleteLocation(ctx, l.ID); err != nil {
				return err
			}
			fmt.Fprintf(out, "Removed %q\n", l.Name)
			return nil
		}
	}
	return fmt.Errorf("location %q: %w", name, data.ErrNotFound)
}

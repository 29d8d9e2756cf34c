package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/Akashdeep-Patra/tabula/internal/app"
	"github.com/Akashdeep-Patra/tabula/internal/common"
	"github.com/Akashdeep-Patra/tabula/internal/config"
	"github.com/Akashdeep-Patra/tabula/internal/data"
	"github.com/Akashdeep-Patra/tabula/internal/grid"
	"github.com/Akashdeep-Patra/tabula/internal/ui"
	"github.com/Akashdeep-Patra/tabula/internal/ui/views"
	"github.com/Akashdeep-Patra/tabula/internal/watcher"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

// Build-time variables injected via ldflags by GoReleaser / Taskfile.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// writeQueueSize bounds edits waiting to be saved.
const writeQueueSize = 64

func init() {
	// ── Resource tuning ─────────────────────────────────────────────
	//
	// A TUI spends most of its time waiting for terminal input and the
	// database. Two OS threads cover rendering and message dispatch; SQLite
	// work runs on the goroutines that issued it.
	//
	// If the user explicitly sets GOMAXPROCS, we respect that.
	if os.Getenv("GOMAXPROCS") == "" {
		runtime.GOMAXPROCS(min(2, runtime.NumCPU()))
	}

	// Soft memory limit. A few thousand rows stay well under it; the
	// limit makes the GC run earlier on very large inventories.
	debug.SetMemoryLimit(200 * 1024 * 1024) // 200 MiB
}

func main() {
	rootCmd := buildRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tabula:", err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tabula",
		Short: "A spreadsheet for your asset inventory, in the terminal",
		Long: `tabula is a mouse- and keyboard-driven spreadsheet over an asset
inventory kept in SQLite.

Select ranges, edit cells in place, copy and paste through the system
clipboard, undo and redo, sort and filter by any column, and resize
columns by dragging their header edge.`,
		RunE:          runApp,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"tabula %s\n  commit:  %s\n  built:   %s\n  go:      %s\n  os/arch: %s/%s\n",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	))

	rootCmd.PersistentFlags().String("db", "", "Path to the inventory database (overrides db_path)")

	rootCmd.AddCommand(buildVersionCmd())
	rootCmd.AddCommand(buildCompletionCmd())
	rootCmd.AddCommand(buildImportCmd())
	rootCmd.AddCommand(buildExportCmd())
	rootCmd.AddCommand(buildLocationsCmd())

	return rootCmd
}

// loadConfig resolves the configuration and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.DBPath = db
	}
	return cfg, nil
}

// buildVersionCmd creates the `tabula version` subcommand supporting --json.
func buildVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(_ *cobra.Command, _ []string) error {
			info := map[string]string{
				"version": version,
				"commit":  commit,
				"date":    date,
				"go":      runtime.Version(),
				"os":      runtime.GOOS,
				"arch":    runtime.GOARCH,
			}
			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Printf("tabula %s\n", version)
			fmt.Printf("  commit:  %s\n", commit)
			fmt.Printf("  built:   %s\n", date)
			fmt.Printf("  go:      %s\n", runtime.Version())
			fmt.Printf("  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	return cmd
}

// buildCompletionCmd creates the `tabula completion` subcommand for shell completions.
func buildCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for tabula.

Examples:
  # Bash (add to ~/.bashrc)
  tabula completion bash > /etc/bash_completion.d/tabula

  # Zsh (add to ~/.zshrc before compinit)
  tabula completion zsh > "${fpath[1]}/_tabula"

  # Fish
  tabula completion fish > ~/.config/fish/completions/tabula.fish

  # PowerShell
  tabula completion powershell > tabula.ps1`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}

	return cmd
}

func runApp(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := data.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening inventory: %w", err)
	}
	defer store.Close()
	logger.Info("inventory opened", "path", store.Path())

	// Identical searches issued within one refresh cycle share a result.
	svc := data.NewCachedService(store, cfg.SearchCacheTTL)

	writes := data.NewWriteQueue(svc, writeQueueSize, logger)
	defer writes.Close()

	var layout config.Layout
	if cfg.PersistLayout {
		if layout, err = config.LoadLayout(config.Dir()); err != nil {
			logger.Warn("ignoring saved layout", "err", err)
		}
	}

	locale, err := language.Parse(cfg.Locale)
	if err != nil {
		logger.Warn("unknown locale, collating as English", "locale", cfg.Locale, "err", err)
		locale = language.English
	}

	styles := ui.NewStyles(ui.ThemeByName(cfg.Theme))

	gridView := views.NewGridView(svc, styles, views.GridOptions{
		Sizing: grid.SizingOptions{
			ColumnWidth:    cfg.DefaultColumnWidth,
			MinColumnWidth: cfg.MinColumnWidth,
			RowHeight:      cfg.RowHeight,
		},
		Overscan: cfg.Overscan,
		Widths:   layout.ColumnWidths,
		Keys:     cfg.Keys,
		Locale:   locale,
		Platform: grid.SystemClipboard{},
		Writes:   writes,
		Logger:   logger,
	})
	defer gridView.Close()

	viewMap := map[common.TabID]common.View{
		common.TabInventory: gridView,
		common.TabLocations: views.NewLocationView(store, styles),
	}

	model := app.New(cfg, viewMap, svc)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Refresh when another process changes the database.
	if watchCh, stop, watchErr := watcher.Watch(store.Path(), cfg.WatchDebounce); watchErr == nil {
		defer stop()
		go func() {
			for range watchCh {
				p.Send(common.RefreshMsg{})
			}
		}()
	} else {
		logger.Warn("not watching the database", "err", watchErr)
	}

	final, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := final.(app.Model); ok && cfg.PersistLayout {
		if err := config.SaveLayout(config.Dir(), m.Layout()); err != nil {
			logger.Warn("saving layout", "err", err)
		}
	}
	return nil
}

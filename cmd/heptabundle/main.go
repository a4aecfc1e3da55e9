package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"heptabundle/internal/app/exporter"
	"heptabundle/internal/config"
	"heptabundle/internal/domain/hb"
	"heptabundle/internal/infra/filedb"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "heptabundle",
		Short:         "Export a Heptabase backup as a Markdown bundle",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newImportCmd(&verbose))
	root.AddCommand(newListCmd(&verbose))
	root.AddCommand(newExportCmd(&verbose))
	root.AddCommand(newHistoryCmd(&verbose))
	return root
}

func newListCmd(verbose *bool) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the selectable whiteboards, sections and tag views",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := buildLogger("info", *verbose)
			if err != nil {
				return err
			}
			defer logger.Sync()

			store, err := filedb.Open(dbPath, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			data, err := store.LoadManifest(cmd.Context())
			if err != nil {
				return err
			}

			roots, warnings := hb.BuildWhiteboardTree(data)
			for _, warning := range warnings {
				fmt.Fprintln(os.Stderr, warning)
			}
			fmt.Println("whiteboards:")
			for _, root := range roots {
				printWhiteboard(root, data, "  ")
			}
			fmt.Printf("journals: %d\n", len(data.JournalList))

			groups := hb.AggregateTagGroups(data)
			if len(groups) > 0 {
				fmt.Println("tag views:")
			}
			for _, group := range groups {
				name := group.GroupName
				if name == "" {
					name = "(ungrouped)"
				}
				fmt.Printf("  %s\n", name)
				for _, tag := range group.Tags {
					fmt.Printf("    #%s\n", tag.TagName)
					for _, view := range tag.Views {
						fmt.Printf("      %s  %s\n", view.ID, view.Name)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "heptabase.db", "store database path")
	return cmd
}

func printWhiteboard(node *hb.WhiteboardTree, data *hb.Data, indent string) {
	fmt.Printf("%s%s  %s\n", indent, node.ID, node.Name)
	for _, section := range node.Sections {
		printSection(section, data, indent+"  ")
	}
	for _, child := range node.Children {
		printWhiteboard(child, data, indent+"  ")
	}
}

func printSection(node *hb.SectionNode, data *hb.Data, indent string) {
	fmt.Printf("%s[%s]  %s (%d cards)\n", indent, node.ID, node.Title, len(hb.CardsInSection(node.ID, data)))
	for _, child := range node.Children {
		printSection(child, data, indent+"  ")
	}
}

func buildLogger(level string, verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	if verbose {
		parsed = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	return cfg.Build()
}

func newImportCmd(verbose *bool) *cobra.Command {
	var dbPath string
	var dir string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Ingest a backup directory into the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := buildLogger("info", *verbose)
			if err != nil {
				return err
			}
			defer logger.Sync()

			store, err := filedb.Open(dbPath, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			data, count, err := store.ImportBackup(cmd.Context(), dir)
			if err != nil {
				return err
			}
			fmt.Printf("imported %d files for account %s\n", count, data.AccountID)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "heptabase.db", "store database path")
	cmd.Flags().StringVar(&dir, "dir", "", "backup directory")
	cmd.MarkFlagRequired("dir")
	return cmd
}

func newExportCmd(verbose *bool) *cobra.Command {
	var dbPath string
	var configPath string
	var outPath string
	var copyOut bool
	var zipOut bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Run an export and write the bundle",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			logLevel := "info"
			var cfg config.Config
			haveConfig := configPath != ""
			if haveConfig {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
				logLevel = cfg.LogLevel
			}
			logger, err := buildLogger(logLevel, *verbose)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if dbPath == "" {
				dbPath = cfg.DB
			}
			if outPath == "" {
				outPath = cfg.Output
			}
			if outPath == "" {
				outPath = "export.md"
			}

			store, err := filedb.Open(dbPath, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			data, err := store.LoadManifest(ctx)
			if err != nil {
				return err
			}

			var state exporter.ExportState
			if haveConfig {
				state = cfg.ExportState()
			} else {
				raw, err := store.LoadLastState(ctx, data.AccountID)
				if err != nil {
					return err
				}
				if raw == nil {
					return fmt.Errorf("no saved export state for account %s, pass --config", data.AccountID)
				}
				if state, err = exporter.DecodeState(raw); err != nil {
					return err
				}
			}
			if zipOut {
				state.Settings.IncludeLinkedFiles = true
			}

			exp := exporter.New(store, data, state.Settings, logger)
			result, err := exp.Run(ctx, state)
			if err != nil {
				return err
			}

			if result.Zip != nil {
				if strings.HasSuffix(outPath, ".md") {
					outPath = strings.TrimSuffix(outPath, ".md") + ".zip"
				}
				if err := os.WriteFile(outPath, result.Zip, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", outPath, err)
				}
			} else {
				if err := os.WriteFile(outPath, []byte(result.Markdown), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", outPath, err)
				}
				if copyOut {
					if err := clipboard.WriteAll(result.Markdown); err != nil {
						return fmt.Errorf("copy to clipboard: %w", err)
					}
				}
			}
			if copyOut && result.Zip != nil {
				fmt.Fprintln(os.Stderr, "skipping --copy: archive output cannot go to the clipboard")
			}

			if raw, err := exporter.EncodeState(state); err == nil {
				if err := store.SaveLastState(ctx, data.AccountID, raw); err != nil {
					logger.Warn("save export state", zap.Error(err))
				}
			}
			entry, err := exporter.NewHistoryEntry(state, time.Now())
			if err == nil {
				if err := store.SaveHistory(ctx, entry); err != nil {
					logger.Warn("save history", zap.Error(err))
				}
			}

			for _, line := range result.Logs {
				fmt.Println(line)
			}
			fmt.Printf("exported %d files to %s\n", result.Count, outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "store database path")
	cmd.Flags().StringVar(&configPath, "config", "", "selection config (toml); omit to reuse the last saved state")
	cmd.Flags().StringVar(&outPath, "out", "", "output file")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "copy the Markdown bundle to the clipboard")
	cmd.Flags().BoolVar(&zipOut, "zip", false, "force archive output with linked files")
	return cmd
}

func newHistoryCmd(verbose *bool) *cobra.Command {
	var dbPath string
	var starID string
	var rename string
	var deleteID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List and manage saved exports",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger, err := buildLogger("info", *verbose)
			if err != nil {
				return err
			}
			defer logger.Sync()

			store, err := filedb.Open(dbPath, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			switch {
			case starID != "":
				return store.StarHistory(ctx, starID)
			case rename != "":
				id, name, ok := strings.Cut(rename, "=")
				if !ok || id == "" || name == "" {
					return fmt.Errorf("--rename wants id=name, got %q", rename)
				}
				return store.RenameHistory(ctx, id, name)
			case deleteID != "":
				return store.DeleteHistory(ctx, deleteID)
			}

			entries, err := store.ListHistory(ctx)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("no exports recorded")
				return nil
			}
			for _, entry := range entries {
				star := " "
				if entry.IsStarred {
					star = "*"
				}
				fmt.Printf("%s %s  %s  %s\n", star, entry.ID, entry.Date.Format("2006-01-02 15:04"), entry.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "heptabase.db", "store database path")
	cmd.Flags().StringVar(&starID, "star", "", "toggle the star on an entry")
	cmd.Flags().StringVar(&rename, "rename", "", "rename an entry (id=name)")
	cmd.Flags().StringVar(&deleteID, "delete", "", "delete an entry")
	return cmd
}

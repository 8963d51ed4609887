package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tpham/study-tracker/internal/app"
	"github.com/tpham/study-tracker/internal/logging"
	"github.com/tpham/study-tracker/internal/model"
	"github.com/tpham/study-tracker/internal/notify"
	"github.com/tpham/study-tracker/internal/state"
	"github.com/tpham/study-tracker/internal/store"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var dbPath string

	root := &cobra.Command{
		Use:           "studytrack",
		Short:         "Track study sessions, assignments, and progress in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(configPath, dbPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config",
		model.DefaultConfigPath(), "config file path")
	root.PersistentFlags().StringVar(&dbPath, "db", "",
		"database file path (default <data_dir>/studytrack.db)")

	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the studytrack version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("studytrack %s\n", version)
		},
	}
}

func run(configPath, dbPath string) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if dbPath == "" {
		dbPath = cfg.DatabasePath()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	log := logging.New(cfg.LogPath())
	defer func() { _ = log.Sync() }()

	gateway, err := store.NewSQLiteGateway(dbPath, log)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = gateway.Close() }()

	st := state.New(gateway, log)
	scheduler := notify.NewCronScheduler(st, gateway, log)

	p := tea.NewProgram(
		app.New(cfg, st, gateway, scheduler),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}

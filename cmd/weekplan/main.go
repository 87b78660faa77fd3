// Package main is the weekplan binary: a weekly task planner with
// alarm reminders, run as a terminal UI.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/weekplan/internal/config"
	"github.com/sandeepkv93/weekplan/internal/notify"
	"github.com/sandeepkv93/weekplan/internal/planner"
	"github.com/sandeepkv93/weekplan/internal/scheduler"
	"github.com/sandeepkv93/weekplan/internal/sound"
	"github.com/sandeepkv93/weekplan/internal/storage"
	"github.com/sandeepkv93/weekplan/internal/update"
)

const version = "0.1.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		dbPath     string
		noNotify   bool
	)

	cmd := &cobra.Command{
		Use:   "weekplan",
		Short: "Weekly task planner with reminders",
		Long: `Weekplan is a single-user weekly task planner. Assign short tasks
to days of the week with a time of day, toggle completion and alarm
state, and get reminded in-app or through desktop notifications.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, dbPath, noNotify)
			if err != nil {
				return err
			}
			return runTUI(cfg)
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path")
	cmd.PersistentFlags().BoolVar(&noNotify, "no-notify", false, "Disable desktop notifications")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("weekplan version %s\n", version)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "export",
		Short: "Dump the task store as JSON to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, dbPath, noNotify)
			if err != nil {
				return err
			}
			return runExport(cfg)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Delete all stored tasks and the custom alarm sound",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, dbPath, noNotify)
			if err != nil {
				return err
			}
			return runReset(cfg)
		},
	})

	return cmd
}

func loadConfig(configPath, dbPath string, noNotify bool) (config.Config, error) {
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	cfg = config.FromEnv(cfg)
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if noNotify {
		cfg.DesktopNotifications = false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if err := cfg.Resolve(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runTUI(cfg config.Config) error {
	logger, closeLog, err := openLogger(cfg.LogPath)
	if err != nil {
		return err
	}
	defer closeLog()

	gateway, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer gateway.Close()

	notifier := notify.Detect(cfg.DesktopNotifications)
	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	reminders := scheduler.NewReminders(engine, notifier.Available())
	store := planner.NewStore(time.Now)
	app := planner.NewApp(store, reminders, gateway, sound.NewRegistry(), logger, time.Now)
	if err := app.Load(); err != nil {
		return fmt.Errorf("load planner state: %w", err)
	}

	player := sound.NewExecPlayer()
	defer player.Stop()

	m := update.NewModel(app, engine, notifier, player, logger, cfg.TickInterval, time.Now)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("weekplan failed: %w", err)
	}
	return nil
}

func runExport(cfg config.Config) error {
	gateway, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer gateway.Close()

	snapshot, err := gateway.LoadStore()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(snapshot)
}

func runReset(cfg config.Config) error {
	gateway, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer gateway.Close()

	store := planner.NewStore(time.Now)
	if err := gateway.SaveStore(store.Snapshot()); err != nil {
		return err
	}
	if err := gateway.DeleteSound(); err != nil {
		return err
	}
	fmt.Println("weekplan state cleared")
	return nil
}

func openLogger(path string) (*log.Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := log.New(f, "", log.LstdFlags)
	return logger, func() { _ = f.Close() }, nil
}

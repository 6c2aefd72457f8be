package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tgienger/todo/internal/config"
	"github.com/tgienger/todo/internal/db"
	"github.com/tgienger/todo/internal/logging"
	"github.com/tgienger/todo/internal/ui"
	"github.com/tgienger/todo/internal/ui/styles"
)

var rootCmd = &cobra.Command{
	Use:   "todo",
	Short: "A terminal to-do list",
	Long: `todo shows your tasks in the terminal. Mark them done, rename them
in place, or delete them. Tasks are stored in a local SQLite database.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the string printed by --version
func SetVersion(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("todo %s (commit: %s, built: %s)\n", version, commit, date))
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is "+config.ConfigFile()+")")
	rootCmd.Flags().String("db", "", "database file (default is $XDG_DATA_HOME/todo/todo.db)")
	rootCmd.Flags().String("theme", "", "color theme: "+strings.Join(config.ValidThemes(), ", "))

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("data.path", rootCmd.Flags().Lookup("db"))
	_ = viper.BindPFlag("tui.theme", rootCmd.Flags().Lookup("theme"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TODO")
	// e.g., TODO_TUI_THEME for tui.theme
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	styles.SetTheme(cfg.TUI.Theme)

	database, err := db.New(cfg.Data.Path)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer database.Close()

	if seeded, err := database.SeedWelcome(); err != nil {
		logger.Warn("could not seed welcome task", "error", err)
	} else if seeded {
		logger.Info("seeded welcome task")
	}

	app := ui.NewApp(database, logger, ui.Options{CharLimit: cfg.TUI.CharLimit})
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.TUI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	if _, err := tea.NewProgram(app, opts...).Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}

// newLogger writes next to the database when logging is enabled
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}

	dir := filepath.Dir(cfg.Data.Path)
	if cfg.Data.Path == "" {
		d, err := db.DataDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return logging.NewLogger(dir, cfg.Logging.Level, io.Discard)
}

// Package cmd contains all CLI commands for closer.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/closer/internal/config"
	"github.com/f3rmion/closer/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "closer",
	Short: "A map quiz that brings two people closer",
	Long: `closer is a terminal quiz played on a world map.

Two markers start far apart. Every right answer moves them toward a
meeting point in the middle; every wrong one lets them drift apart.
Answer everything correctly to open the envelope at the end.

Running 'closer' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/closer)")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Int("fps", 60, "animation frames per second")
	rootCmd.Flags().Bool("alt-screen", true, "run the TUI in the alternate screen")

	viper.BindPFlag(config.KeyLogFile, rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag(config.KeyFPS, rootCmd.PersistentFlags().Lookup("fps"))
	viper.BindPFlag(config.KeyAltScreen, rootCmd.Flags().Lookup("alt-screen"))

	config.SetDefaults(viper.GetViper())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.Set(config.KeyConfigDir, cfgFile)
	} else {
		dir, err := config.DefaultConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set(config.KeyConfigDir, dir)
	}

	viper.SetEnvPrefix("CLOSER")
	viper.AutomaticEnv()

	if err := config.ReadConfigFile(viper.GetViper()); err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}
}

// setup loads the settings, the logger and the embedded deck shared by every
// command. The returned cleanup closes the log file.
func setup() (config.Settings, *slog.Logger, *config.Deck, func(), error) {
	settings, err := config.LoadSettings(viper.GetViper())
	if err != nil {
		return config.Settings{}, nil, nil, nil, err
	}

	logger, closer, err := settings.NewLogger()
	if err != nil {
		return config.Settings{}, nil, nil, nil, err
	}
	cleanup := func() { closer.Close() }

	deck, err := config.DefaultDeck()
	if err != nil {
		cleanup()
		return config.Settings{}, nil, nil, nil, fmt.Errorf("loading deck: %w", err)
	}
	return settings, logger, deck, cleanup, nil
}

// runTUI launches the interactive quiz.
func runTUI(cmd *cobra.Command, args []string) error {
	settings, logger, deck, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	var opts []tea.ProgramOption
	if settings.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	p := tea.NewProgram(tui.NewApp(deck, settings.FPS, logger), opts...)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	if app, ok := final.(tui.AppModel); ok && app.Err() != nil {
		return app.Err()
	}
	return nil
}

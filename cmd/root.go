package cmd

import (
	"os"

	"github.com/ThatOtherAndrew/Tinsel/internal/config"
	"github.com/ThatOtherAndrew/Tinsel/internal/logging"
	"github.com/spf13/cobra"
)

var (
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "tinsel",
	Short: "A particle Christmas tree you steer with your hand",
	Long: `tinsel draws a rotating tree of glowing particles in falling snow.
A browser tab streams hand landmarks from your webcam: pinch and slide to
spin the tree, make a fist to gather it in, open your hand to burst it out.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default ~/.config/tinsel/settings.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func settingsPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetSettingsPath()
}

// loadSettings resolves the settings file and builds the logger the command
// should use. --debug wins over the file.
func loadSettings(prefix string) (*config.Settings, logging.Logger, string, error) {
	path, err := settingsPath()
	if err != nil {
		return nil, nil, "", err
	}

	logger := logging.NewDefaultLogger(prefix, debug)
	settings, err := config.LoadSettings(path, logger)
	if err != nil {
		return nil, nil, "", err
	}
	logger.SetDebug(debug || settings.Debug)
	return settings, logger, path, nil
}

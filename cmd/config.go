package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/ThatOtherAndrew/Tinsel/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configInit  bool
	configForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the settings file and its effective values",
	Args:  cobra.NoArgs,
	Run:   showConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().BoolVar(&configInit, "init", false, "write a settings file with default values")
	configCmd.Flags().BoolVar(&configForce, "force", false, "with --init, overwrite an existing file")
}

func showConfig(cmd *cobra.Command, args []string) {
	path, err := settingsPath()
	if err != nil {
		log.Fatal("Failed to get settings path:", err)
	}

	if configInit {
		if err := initSettings(path, configForce); err != nil {
			log.Fatal(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Wrote default settings to", path)
		return
	}

	settings, _, _, err := loadSettings("config")
	if err != nil {
		log.Fatal("Failed to load settings:", err)
	}
	if err := printSettings(cmd, path, settings); err != nil {
		log.Fatal(err)
	}
}

func initSettings(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite it", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}
	return config.WriteSettings(path, config.Default())
}

func printSettings(cmd *cobra.Command, path string, settings *config.Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# %s\n", path)
	_, err = out.Write(data)
	return err
}

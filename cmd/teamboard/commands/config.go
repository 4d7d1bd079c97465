package commands

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"teamboard/internal/infrastructure/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the configuration",
	Long: `Inspect and edit the teamboard configuration file.

The file is looked up in $TEAMBOARD_CONFIG, then ~/.config/teamboard/config.yml,
and is created with defaults on first use.

Examples:
  teamboard config show
  teamboard config get storage.driver
  teamboard config edit`,
	Annotations: map[string]string{noDaemon: ""},
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show current configuration",
	Annotations: map[string]string{noDaemon: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		if formatter.Structured() {
			return formatter.Print(cfg)
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		printer.Raw(strings.TrimRight(string(data), "\n"))
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a config value",
	Long: `Get a configuration value by its dotted yaml key.

Examples:
  teamboard config get storage.driver
  teamboard config get keybindings.move`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{noDaemon: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := lookupKey(cfg, args[0])
		if err != nil {
			return err
		}
		if formatter.Structured() {
			return formatter.Print(value)
		}
		switch v := value.(type) {
		case map[string]interface{}, []interface{}:
			data, err := yaml.Marshal(v)
			if err != nil {
				return err
			}
			printer.Raw(strings.TrimRight(string(data), "\n"))
		default:
			printer.Println("%v", v)
		}
		return nil
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit config in editor",
	Long: `Open the configuration file in $EDITOR (default: vi).

The file is validated after the editor exits.`,
	Annotations: map[string]string{noDaemon: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configFilePath()
		if err != nil {
			return err
		}

		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}
		printer.Subtle("Editor: %s", editor)

		editorCmd := exec.Command(editor, path)
		editorCmd.Stdin = os.Stdin
		editorCmd.Stdout = os.Stdout
		editorCmd.Stderr = os.Stderr
		if err := editorCmd.Run(); err != nil {
			return fmt.Errorf("failed to run editor: %w", err)
		}

		if _, err := config.LoadFrom(path).Load(); err != nil {
			printer.Warning("Config is no longer valid: %v", err)
			return nil
		}
		printer.Success("Config file edited")
		printer.Info("Restart teamboardd for storage and daemon changes to take effect")
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Show config file location",
	Annotations: map[string]string{noDaemon: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configFilePath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:         "reset",
	Short:       "Reset config to defaults",
	Annotations: map[string]string{noDaemon: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path, err := configFilePath()
		if err != nil {
			return err
		}

		if !force {
			printer.Warning("About to reset %s to defaults", path)
			fmt.Print("Type 'yes' to confirm: ")
			confirmation, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.TrimSpace(confirmation) != "yes" {
				printer.Info("Reset cancelled")
				return nil
			}
		}

		defaults, err := config.Default()
		if err != nil {
			return err
		}
		if err := config.LoadFrom(path).Save(defaults); err != nil {
			return fmt.Errorf("failed to reset config: %w", err)
		}
		printer.Success("Config reset: %s", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configResetCmd)

	configResetCmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")
}

func configFilePath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	loader, err := config.NewLoader()
	if err != nil {
		return "", fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.GetConfigPath(), nil
}

// lookupKey walks the yaml form of c along a dotted key
func lookupKey(c *config.Config, key string) (interface{}, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, err
	}
	var node interface{}
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}

	for _, part := range strings.Split(key, ".") {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("unknown config key: %s", key)
		}
		if node, ok = m[part]; !ok {
			return nil, fmt.Errorf("unknown config key: %s", key)
		}
	}
	return node, nil
}

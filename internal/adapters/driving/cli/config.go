package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage octotext configuration",
	Long:  `Get and set configuration values (api_key, base_url, default_format).`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long:  `Sets a configuration value. An empty value removes the key.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	RunE:  runConfigList,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	if err := checkKey(args[0]); err != nil {
		return err
	}
	cmd.Println(configStore.GetString(args[0]))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	if err := checkKey(args[0]); err != nil {
		return err
	}
	if err := configStore.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	cmd.Printf("Set %s in %s\n", args[0], configStore.Path())
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	for _, key := range configStore.Keys() {
		value := configStore.GetString(key)
		if key == "api_key" && value != "" {
			value = "(set)"
		}
		cmd.Printf("%s = %s\n", key, value)
	}
	return nil
}

func checkKey(key string) error {
	if configStore != nil && slices.Contains(configStore.Keys(), key) {
		return nil
	}
	return fmt.Errorf("unknown config key %q", key)
}

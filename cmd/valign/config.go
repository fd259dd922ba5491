package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/umaja/valign/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get or set workspace configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show workspace configuration",
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Keys: threshold, alpha, policy, ollama_url, model, dimensions, values_file`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

// UpdateResponse is the response for config set.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)

	if humanOutput {
		fmt.Printf("threshold:   %v\n", cfg.Threshold)
		fmt.Printf("alpha:       %v\n", cfg.Alpha)
		fmt.Printf("policy:      %s\n", cfg.Policy)
		fmt.Printf("ollama_url:  %s\n", cfg.OllamaURL)
		fmt.Printf("model:       %s\n", cfg.Model)
		fmt.Printf("dimensions:  %d\n", cfg.Dimensions)
		fmt.Printf("values_file: %s\n", cfg.ValuesFile)
	} else {
		outputJSON(cfg)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)

	key, value := args[0], args[1]
	if err := applyConfigKey(cfg, key, value); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if err := cfg.Validate(); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Set %s = %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
	}
	return nil
}

func applyConfigKey(cfg *config.Config, key, value string) error {
	switch key {
	case "threshold":
		f, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return fmt.Errorf("invalid threshold: %s", value)
		}
		cfg.Threshold = float32(f)
	case "alpha":
		f, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return fmt.Errorf("invalid alpha: %s", value)
		}
		cfg.Alpha = float32(f)
	case "policy":
		cfg.Policy = value
	case "ollama_url":
		cfg.OllamaURL = value
	case "model":
		cfg.Model = value
	case "dimensions":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid dimensions: %s", value)
		}
		cfg.Dimensions = n
	case "values_file":
		cfg.ValuesFile = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

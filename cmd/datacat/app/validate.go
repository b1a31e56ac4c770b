package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datacat-dev/datacat/pkg/config"
	"github.com/datacat-dev/datacat/pkg/registry"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a catalog configuration file",
	Long: `Validate a catalog configuration file: schema, descriptor semantics
and type resolution. Exits non-zero when the configuration would not
produce a working catalog.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}

	// Building the registry catches unknown types and bad options.
	types := registry.NewBuiltinTypeRegistry()
	if _, err := registry.FromDescriptors(cfg.Descriptors(), types); err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}

	fmt.Printf("%s is valid (%d datasets)\n", configPath, len(cfg.Datasets))
	return nil
}

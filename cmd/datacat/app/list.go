package app

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/datacat-dev/datacat/pkg/catalog"
	"github.com/datacat-dev/datacat/pkg/config"
	"github.com/datacat-dev/datacat/pkg/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the datasets of a catalog configuration",
	RunE:  runList,
}

func init() {
	listCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")
	_ = listCmd.MarkFlagRequired("config")
}

func runList(cmd *cobra.Command, _ []string) error {
	cat, err := buildCatalog(cmd)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("NAME", "TYPE", "LOCATION", "VERSIONED")

	for _, name := range cat.List() {
		desc, err := cat.Describe(name)
		if err != nil {
			return err
		}
		if err := table.Append(name, desc.Type, desc.Location, strconv.FormatBool(desc.Versioned)); err != nil {
			return err
		}
	}

	return table.Render()
}

// buildCatalog loads the --config flag and assembles a catalog for
// one-shot commands.
func buildCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return catalog.FromConfig(cfg, registry.NewBuiltinTypeRegistry())
}

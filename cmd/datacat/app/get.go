package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Load a dataset and print its content as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

var existsCmd = &cobra.Command{
	Use:   "exists NAME",
	Short: "Report whether a dataset's location currently holds data",
	Args:  cobra.ExactArgs(1),
	RunE:  runExists,
}

func init() {
	getCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")
	_ = getCmd.MarkFlagRequired("config")

	existsCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")
	_ = existsCmd.MarkFlagRequired("config")
}

func runGet(cmd *cobra.Command, args []string) error {
	cat, err := buildCatalog(cmd)
	if err != nil {
		return err
	}

	data, err := cat.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	output, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render %q as JSON: %w", args[0], err)
	}
	fmt.Println(string(output))
	return nil
}

func runExists(cmd *cobra.Command, args []string) error {
	cat, err := buildCatalog(cmd)
	if err != nil {
		return err
	}

	ok, err := cat.Exists(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Println(ok)
	return nil
}

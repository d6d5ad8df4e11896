package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/saturnino-fabrica-de-software/hairmatch/internal/analyzer"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print or validate the hairstyle catalog",
	Long: `Print the hairstyle catalog as YAML. With --file, the given catalog is
validated first and printed only if it loads.

Examples:
  # Dump the built-in catalog as a starting point for CATALOG_PATH
  hairmatch catalog > catalog.yaml

  # Check a custom catalog
  hairmatch catalog --file catalog.yaml`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().String("file", "", "Catalog file to validate instead of the built-in one")
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	catalog := analyzer.DefaultCatalog()

	if path := mustGetString(cmd, "file"); path != "" {
		loaded, err := analyzer.LoadCatalogFile(path)
		if err != nil {
			return err
		}
		catalog = loaded
		fmt.Fprintf(os.Stderr, "%s: ok, %d styles\n", path, len(catalog.Styles()))
	}

	encoder := yaml.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(catalog); err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	return nil
}

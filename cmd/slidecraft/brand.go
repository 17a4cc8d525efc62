package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/slidecraft/internal/adapters/secondary/brand"
)

var brandCmd = &cobra.Command{
	Use:   "brand",
	Short: "Manage brand kits",
	Long: `A brand kit replaces the theme palette and fonts with your own colors,
fonts and logo. Reference it with --brand or [theme] brand_kit.`,
}

var brandInitCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write a starter brand kit",
	Long: `Write a starter brand kit to path. The format follows the extension:
.json, .yaml, .yml or .toml.

Example:
  slidecraft brand init brand.json --name "Acme Corp"`,
	Args: cobra.ExactArgs(1),
	RunE: runBrandInit,
}

func init() {
	brandInitCmd.Flags().String("name", "My Brand", "Brand name")
	brandInitCmd.Flags().Bool("force", false, "Overwrite an existing file")

	brandCmd.AddCommand(brandInitCmd)
	rootCmd.AddCommand(brandCmd)
}

func runBrandInit(cmd *cobra.Command, args []string) error {
	path := args[0]
	name, _ := cmd.Flags().GetString("name")
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	if err := brand.NewRepository().Save(path, brand.Starter(name)); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Wrote brand kit %q to %s\n", name, path)
	fmt.Fprintf(out, "Edit the colors and fonts, then build with: slidecraft build slides.json --brand %s\n", path)
	return nil
}

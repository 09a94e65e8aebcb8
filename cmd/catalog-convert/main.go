package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"learned_site/config"
	"learned_site/services"

	"github.com/spf13/cobra"
)

var (
	outputPath string
	publishKey string
)

var rootCmd = &cobra.Command{
	Use:   "catalog-convert <catalog.xlsx>",
	Short: "Convert a spreadsheet course catalog into YAML",
	Long: `catalog-convert reads a spreadsheet export with a Courses sheet and an
optional Options sheet, validates it, and writes the YAML catalog the
server loads. With --publish the result is also uploaded to catalog
storage (Cloudflare R2 when configured, the local directory otherwise).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return convert(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.Flags().StringVarP(&outputPath, "out", "o", "", "output file (default: input name with .yaml)")
	rootCmd.Flags().StringVar(&publishKey, "publish", "", "storage key to upload the YAML catalog to")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func convert(ctx context.Context, input string) error {
	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", input, err)
	}
	defer f.Close()

	catalog, err := services.ParseCatalogXLSX(f)
	if err != nil {
		return err
	}

	content, err := catalog.EncodeYAML()
	if err != nil {
		return err
	}

	out := outputPath
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + ".yaml"
	}
	if err := os.WriteFile(out, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	fmt.Printf("Wrote %s (%d courses, %d categories)\n", out, len(catalog.Courses), len(catalog.Categories))

	if publishKey == "" {
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cfg := config.Load()
	storage := services.NewStorage(cfg, ".")
	if err := storage.Put(ctx, publishKey, content, "application/yaml"); err != nil {
		return fmt.Errorf("failed to publish catalog: %w", err)
	}
	fmt.Printf("Published %s to %s\n", publishKey, storage.Name())
	return nil
}

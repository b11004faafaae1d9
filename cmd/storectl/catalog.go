package main

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"storefront/internal/core/application/usecases/commands"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	//go:embed seeds/categories.yaml
	defaultCategories []byte

	//go:embed seeds/product_types.yaml
	defaultProductTypes []byte
)

// readSeed returns the file at path, or fallback when path is empty.
func readSeed(path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	return os.ReadFile(path)
}

func parseCategorySeeds(raw []byte) ([]commands.CategorySeed, error) {
	var seeds []commands.CategorySeed
	if err := yaml.Unmarshal(raw, &seeds); err != nil {
		return nil, fmt.Errorf("parse category seeds: %w", err)
	}
	return seeds, nil
}

func parseProductTypeSeeds(raw []byte) ([]commands.ProductTypeSeed, error) {
	var seeds []commands.ProductTypeSeed
	if err := yaml.Unmarshal(raw, &seeds); err != nil {
		return nil, fmt.Errorf("parse product type seeds: %w", err)
	}
	return seeds, nil
}

func printSeedLines(w io.Writer, lines []commands.SeedLine) {
	for _, line := range lines {
		fmt.Fprintln(w, line.String())
	}
}

func seedCategoriesCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed-categories",
		Short: "Get or create the category hierarchy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := readSeed(file, defaultCategories)
			if err != nil {
				return err
			}
			seeds, err := parseCategorySeeds(raw)
			if err != nil {
				return err
			}
			seedCmd, err := commands.NewSeedCategoriesCommand(seeds)
			if err != nil {
				return err
			}

			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			lines, err := e.app.CreateSeedCategoriesCommandHandler().Handle(cmd.Context(), seedCmd)
			printSeedLines(cmd.OutOrStdout(), lines)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Category hierarchy setup complete.")
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML file with the hierarchy (default: built-in)")
	return cmd
}

func seedProductTypesCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed-product-types",
		Short: "Get or create attributes and product types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := readSeed(file, defaultProductTypes)
			if err != nil {
				return err
			}
			seeds, err := parseProductTypeSeeds(raw)
			if err != nil {
				return err
			}
			seedCmd, err := commands.NewSeedProductTypesCommand(seeds)
			if err != nil {
				return err
			}

			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			lines, err := e.app.CreateSeedProductTypesCommandHandler().Handle(cmd.Context(), seedCmd)
			printSeedLines(cmd.OutOrStdout(), lines)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Product types setup complete.")
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML file with product types (default: built-in)")
	return cmd
}

func readImportItems(path string) ([]commands.ImportItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []commands.ImportItem
	if err = json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return items, nil
}

func importProductsCmd() *cobra.Command {
	var category, productType string
	cmd := &cobra.Command{
		Use:   "import-products <file.json>",
		Short: "Import products and variants from a scraped JSON file",
		Long: `Import products and variants from a JSON array of items with sku, title,
clean_title, local_image_path, width_cm, height_cm and depth_cm.

Image paths are resolved relative to the JSON file. Every item is imported in
its own transaction; failures are reported and do not stop the import.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := readImportItems(args[0])
			if err != nil {
				return err
			}
			importCmd, err := commands.NewImportProductsCommand(items, os.DirFS(filepath.Dir(args[0])), category, productType)
			if err != nil {
				return err
			}

			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.Close()
			blobs, err := e.app.CreateBlobStore(cmd.Context())
			if err != nil {
				return err
			}

			report, err := e.app.CreateImportProductsCommandHandler(blobs).Handle(cmd.Context(), importCmd)
			out := cmd.OutOrStdout()
			for _, res := range report.Results {
				fmt.Fprintln(out, res.String())
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Imported %d products.\n", report.Imported)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "Animals", "category title the products are added to")
	cmd.Flags().StringVar(&productType, "product-type", "Sculpture", "product type of the imported products")
	return cmd
}

func autoCategorizeCmd() *cobra.Command {
	var batchSize, maxWorkers, limit int
	cmd := &cobra.Command{
		Use:   "auto-categorize",
		Short: "Assign products to categories with an LLM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			categorizeCmd, err := commands.NewAutoCategorizeCommand(batchSize, maxWorkers, limit)
			if err != nil {
				return err
			}

			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.Close()
			suggester, err := e.app.CreateCategorySuggester()
			if err != nil {
				return err
			}

			report, err := e.app.CreateAutoCategorizeCommandHandler(suggester).Handle(cmd.Context(), categorizeCmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Loaded %d categories.\n", report.Categories)
			fmt.Fprintf(out, "Processing %d products in %d batches.\n", report.Products, len(report.Batches))
			for _, batch := range report.Batches {
				fmt.Fprintln(out, batch.String())
			}
			fmt.Fprintln(out, "Auto-categorization complete.")
			return nil
		},
	}
	cmd.Flags().IntVar(&batchSize, "batch-size", 20, "products per LLM request")
	cmd.Flags().IntVar(&maxWorkers, "max-workers", 3, "parallel LLM requests")
	cmd.Flags().IntVar(&limit, "limit", 0, "only process the newest N products (0 means all)")
	return cmd
}

package main

import (
	"fmt"
	"path/filepath"

	"storefront/internal/pkg/imageopt"

	"github.com/spf13/cobra"
)

func optimizeImagesCmd() *cobra.Command {
	var opts imageopt.Options
	cmd := &cobra.Command{
		Use:   "optimize-images <dir>",
		Short: "Re-encode PNG, JPEG and WEBP images for the web",
		Long: `Re-encode every PNG, JPEG and WEBP image in <dir> into <dir>/optimized.

JPEG is written at quality 85. PNG keeps its format with maximum compression,
or a 256-colour palette with --lossy. WEBP is converted to JPEG.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := imageopt.OptimizeDir(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(report.Files) == 0 {
				fmt.Fprintln(out, "No images found.")
				return nil
			}
			for _, f := range report.Files {
				name := filepath.Base(f.Source)
				if f.Err != nil {
					fmt.Fprintf(out, "Error processing %s: %v\n", name, f.Err)
					continue
				}
				fmt.Fprintf(out, "%s: %.1fKB -> %.1fKB (%s)\n",
					name, float64(f.Before)/1024, float64(f.After)/1024, change(f))
			}
			fmt.Fprintf(out, "Done! Total saved: %.2f MB\n", report.SavedMB())
			if failed := report.Failed(); failed > 0 {
				return fmt.Errorf("%d of %d images failed", failed, len(report.Files))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.Workers, "workers", 4, "images processed in parallel")
	cmd.Flags().BoolVar(&opts.Lossy, "lossy", false, "quantise PNG images to 256 colours")
	cmd.Flags().IntVar(&opts.MaxWidth, "max-width", 0, "scale wider images down to this width")
	return cmd
}

func change(f imageopt.FileResult) string {
	if f.Before == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%+.1f%%", -float64(f.Saved())*100/float64(f.Before))
}

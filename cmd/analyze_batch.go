package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/reviewlens/internal/analysis"
	"github.com/KaramelBytes/reviewlens/internal/utils"
)

var (
	abLoad       loadFlags
	abOutDir     string
	abFormat     string
	abPerProduct bool
	abQuiet      bool
)

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Analyze multiple review files, optionally one report per product",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := expandInputs(args)
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		opt, err := analysisOptions()
		if err != nil {
			return err
		}
		format, err := resolveFormat(abFormat, "")
		if err != nil {
			return err
		}
		if err := os.MkdirAll(abOutDir, 0o755); err != nil {
			return fmt.Errorf("create out dir: %w", err)
		}

		total := len(files)
		written := 0
		for i, path := range files {
			if !abQuiet {
				fmt.Printf("[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			ds, err := loadDataset(path, &abLoad)
			if err != nil {
				return err
			}
			base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			products := []string{""}
			if abPerProduct {
				if ps := ds.Products(); len(ps) > 0 {
					products = ps
				} else {
					log.Warn().Str("file", ds.Name).Msg("no product column; writing one report")
				}
			}
			for _, product := range products {
				rep, err := analysis.Run(cmd.Context(), ds.ForProduct(product), opt)
				if err != nil {
					return err
				}
				body, err := rep.Render(format)
				if err != nil {
					return err
				}
				name := base
				if product != "" {
					if slug := utils.Slug(product); slug != "" {
						name += "_" + slug
					} else {
						name += "_product"
					}
				}
				out := utils.UniquePath(filepath.Join(abOutDir, name+"_report"+extFor(format)))
				if err := utils.SafeWriteFile(out, body); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				written++
				if !abQuiet {
					fmt.Printf("  ✓ %s\n", out)
				}
			}
		}
		if !abQuiet {
			fmt.Printf("✓ Wrote %d report(s) to %s\n", written, abOutDir)
		}
		return nil
	},
}

// expandInputs resolves globs, keeps literal paths that exist and dedupes.
func expandInputs(args []string) []string {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

func extFor(f analysis.Format) string {
	switch f {
	case analysis.FormatJSON:
		return ".json"
	case analysis.FormatYAML:
		return ".yaml"
	case analysis.FormatXLSX:
		return ".xlsx"
	}
	return ".md"
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	abLoad.register(analyzeBatchCmd.Flags())
	analyzeBatchCmd.Flags().StringVar(&abOutDir, "out-dir", "reports", "directory to write reports into")
	analyzeBatchCmd.Flags().StringVarP(&abFormat, "format", "f", "", "report format: markdown|json|yaml|xlsx (default from config)")
	analyzeBatchCmd.Flags().BoolVar(&abPerProduct, "per-product", false, "write one report per product found in each file")
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "suppress progress and non-essential output")
}

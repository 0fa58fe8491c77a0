package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/reviewlens/internal/analysis"
	"github.com/KaramelBytes/reviewlens/internal/utils"
)

var (
	anaLoad       loadFlags
	anaOutputPath string
	anaFormat     string
	anaProduct    string
	anaInsight    int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a review CSV/TSV/XLSX and produce the insight report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := analysisOptions()
		if err != nil {
			return err
		}
		format, err := resolveFormat(anaFormat, anaOutputPath)
		if err != nil {
			return err
		}
		if anaInsight != 0 {
			if _, err := analysis.InsightByID(anaInsight); err != nil {
				return err
			}
		}
		ds, err := loadDataset(args[0], &anaLoad)
		if err != nil {
			return err
		}
		rep, err := analysis.Run(cmd.Context(), productView(ds, anaProduct), opt)
		if err != nil {
			return err
		}
		if anaInsight != 0 {
			rep.Insights = rep.Insights[anaInsight-1 : anaInsight]
		}
		return writeReport(rep, format, anaOutputPath)
	},
}

// resolveFormat picks the output format: explicit flag, then output file
// extension, then the configured default.
func resolveFormat(flag, outPath string) (analysis.Format, error) {
	if flag != "" {
		return analysis.ParseFormat(flag)
	}
	if f, ok := analysis.FormatForPath(outPath); ok {
		return f, nil
	}
	return analysis.ParseFormat(currentConfig().OutputFormat)
}

func writeReport(rep *analysis.Report, format analysis.Format, outPath string) error {
	if format == analysis.FormatXLSX && outPath == "" {
		return fmt.Errorf("xlsx output requires --output")
	}
	body, err := rep.Render(format)
	if err != nil {
		return err
	}
	if outPath == "" {
		fmt.Println(string(body))
		return nil
	}
	if err := utils.SafeWriteFile(outPath, body); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("✓ Wrote analysis to %s\n", outPath)
	return nil
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	anaLoad.register(analyzeCmd.Flags())
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the report")
	analyzeCmd.Flags().StringVarP(&anaFormat, "format", "f", "", "report format: markdown|json|yaml|xlsx (default from --output extension or config)")
	analyzeCmd.Flags().StringVarP(&anaProduct, "product", "p", "", "restrict to one product id (all products if omitted or unknown)")
	analyzeCmd.Flags().IntVar(&anaInsight, "insight", 0, "only include insight N (1-10)")
}

package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/reviewlens/internal/analysis"
	"github.com/KaramelBytes/reviewlens/internal/dataset"
	"github.com/KaramelBytes/reviewlens/internal/utils"
)

var (
	expLoad       loadFlags
	expProduct    string
	expOutput     string
	expMonths     []int
	expSentiments []string
	expSkinTypes  []string
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write filtered reviews, newest first, as UTF-8 CSV with BOM",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0], &expLoad)
		if err != nil {
			return err
		}
		filter, err := dataset.NewFilter(expMonths, expSentiments, expSkinTypes)
		if err != nil {
			return err
		}
		view := productView(ds, expProduct).Filtered(filter)
		sum := analysis.Summarize(view)
		log.Info().Int("reviews", sum.TotalReviews).Str("positive_ratio", sum.PositiveRatio).Msg("filtered reviews")
		if expOutput == "" {
			return dataset.WriteCSV(os.Stdout, view)
		}
		var buf bytes.Buffer
		if err := dataset.WriteCSV(&buf, view); err != nil {
			return err
		}
		if err := utils.SafeWriteFile(expOutput, buf.Bytes()); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Printf("✓ Exported %d reviews (positive %s) to %s\n", view.Len(), sum.PositiveRatio, expOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	expLoad.register(exportCmd.Flags())
	exportCmd.Flags().StringVarP(&expProduct, "product", "p", "", "restrict to one product id")
	exportCmd.Flags().StringVarP(&expOutput, "output", "o", "", "output CSV path (stdout if omitted)")
	exportCmd.Flags().IntSliceVar(&expMonths, "month", nil, "keep only these calendar months (1-12, repeatable or comma-separated)")
	exportCmd.Flags().StringSliceVar(&expSentiments, "sentiment", nil, "keep only these overall sentiment labels")
	exportCmd.Flags().StringSliceVar(&expSkinTypes, "skin-type", nil, "keep only these skin types (case-insensitive)")
}

package cmd

import (
	"bytes"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/reviewlens/internal/dataset"
	"github.com/KaramelBytes/reviewlens/internal/synth"
	"github.com/KaramelBytes/reviewlens/internal/utils"
)

var (
	smpRows     int
	smpSeed     int64
	smpProducts []string
	smpYear     int
	smpYears    int
	smpOutput   string
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate a synthetic labelled review CSV for demos",
	RunE: func(cmd *cobra.Command, args []string) error {
		if smpRows <= 0 {
			return fmt.Errorf("--rows must be positive")
		}
		if smpYears < 1 {
			return fmt.Errorf("--years must be at least 1")
		}
		opt := synth.DefaultOptions()
		opt.Rows = smpRows
		opt.Seed = smpSeed
		if len(smpProducts) > 0 {
			opt.Products = smpProducts
		}
		opt.Start = time.Date(smpYear, 1, 1, 0, 0, 0, 0, time.UTC)
		opt.End = time.Date(smpYear+smpYears-1, 12, 31, 23, 59, 59, 0, time.UTC)

		ds := dataset.Normalize(synth.Generate(opt))
		var buf bytes.Buffer
		if err := dataset.WriteCSV(&buf, ds); err != nil {
			return err
		}
		if err := utils.SafeWriteFile(smpOutput, buf.Bytes()); err != nil {
			return fmt.Errorf("write sample: %w", err)
		}
		fmt.Printf("✓ Wrote %d synthetic reviews to %s\n", ds.Len(), smpOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
	sampleCmd.Flags().IntVar(&smpRows, "rows", 1200, "number of reviews to generate")
	sampleCmd.Flags().Int64Var(&smpSeed, "seed", 42, "random seed")
	sampleCmd.Flags().StringSliceVar(&smpProducts, "products", nil, "product ids (comma-separated)")
	sampleCmd.Flags().IntVar(&smpYear, "year", 2024, "first calendar year covered")
	sampleCmd.Flags().IntVar(&smpYears, "years", 1, "number of calendar years covered")
	sampleCmd.Flags().StringVarP(&smpOutput, "output", "o", "sample_reviews.csv", "output CSV path")
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var prodLoad loadFlags

var productsCmd = &cobra.Command{
	Use:   "products <file>",
	Short: "List product ids with review counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0], &prodLoad)
		if err != nil {
			return err
		}
		ids := ds.Products()
		if len(ids) == 0 {
			fmt.Printf("No product column; %d reviews in total\n", ds.Len())
			return nil
		}
		counts := map[string]int{}
		for i := range ds.Reviews {
			counts[ds.Reviews[i].ProductID]++
		}
		fmt.Printf("%d products, %d reviews\n", len(ids), ds.Len())
		for _, id := range ids {
			fmt.Printf("- %s (%d)\n", id, counts[id])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(productsCmd)
	prodLoad.register(productsCmd.Flags())
}

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/menye94/park-pricing/internal/pricing"
)

var (
	classifyParks       []int64
	classifyEntryType   int64
	classifyAgeGroup    int64
	classifyPricingType int64
	classifyCategory    int64
	classifySeason      int64
	classifyCurrency    int64
	classifyTax         string
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Check candidate parks for existing products and prices",
	Long: `Classify each candidate park for the given dimensions as new, existing
product, or exact duplicate. Season, currency and tax are optional; without
all three no park can be an exact duplicate.`,
	Example: `  park-pricing classify --parks 1,2,3 --entry-type 1 --age-group 2 --pricing-type 1
  park-pricing classify --parks 1,2 --entry-type 1 --age-group 2 --pricing-type 1 \
    --season 1 --currency 1 --tax exclusive`,
	Args: cobra.NoArgs,
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().Int64SliceVar(&classifyParks, "parks", nil, "candidate park ids")
	classifyCmd.Flags().Int64Var(&classifyEntryType, "entry-type", 0, "entry type id")
	classifyCmd.Flags().Int64Var(&classifyAgeGroup, "age-group", 0, "age group id")
	classifyCmd.Flags().Int64Var(&classifyPricingType, "pricing-type", 0, "pricing type id")
	classifyCmd.Flags().Int64Var(&classifyCategory, "category", 0, "category id (omit for none)")
	classifyCmd.Flags().Int64Var(&classifySeason, "season", 0, "season id")
	classifyCmd.Flags().Int64Var(&classifyCurrency, "currency", 0, "currency id")
	classifyCmd.Flags().StringVar(&classifyTax, "tax", "", "tax behavior (inclusive, exclusive or legacy code)")

	_ = classifyCmd.MarkFlagRequired("parks")
	_ = classifyCmd.MarkFlagRequired("entry-type")
	_ = classifyCmd.MarkFlagRequired("age-group")
	_ = classifyCmd.MarkFlagRequired("pricing-type")
}

// classifyDimensions builds the fixed dimensions from the flags.
func classifyDimensions() (pricing.FixedDimensions, error) {
	fixed := pricing.FixedDimensions{
		EntryTypeID:   classifyEntryType,
		AgeGroupID:    classifyAgeGroup,
		PricingTypeID: classifyPricingType,
		SeasonID:      classifySeason,
		CurrencyID:    classifyCurrency,
	}
	if classifyCategory > 0 {
		category := classifyCategory
		fixed.CategoryID = &category
	}
	if classifyTax != "" {
		tax, err := pricing.ParseTaxBehavior(classifyTax)
		if err != nil {
			return pricing.FixedDimensions{}, err
		}
		fixed.TaxBehavior = tax
	}
	return fixed, nil
}

func runClassify(cmd *cobra.Command, args []string) error {
	fixed, err := classifyDimensions()
	if err != nil {
		return err
	}

	results, err := newService().ClassifyCandidates(cmd.Context(), fixed, classifyParks)
	if err != nil {
		return fmt.Errorf("classify failed: %w", err)
	}
	return printClassifications(cmd.OutOrStdout(), classifyParks, results)
}

func printClassifications(out io.Writer, parkIDs []int64, results map[int64]pricing.Classification) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARK\tSTATUS\tPRODUCT")
	for _, id := range parkIDs {
		c, ok := results[id]
		if !ok {
			continue
		}
		product := "-"
		if c.ProductID > 0 {
			product = fmt.Sprintf("%d", c.ProductID)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", id, c.Status(), product)
	}
	return w.Flush()
}

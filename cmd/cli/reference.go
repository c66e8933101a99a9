package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/menye94/park-pricing/internal/pricing"
)

var referenceOutput string

var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "Print the reference lookups",
	Long: `Print parks, categories, entry types, age groups, pricing types, seasons
and currencies. Dimensions that failed to load are listed at the end and
the remaining ones are still printed.`,
	Example: `  park-pricing reference
  park-pricing reference --output json`,
	Args: cobra.NoArgs,
	RunE: runReference,
}

func init() {
	rootCmd.AddCommand(referenceCmd)

	referenceCmd.Flags().StringVarP(&referenceOutput, "output", "o", "table", "output format (table, json)")
}

func runReference(cmd *cobra.Command, args []string) error {
	ref := newService().LoadReferenceData(cmd.Context())

	switch referenceOutput {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(ref)
	case "table":
		return printReference(cmd.OutOrStdout(), ref)
	default:
		return fmt.Errorf("invalid output format %q (use 'table' or 'json')", referenceOutput)
	}
}

type namedRow struct {
	id   int64
	name string
}

func printReference(out io.Writer, ref *pricing.ReferenceData) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	section := func(title string, rows []namedRow) {
		fmt.Fprintf(w, "%s (%d)\n", title, len(rows))
		fmt.Fprintln(w, "  ID\tNAME")
		for _, r := range rows {
			fmt.Fprintf(w, "  %d\t%s\n", r.id, r.name)
		}
		fmt.Fprintln(w)
	}

	parks := make([]namedRow, 0, len(ref.Parks))
	for _, p := range ref.Parks {
		parks = append(parks, namedRow{p.ID, p.Name})
	}
	section("PARKS", parks)

	categories := make([]namedRow, 0, len(ref.Categories))
	for _, c := range ref.Categories {
		categories = append(categories, namedRow{c.ID, c.Name})
	}
	section("CATEGORIES", categories)

	entryTypes := make([]namedRow, 0, len(ref.EntryTypes))
	for _, e := range ref.EntryTypes {
		entryTypes = append(entryTypes, namedRow{e.ID, e.Name})
	}
	section("ENTRY TYPES", entryTypes)

	ageGroups := make([]namedRow, 0, len(ref.AgeGroups))
	for _, a := range ref.AgeGroups {
		ageGroups = append(ageGroups, namedRow{a.ID, fmt.Sprintf("%s (%d-%d)", a.Name, a.MinAge, a.MaxAge)})
	}
	section("AGE GROUPS", ageGroups)

	pricingTypes := make([]namedRow, 0, len(ref.PricingTypes))
	for _, p := range ref.PricingTypes {
		pricingTypes = append(pricingTypes, namedRow{p.ID, p.Name})
	}
	section("PRICING TYPES", pricingTypes)

	seasons := make([]namedRow, 0, len(ref.Seasons))
	for _, s := range ref.Seasons {
		seasons = append(seasons, namedRow{s.ID, fmt.Sprintf("%s (%s to %s)", s.Name,
			s.StartDate.Format("2006-01-02"), s.EndDate.Format("2006-01-02"))})
	}
	section("SEASONS", seasons)

	currencies := make([]namedRow, 0, len(ref.Currencies))
	for _, c := range ref.Currencies {
		currencies = append(currencies, namedRow{c.ID, string(c.Code())})
	}
	section("CURRENCIES", currencies)

	if len(ref.Failures) > 0 {
		dims := make([]string, 0, len(ref.Failures))
		for d := range ref.Failures {
			dims = append(dims, d)
		}
		sort.Strings(dims)
		fmt.Fprintln(w, "FAILED TO LOAD")
		for _, d := range dims {
			fmt.Fprintf(w, "  %s\t%s\n", d, ref.Failures[d])
		}
	}

	return w.Flush()
}

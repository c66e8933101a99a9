package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/menye94/park-pricing/internal/database"
	"github.com/menye94/park-pricing/internal/quote"
	"github.com/menye94/park-pricing/internal/storage"
	"github.com/menye94/park-pricing/internal/sweepers"
)

var quoteExportOut string

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Inspect and export stored quotes",
}

var quoteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List quote ids in the local store",
	Args:  cobra.NoArgs,
	RunE:  runQuoteList,
}

var quoteSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push local quote line items missing from the offer mirror",
	Args:  cobra.NoArgs,
	RunE:  runQuoteSync,
}

var quoteExportCmd = &cobra.Command{
	Use:   "export <quote-id>",
	Short: "Export a quote to an xlsx spreadsheet",
	Long: `Load a quote, reconciling it with the backing offer record, and write it
as a spreadsheet. Without --out the file is named quote-<id>.xlsx.`,
	Example: `  park-pricing quote export offer-42
  park-pricing quote export offer-42 --out /tmp/offer.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runQuoteExport,
}

func init() {
	rootCmd.AddCommand(quoteCmd)
	quoteCmd.AddCommand(quoteListCmd, quoteSyncCmd, quoteExportCmd)

	quoteExportCmd.Flags().StringVar(&quoteExportOut, "out", "", "output file path")
}

func openDocumentStore(cmd *cobra.Command) (*quote.DocumentStore, func() error, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("config required for quote commands but not loaded")
	}
	store, closeStore, err := storage.Open(cmd.Context(), cfg.Storage.Type, cfg.Storage.BasePath, cfg.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("open quote storage: %w", err)
	}
	return quote.NewDocumentStore(store), closeStore, nil
}

func runQuoteList(cmd *cobra.Command, args []string) error {
	docs, closeStore, err := openDocumentStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	ids, err := docs.ListQuotes(cmd.Context())
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}

func runQuoteSync(cmd *cobra.Command, args []string) error {
	docs, closeStore, err := openDocumentStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	composer := quote.NewComposer(docs, database.NewRepository(nil), newService().Converter())
	pushed, err := sweepers.NewMirrorSweeper(docs, composer, logger, time.Minute).Sweep(cmd.Context())
	fmt.Fprintf(cmd.OutOrStdout(), "Pushed %d line item changes\n", pushed)
	return err
}

func runQuoteExport(cmd *cobra.Command, args []string) error {
	docs, closeStore, err := openDocumentStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	composer := quote.NewComposer(docs, database.NewRepository(nil), newService().Converter())
	q, err := composer.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	path := quoteExportOut
	if path == "" {
		path = fmt.Sprintf("quote-%s.xlsx", q.ID)
	}
	if err := writeExport(path, q); err != nil {
		return err
	}
	logger.Info().Str("quote", q.ID).Int("items", len(q.Items)).Str("file", path).Msg("Quote exported")
	return nil
}

func writeExport(path string, q *quote.Quote) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return quote.Export(q, f)
}

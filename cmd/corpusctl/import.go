package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"paperrec/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import INPUT",
	Short: "Load a clean JSONL corpus into a SQLite snapshot store",
	Long: `Import replaces the store's current snapshot with the records in INPUT in a
single transaction. Serve the result with CORPUS_SOURCE=sqlite://<db>.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("db")

		records, err := readJSONL(args[0])
		if err != nil {
			return err
		}

		db, err := storage.New(dbPath)
		if err != nil {
			return err
		}
		defer closeQuietly(db)

		if err := storage.Migrate(db); err != nil {
			return err
		}

		papers := make([]storage.PaperRecord, len(records))
		for i, r := range records {
			papers[i] = storage.PaperRecord{
				Title:       r.Title,
				Description: r.Description,
				URL:         r.URL,
			}
		}

		snap, err := storage.NewPaperRepo(db).ReplaceAll(cmd.Context(), args[0], papers)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "snapshot %s: %d records from %s\n", snap.ID, snap.RecordCount, snap.Source)
		return nil
	},
}

func init() {
	importCmd.Flags().String("db", "corpus.db", "SQLite database path")

	rootCmd.AddCommand(importCmd)
}

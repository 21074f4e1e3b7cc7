package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"paperrec/internal/corpus"
)

var cleanCmd = &cobra.Command{
	Use:   "clean INPUT...",
	Short: "Merge and normalize raw JSONL dumps into a clean corpus",
	Long: `Clean decodes HTML entities, strips tags, collapses whitespace, drops
records without a title or description and removes duplicates by URL (or by
title when the URL is empty). Inputs are merged in the order given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("out")

		var raw []corpus.Record
		for _, path := range args {
			records, err := readJSONL(path)
			if err != nil {
				return err
			}
			raw = append(raw, records...)
		}

		cleaned, stats := corpus.Clean(raw)

		out := cmd.OutOrStdout()
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outPath, err)
			}
			if err := corpus.WriteJSONL(f, cleaned); err != nil {
				_ = f.Close()
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to close %s: %w", outPath, err)
			}
		} else if err := corpus.WriteJSONL(out, cleaned); err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "in=%d out=%d empty=%d duplicates=%d\n",
			stats.In, stats.Out, stats.Empty, stats.Duplicates)
		return nil
	},
}

func init() {
	cleanCmd.Flags().StringP("out", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(cleanCmd)
}

func readJSONL(path string) ([]corpus.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer closeQuietly(f)

	records, stats, err := corpus.ParseJSONL(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if stats.Skipped > 0 {
		fmt.Fprintf(os.Stderr, "%s: skipped %d of %d lines\n", path, stats.Skipped, stats.Lines)
	}
	return records, nil
}

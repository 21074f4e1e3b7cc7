// Command corpusctl prepares and inspects the paper corpus offline.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "corpusctl",
	Short: "Prepare and inspect the recommendation corpus",
	Long: `corpusctl cleans raw paper dumps into the JSONL corpus, imports a corpus
into a SQLite snapshot store, and runs the classifier or the offline fallback
path against a corpus without calling the model.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// closeQuietly is used for read-only files where a close error carries no information.
func closeQuietly(c io.Closer) {
	_ = c.Close()
}

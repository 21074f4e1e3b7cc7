package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"paperrec/internal/clarify"
)

var classifyCmd = &cobra.Command{
	Use:   "classify QUERY...",
	Short: "Print the clarification decision for a query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		classifier, err := loadClassifier(cmd)
		if err != nil {
			return err
		}

		res := classifier.Classify(strings.Join(args, " "))

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(map[string]any{
			"needsClarify": res.NeedsClarify,
			"question":     res.Question,
			"options":      res.Options,
		})
	},
}

func init() {
	addClassifierFlags(classifyCmd)

	rootCmd.AddCommand(classifyCmd)
}

func addClassifierFlags(cmd *cobra.Command) {
	cmd.Flags().String("locale", "en", "built-in clarification table (en or ko)")
	cmd.Flags().String("table", "", "custom clarification table YAML (overrides --locale)")
}

func loadClassifier(cmd *cobra.Command) (*clarify.Classifier, error) {
	locale, _ := cmd.Flags().GetString("locale")
	path, _ := cmd.Flags().GetString("table")

	var (
		table clarify.Table
		err   error
	)
	if path != "" {
		table, err = clarify.LoadTable(path)
	} else {
		table, err = clarify.BuiltinTable(locale)
	}
	if err != nil {
		return nil, err
	}
	return clarify.NewClassifier(table)
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var vectorizeCmd = &cobra.Command{
	Use:   "vectorize <text>",
	Short: "Embed text and show the vector's shape",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := client.Vectorize(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		output(result, func() {
			fmt.Println()
			label("text", truncate(result.OriginalText, 60))
			label("dimension", result.VectorDimension)
			label("preview", fmt.Sprintf("%.4v", result.VectorPreview))
			fmt.Println()
		})
		return nil
	},
}

var rememberCmd = &cobra.Command{
	Use:   "remember <text>",
	Short: "Store a piece of personal context",
	Long:  `Embed the given text and store it in the vector database for later search and insight generation.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := client.SaveContext(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		output(result, func() {
			fmt.Println()
			label("status", result.Status)
			label("id", result.ID)
			label("message", result.Message)
			fmt.Println()
		})
		return nil
	},
}

var searchTopK int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search stored context semantically",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := client.Search(cmd.Context(), strings.Join(args, " "), searchTopK)
		if err != nil {
			return err
		}
		output(result, func() {
			fmt.Println()
			label("query", result.Query)
			label("results", result.TotalResults)
			fmt.Println()
			for i, m := range result.Matches {
				fmt.Printf("  %d. [%.3f] %s\n", i+1, m.Score, truncate(m.Text, 100))
			}
			if len(result.Matches) > 0 {
				fmt.Println()
			}
		})
		return nil
	},
}

var insightCmd = &cobra.Command{
	Use:   "insight <question>",
	Short: "Generate an AI insight grounded in stored context",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := client.GetInsight(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		output(result, func() {
			fmt.Println()
			fmt.Println("  " + result.Insight)
			fmt.Println()
			label("model", result.ModelUsed)
			label("context", fmt.Sprintf("%d entries used", len(result.ContextUsed)))
			fmt.Println()
		})
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchTopK, "top-k", 0, "Number of results (1-20, default 3)")
	rootCmd.AddCommand(vectorizeCmd)
	rootCmd.AddCommand(rememberCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(insightCmd)
}

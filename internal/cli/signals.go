package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	signalsTopK     int
	signalsMinScore float64
	fetchLimit      int
)

var signalsCmd = &cobra.Command{
	Use:   "signals <context>",
	Short: "Rank news articles against your context",
	Long: `Search fetched news articles for ones relevant to the given context and
rank them by relevance score (0-10).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := client.Signals(cmd.Context(), strings.Join(args, " "), signalsTopK, signalsMinScore)
		if err != nil {
			return err
		}
		output(result, func() {
			fmt.Println()
			label("context", truncate(result.UserContext, 80))
			label("signals", result.Total)
			fmt.Println()
			for i, s := range result.Signals {
				fmt.Printf("  %d. [%.1f] %s (%s)\n", i+1, s.Score, s.Article.Title, s.Article.Source)
				fmt.Printf("     %s\n", s.Article.URL)
				if s.Reason != "" {
					fmt.Printf("     %s\n", truncate(s.Reason, 120))
				}
			}
			if len(result.Signals) > 0 {
				fmt.Println()
			}
		})
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show signal system statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := client.SignalStats(cmd.Context())
		if err != nil {
			return err
		}
		output(stats, func() {
			fmt.Println()
			label("articles", stats.NewsArticlesCount)
			label("feeds", stats.FeedsConfigured)
			label("status", stats.Status)
			fmt.Println()
		})
		return nil
	},
}

var feedsCmd = &cobra.Command{
	Use:   "feeds",
	Short: "List configured news feeds",
	RunE: func(cmd *cobra.Command, args []string) error {
		feeds, err := client.ListFeeds(cmd.Context())
		if err != nil {
			return err
		}
		output(feeds, func() {
			fmt.Println()
			for _, f := range feeds {
				state := "enabled"
				if !f.Enabled {
					state = "disabled"
				}
				fmt.Printf("  %-16s %-10s %-9s %s\n", f.Name, f.Category, state, f.URL)
			}
			fmt.Println()
		})
		return nil
	},
}

var feedsFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch and index articles from all feeds",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := client.FetchFeeds(cmd.Context(), fetchLimit)
		if err != nil {
			return err
		}
		output(result, func() {
			fmt.Println()
			label("status", result.Status)
			label("fetched", result.Fetched)
			label("processed", result.Processed)
			if len(result.Sources) > 0 {
				label("sources", strings.Join(result.Sources, ", "))
			}
			fmt.Println()
		})
		return nil
	},
}

func init() {
	signalsCmd.Flags().IntVar(&signalsTopK, "top-k", 0, "Maximum signals to return (1-20, default 10)")
	signalsCmd.Flags().Float64Var(&signalsMinScore, "min-score", -1, "Minimum relevance score (0-10, default 3.0)")
	feedsFetchCmd.Flags().IntVar(&fetchLimit, "limit-per-feed", 0, "Maximum articles per feed (default 10)")
	feedsCmd.AddCommand(feedsFetchCmd)
	rootCmd.AddCommand(signalsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(feedsCmd)
}

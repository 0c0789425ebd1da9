package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"newsbot/internal/di"
)

const defaultCLILimit = 5

var (
	language string
	limit    int
	timeout  time.Duration
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "newscli [topic words...]",
		Short: "Search NewsAPI for a topic and print the most relevant articles",
		Long: `newscli looks up news articles for a topic through NewsAPI and prints them.

When no topic is given on the command line it is read from standard input.
The API key is read from API_NEWS (a .env file in the working directory is honored).`,
		Example: `  newscli "climate change"            # Search in the configured language
  newscli -l en -n 3 "interest rates"  # English, three articles
  newscli                              # Prompt for the topic`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, err := di.InitializeSearchTool()
			if err != nil {
				return err
			}

			lang := language
			if lang == "" {
				lang = tool.Language
			}
			deadline := timeout
			if deadline <= 0 {
				deadline = tool.Timeout
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), deadline)
			defer cancel()

			s := &session{
				searcher: tool.Searcher,
				in:       cmd.InOrStdin(),
				out:      cmd.OutOrStdout(),
				language: lang,
				limit:    limit,
			}
			return s.run(ctx, strings.Join(args, " "), len(args) == 0)
		},
	}

	rootCmd.Flags().StringVarP(&language, "language", "l", "", "Article language code (defaults to NEWS_LANGUAGE or ru)")
	rootCmd.Flags().IntVarP(&limit, "limit", "n", defaultCLILimit, "Maximum number of articles to print (1-100)")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "Overall deadline for the lookup (defaults to REQUEST_TIMEOUT)")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

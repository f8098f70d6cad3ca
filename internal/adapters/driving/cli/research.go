package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scripdex/scripdex/internal/core/domain"
)

var (
	researchQuery   string
	researchFocus   string
	researchPeriods int
	researchJSON    bool
)

var researchCmd = &cobra.Command{
	Use:   "research [company]",
	Short: "Fetch, cache and query a company's recent filings",
	Long: `Runs the full research flow for one company: resolves the
identifier, discovers recent transcripts, presentations and results,
downloads and caches any that are missing, then returns the cached
chunks relevant to the query.

Examples:
  scripdex research RELIANCE --query "capex plans"
  scripdex research "Tata Motors" --focus financials
  scripdex research 500325 --focus transcripts --periods 2`,
	Args: cobra.ExactArgs(1),
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().StringVarP(&researchQuery, "query", "q", "", "what to look for in the filings")
	researchCmd.Flags().StringVar(&researchFocus, "focus", "all", "filing focus: all, guidance, financials, transcripts, annual")
	researchCmd.Flags().IntVar(&researchPeriods, "periods", 3, "filings per type to fetch (max 5)")
	researchCmd.Flags().BoolVar(&researchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	result, err := researchService.Research(cmd.Context(), domain.ResearchRequest{
		Company: args[0],
		Query:   researchQuery,
		Focus:   domain.Focus(researchFocus),
		Periods: researchPeriods,
	})
	if err != nil {
		return fmt.Errorf("researching %q: %w", args[0], err)
	}

	if researchJSON {
		return printJSON(cmd, result)
	}

	cmd.Printf("Company: %s\n", matchLabel(&result.Company))
	cmd.Printf("Documents cached: %d (%d fetched now)\n", result.DocumentsCached, result.FetchedNow)
	cmd.Println()

	if len(result.Documents) > 0 {
		cmd.Println("Filings:")
		for _, doc := range result.Documents {
			marker := " "
			if doc.Cached {
				marker = "*"
			}
			cmd.Printf("  %s %-14s %s  %s\n", marker, doc.Type, doc.Date, doc.Headline)
		}
		cmd.Println()
	}

	if len(result.RelevantContent) == 0 {
		cmd.Println("No relevant content found in the cached filings.")
		return nil
	}

	cmd.Printf("Relevant content (%d chunks):\n\n", result.ChunksReturned)
	for i, chunk := range result.RelevantContent {
		cmd.Printf("--- [%d] %s / %s, %s ---\n", i+1, chunk.DocumentType, chunk.ChunkType, chunk.DocumentDate)
		cmd.Println(chunk.Content)
		cmd.Println()
	}
	return nil
}

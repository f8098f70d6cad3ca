package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scripdex/scripdex/internal/core/domain"
	"github.com/scripdex/scripdex/internal/core/ports/driving"
)

var (
	resolveLimit  int
	resolveCutoff int
	resolveJSON   bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [query]",
	Short: "Resolve a company identifier to listed securities",
	Long: `Resolves a free-form identifier to listed securities.
Accepts company names, ticker symbols, numeric scrip codes and ISINs.
Exact identifiers win outright; otherwise candidates are ranked by
prefix, substring and fuzzy name similarity.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh the local securities index from the exchange",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := resolverService.Refresh(cmd.Context()); err != nil {
			return fmt.Errorf("refreshing securities: %w", err)
		}
		count, err := store.SecurityStore().Count(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Printf("Securities index refreshed: %d securities.\n", count)
		return nil
	},
}

func init() {
	resolveCmd.Flags().IntVarP(&resolveLimit, "limit", "n", 5, "maximum number of candidates")
	resolveCmd.Flags().IntVar(&resolveCutoff, "cutoff", 60, "minimum fuzzy match score (0-100)")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(refreshCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	matches, err := resolverService.Resolve(cmd.Context(), args[0], driving.ResolveOptions{
		TopN:   resolveLimit,
		Cutoff: resolveCutoff,
	})
	if err != nil {
		return fmt.Errorf("resolving %q: %w", args[0], err)
	}

	if resolveJSON {
		return printJSON(cmd, matches)
	}

	if len(matches) == 0 {
		cmd.Println("No matches found.")
		return nil
	}

	for i, m := range matches {
		cmd.Printf("  [%d] %s (%s)\n", i+1, m.Name, m.Code)
		cmd.Printf("      Symbol: %s  Group: %s  Score: %.0f\n", m.Symbol, m.Group, m.Score)
		if m.ISIN != "" {
			cmd.Printf("      ISIN: %s\n", m.ISIN)
		}
	}
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// matchLabel is shared by commands that echo a resolved company.
func matchLabel(m *domain.SecurityMatch) string {
	if m.Symbol != "" && m.Symbol != m.Name {
		return fmt.Sprintf("%s (%s, %s)", m.Name, m.Symbol, m.Code)
	}
	return fmt.Sprintf("%s (%s)", m.Name, m.Code)
}

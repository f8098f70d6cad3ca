package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info [company]",
	Short: "Show company identity and current quote",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	match, err := resolverService.ResolveOne(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("resolving %q: %w", args[0], err)
	}

	quote, quoteErr := provider.Quote(cmd.Context(), match.Code)

	if infoJSON {
		out := struct {
			Company any `json:"company"`
			Quote   any `json:"quote,omitempty"`
		}{Company: match}
		if quoteErr == nil {
			out.Quote = quote
		}
		return printJSON(cmd, out)
	}

	cmd.Printf("%s\n", matchLabel(match))
	cmd.Printf("  Group: %s\n", match.Group)
	if match.ISIN != "" {
		cmd.Printf("  ISIN:  %s\n", match.ISIN)
	}

	if quoteErr != nil {
		cmd.Println("  Quote unavailable.")
		return nil
	}
	cmd.Printf("  Price: %.2f (%+.2f, %+.2f%%)\n", quote.Price, quote.Change, quote.ChangePct)
	if quote.High52Week > 0 {
		cmd.Printf("  52wk:  %.2f / %.2f\n", quote.Low52Week, quote.High52Week)
	}
	return nil
}

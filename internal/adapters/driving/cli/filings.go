package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/scripdex/scripdex/internal/core/domain"
)

var (
	filingsKeyword  string
	filingsCategory string
	filingsFrom     string
	filingsTo       string
	filingsPage     int
	filingsJSON     bool
)

var filingsCmd = &cobra.Command{
	Use:   "filings [company]",
	Short: "List corporate filing announcements",
	Long: `Lists exchange filing announcements for a company, newest first.
Keywords like transcript, presentation, results, "annual report" and
"press release" apply curated headline filtering.

Examples:
  scripdex filings INFY --keyword transcript
  scripdex filings "HDFC Bank" --category result --from 2026-01-01`,
	Args: cobra.ExactArgs(1),
	RunE: runFilings,
}

func init() {
	filingsCmd.Flags().StringVarP(&filingsKeyword, "keyword", "k", "", "headline keyword filter")
	filingsCmd.Flags().StringVarP(&filingsCategory, "category", "c", "", "announcement category")
	filingsCmd.Flags().StringVar(&filingsFrom, "from", "", "start date YYYY-MM-DD (default 90 days back)")
	filingsCmd.Flags().StringVar(&filingsTo, "to", "", "end date YYYY-MM-DD (default today)")
	filingsCmd.Flags().IntVar(&filingsPage, "page", 1, "result page")
	filingsCmd.Flags().BoolVar(&filingsJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(filingsCmd)
}

func runFilings(cmd *cobra.Command, args []string) error {
	match, err := resolverService.ResolveOne(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("resolving %q: %w", args[0], err)
	}

	from, to := filingsFrom, filingsTo
	if to == "" {
		to = time.Now().Format("2006-01-02")
	}
	if from == "" {
		from = time.Now().AddDate(0, 0, -90).Format("2006-01-02")
	}

	announcements, err := provider.Announcements(cmd.Context(), domain.AnnouncementFilter{
		CompanyCode: match.Code,
		Category:    domain.CategoryByName(filingsCategory),
		Keyword:     filingsKeyword,
		FromDate:    from,
		ToDate:      to,
		Page:        filingsPage,
	})
	if err != nil {
		return fmt.Errorf("fetching announcements: %w", err)
	}

	if filingsJSON {
		return printJSON(cmd, announcements)
	}

	cmd.Printf("Filings for %s (%s to %s):\n\n", matchLabel(match), from, to)
	if len(announcements) == 0 {
		cmd.Println("No announcements found.")
		return nil
	}

	for i, ann := range announcements {
		cmd.Printf("  [%d] %s\n", i+1, ann.Headline)
		cmd.Printf("      %s | %s", ann.Date, ann.Category)
		if ann.Subcategory != "" {
			cmd.Printf(" / %s", ann.Subcategory)
		}
		cmd.Println()
		if ann.AttachmentURL != "" {
			cmd.Printf("      %s\n", ann.AttachmentURL)
		}
		cmd.Println()
	}
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scripdex/scripdex/internal/core/domain"
)

var (
	actionsType string
	actionsJSON bool
)

var actionsCmd = &cobra.Command{
	Use:   "actions [company]",
	Short: "List corporate actions for the past year",
	Long: `Lists dividends, bonuses, splits, rights issues and buybacks.
Use --type to narrow to one action type.`,
	Args: cobra.ExactArgs(1),
	RunE: runActions,
}

var calendarCmd = &cobra.Command{
	Use:   "calendar [company]",
	Short: "Show upcoming and recent result dates",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCalendar,
}

func init() {
	actionsCmd.Flags().StringVarP(&actionsType, "type", "t", "", "dividend, bonus, split, rights, buyback or delisting")
	actionsCmd.Flags().BoolVar(&actionsJSON, "json", false, "output results as JSON")
	calendarCmd.Flags().BoolVar(&actionsJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(actionsCmd)
	rootCmd.AddCommand(calendarCmd)
}

func runActions(cmd *cobra.Command, args []string) error {
	match, err := resolverService.ResolveOne(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("resolving %q: %w", args[0], err)
	}

	actions, err := provider.CorporateActions(cmd.Context(), match.Code, domain.PurposeByName(actionsType))
	if err != nil {
		return fmt.Errorf("fetching corporate actions: %w", err)
	}

	if actionsJSON {
		return printJSON(cmd, actions)
	}

	cmd.Printf("Corporate actions for %s:\n\n", matchLabel(match))
	if len(actions) == 0 {
		cmd.Println("No corporate actions found.")
		return nil
	}

	for _, action := range actions {
		cmd.Printf("  %-40s ex-date %s\n", action.Purpose, action.ExDate)
		if action.Details != "" {
			cmd.Printf("      %s\n", action.Details)
		}
	}
	return nil
}

func runCalendar(cmd *cobra.Command, args []string) error {
	var code string
	var label string
	if len(args) > 0 {
		match, err := resolverService.ResolveOne(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("resolving %q: %w", args[0], err)
		}
		code = match.Code
		label = " for " + matchLabel(match)
	}

	events, err := provider.ResultCalendar(cmd.Context(), code)
	if err != nil {
		return fmt.Errorf("fetching result calendar: %w", err)
	}

	if actionsJSON {
		return printJSON(cmd, events)
	}

	cmd.Printf("Result calendar%s:\n\n", label)
	if len(events) == 0 {
		cmd.Println("No scheduled results found.")
		return nil
	}

	for _, event := range events {
		cmd.Printf("  %s  %s (%s)\n", event.Date, event.CompanyName, event.CompanyCode)
	}
	return nil
}

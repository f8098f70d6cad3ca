package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scripdex/scripdex/internal/core/domain"
)

func TestActionsCmd_Use(t *testing.T) {
	assert.Equal(t, "actions [company]", actionsCmd.Use)
	assert.Equal(t, "calendar [company]", calendarCmd.Use)
}

func TestActionsCmd_TypeFlag(t *testing.T) {
	flag := actionsCmd.Flags().Lookup("type")
	require.NotNil(t, flag)
	assert.Equal(t, "t", flag.Shorthand)
}

func TestActionsCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	provider = &mockProvider{actions: []domain.CorporateAction{
		{
			Purpose: "Dividend - Rs. 10.0000",
			ExDate:  "2026-08-14",
			Details: "payment 2026-09-01",
		},
	}}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"actions", "RELIANCE", "--type", "dividend"})
	defer func() {
		rootCmd.SetArgs(nil)
		actionsType = ""
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Dividend - Rs. 10.0000")
	assert.Contains(t, buf.String(), "ex-date 2026-08-14")
}

func TestCalendarCmd_MarketWide(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	provider = &mockProvider{events: []domain.ResultEvent{
		{CompanyCode: "500325", CompanyName: "Reliance Industries Ltd", Date: "2026-09-12"},
	}}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"calendar"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "2026-09-12")
	assert.Contains(t, buf.String(), "Reliance Industries Ltd")
}

func TestCalendarCmd_NoEvents(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	provider = &mockProvider{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"calendar", "RELIANCE"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No scheduled results found.")
}

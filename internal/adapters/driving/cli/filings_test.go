package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scripdex/scripdex/internal/core/domain"
)

func TestFilingsCmd_Use(t *testing.T) {
	assert.Equal(t, "filings [company]", filingsCmd.Use)
}

func TestFilingsCmd_Flags(t *testing.T) {
	keyword := filingsCmd.Flags().Lookup("keyword")
	require.NotNil(t, keyword)
	assert.Equal(t, "k", keyword.Shorthand)

	category := filingsCmd.Flags().Lookup("category")
	require.NotNil(t, category)
	assert.Equal(t, "c", category.Shorthand)

	page := filingsCmd.Flags().Lookup("page")
	require.NotNil(t, page)
	assert.Equal(t, "1", page.DefValue)
}

func TestFilingsCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	provider = &mockProvider{announcements: []domain.Announcement{
		{
			Headline:      "Earnings Call Transcript - Q1 FY27",
			Category:      "Result",
			Subcategory:   "Earnings Call Transcript",
			Date:          "2026-06-15T18:30:00",
			AttachmentURL: "https://www.bseindia.com/xml-data/corpfiling/AttachLive/abc.pdf",
		},
	}}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"filings", "RELIANCE", "--keyword", "transcript"})
	defer func() {
		rootCmd.SetArgs(nil)
		filingsKeyword = ""
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Earnings Call Transcript - Q1 FY27")
	assert.Contains(t, buf.String(), "AttachLive/abc.pdf")
}

func TestFilingsCmd_NoAnnouncements(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	provider = &mockProvider{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"filings", "RELIANCE"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No announcements found.")
}

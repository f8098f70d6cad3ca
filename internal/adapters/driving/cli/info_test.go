package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scripdex/scripdex/internal/core/domain"
)

func TestInfoCmd_Use(t *testing.T) {
	assert.Equal(t, "info [company]", infoCmd.Use)
}

func TestInfoCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	provider = &mockProvider{quote: &domain.Quote{
		CompanyName: "Reliance Industries Ltd",
		Price:       2950.35,
		Change:      -12.40,
		ChangePct:   -0.42,
		High52Week:  3217.60,
		Low52Week:   2601.85,
	}}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"info", "RELIANCE"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Reliance Industries Ltd (RELIANCE, 500325)")
	assert.Contains(t, buf.String(), "2950.35")
	assert.Contains(t, buf.String(), "INE002A01018")
}

func TestInfoCmd_QuoteUnavailable(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	provider = &mockProvider{err: errors.New("quote endpoint down")}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"info", "RELIANCE"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Quote unavailable.")
}

func TestInfoCmd_UnknownCompany(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	resolverService = &mockResolver{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"info", "xyzxyz"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}

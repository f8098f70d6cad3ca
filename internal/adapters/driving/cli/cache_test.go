package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scripdex/scripdex/internal/core/domain"
)

func TestCacheCmd_Use(t *testing.T) {
	assert.Equal(t, "cache", cacheCmd.Use)
	assert.Equal(t, "stats", cacheStatsCmd.Use)
	assert.Equal(t, "clear [company]", cacheClearCmd.Use)
}

func TestCacheStatsCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	cacheService = &mockCache{stats: &domain.CacheStats{
		TotalDocuments:   12,
		TotalChunks:      96,
		SecuritiesCached: 4300,
		CacheLocation:    "/tmp/scripdex/cache.db",
		ByCompany: []domain.CompanyCount{
			{CompanyName: "Reliance Industries Ltd", Count: 8},
		},
	}}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"cache", "stats"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Documents:      12")
	assert.Contains(t, buf.String(), "Chunks:         96")
	assert.Contains(t, buf.String(), "Reliance Industries Ltd")
}

func TestCacheClearCmd_RequiresCompanyOrAll(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"cache", "clear"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "specify a company or use --all")
}

func TestCacheClearCmd_All(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	cacheService = &mockCache{cleared: 9}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"cache", "clear", "--all"})
	defer func() {
		rootCmd.SetArgs(nil)
		cacheClearAll = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Evicted 9 documents.")
}

func TestCacheClearCmd_Company(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	cacheService = &mockCache{cleared: 3}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"cache", "clear", "RELIANCE"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Evicted 3 documents for Reliance Industries Ltd")
}

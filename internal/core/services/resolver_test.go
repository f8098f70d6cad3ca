package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scripdex/scripdex/internal/core/domain"
	"github.com/scripdex/scripdex/internal/core/ports/driving"
)

func testSecurities() []domain.Security {
	return []domain.Security{
		{
			Code: "500325", Symbol: "RELIANCE", Name: "Reliance Industries Ltd",
			IssuerName: "RELIANCE INDUSTRIES LTD.", Group: "A", ISIN: "INE002A01018",
		},
		{
			Code: "530517", Symbol: "RELAXO", Name: "Relaxo Footwears Ltd",
			IssuerName: "RELAXO FOOTWEARS LIMITED", Group: "B", ISIN: "INE131B01039",
		},
		{
			Code: "500180", Symbol: "HDFCBANK", Name: "HDFC Bank Ltd",
			IssuerName: "HDFC BANK LTD.", Group: "A", ISIN: "INE040A01034",
		},
		{
			Code: "532540", Symbol: "TCS", Name: "Tata Consultancy Services Ltd",
			IssuerName: "TATA CONSULTANCY SERVICES LTD.", Group: "A", ISIN: "INE467B01029",
		},
	}
}

// freshResolver returns a resolver over a fresh in-memory store with no
// provider, so every tier is served from the index.
func freshResolver(t *testing.T) *ResolverService {
	t.Helper()
	store := &mockSecurityStore{
		securities: testSecurities(),
		age:        time.Hour,
		hasData:    true,
	}
	return NewResolverService(store, nil)
}

func TestResolve_NumericExactCode(t *testing.T) {
	resolver := freshResolver(t)

	matches, err := resolver.Resolve(context.Background(), "500325", driving.ResolveOptions{})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "500325", matches[0].Code)
	assert.Equal(t, "Reliance Industries Ltd", matches[0].Name)
	assert.Equal(t, float64(100), matches[0].Score)
}

func TestResolve_NumericMissDoesNotFallThrough(t *testing.T) {
	resolver := freshResolver(t)

	// "530" is a prefix of a stored code, but numeric queries are exact
	// or nothing.
	matches, err := resolver.Resolve(context.Background(), "530", driving.ResolveOptions{})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestResolve_ISINExact(t *testing.T) {
	resolver := freshResolver(t)

	matches, err := resolver.Resolve(context.Background(), "ine002a01018", driving.ResolveOptions{})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "500325", matches[0].Code)
	assert.Equal(t, float64(100), matches[0].Score)
}

func TestResolve_ISINMissDoesNotFallThrough(t *testing.T) {
	resolver := freshResolver(t)

	// ISIN-shaped but unknown: must not leak into name matching.
	matches, err := resolver.Resolve(context.Background(), "INE999Z99999", driving.ResolveOptions{})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestResolve_ExactSymbolCaseInsensitive(t *testing.T) {
	resolver := freshResolver(t)

	matches, err := resolver.Resolve(context.Background(), "reliance", driving.ResolveOptions{})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "500325", matches[0].Code)
	assert.Equal(t, float64(100), matches[0].Score)
}

func TestResolve_SymbolPrefix(t *testing.T) {
	resolver := freshResolver(t)

	matches, err := resolver.Resolve(context.Background(), "rel", driving.ResolveOptions{})
	require.NoError(t, err)
	require.Len(t, matches, 2)

	// Group A outranks group B regardless of symbol length.
	assert.Equal(t, "RELIANCE", matches[0].Symbol)
	assert.Equal(t, "RELAXO", matches[1].Symbol)
	for _, m := range matches {
		assert.Equal(t, float64(95), m.Score)
	}
}

func TestResolve_NameSubstring(t *testing.T) {
	resolver := freshResolver(t)

	matches, err := resolver.Resolve(context.Background(), "consultancy", driving.ResolveOptions{})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "TCS", matches[0].Symbol)
	assert.Equal(t, float64(90), matches[0].Score)
}

func TestResolve_FuzzyTypo(t *testing.T) {
	resolver := freshResolver(t)

	matches, err := resolver.Resolve(context.Background(), "reliance industreis", driving.ResolveOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	assert.Equal(t, "500325", matches[0].Code)
	assert.GreaterOrEqual(t, matches[0].Score, float64(60))
	assert.LessOrEqual(t, matches[0].Score, float64(100))
}

func TestResolve_NoMatch(t *testing.T) {
	resolver := freshResolver(t)

	matches, err := resolver.Resolve(context.Background(), "xyzxyz", driving.ResolveOptions{})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestResolve_EmptyQuery(t *testing.T) {
	resolver := freshResolver(t)

	matches, err := resolver.Resolve(context.Background(), "   ", driving.ResolveOptions{})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestResolve_TopNLimit(t *testing.T) {
	resolver := freshResolver(t)

	matches, err := resolver.Resolve(context.Background(), "rel", driving.ResolveOptions{TopN: 1})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "RELIANCE", matches[0].Symbol)
}

func TestResolve_StaleCacheNoProvider(t *testing.T) {
	store := &mockSecurityStore{
		securities: testSecurities(),
		age:        48 * time.Hour, // past TTL
		hasData:    true,
	}
	resolver := NewResolverService(store, nil)

	// Stale data still resolves when there is nothing to refresh from.
	matches, err := resolver.Resolve(context.Background(), "TCS", driving.ResolveOptions{})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "532540", matches[0].Code)
}

func TestResolve_EmptyStoreNoProvider(t *testing.T) {
	resolver := NewResolverService(&mockSecurityStore{}, nil)

	_, err := resolver.Resolve(context.Background(), "RELIANCE", driving.ResolveOptions{})
	assert.ErrorIs(t, err, domain.ErrNoSecurities)
}

func TestResolve_RefreshOnStaleWithProvider(t *testing.T) {
	store := &mockSecurityStore{hasData: false}
	provider := &mockProvider{
		securities: map[string][]domain.Security{
			"A": {testSecurities()[0], testSecurities()[2]},
			// Same code in a second group must not duplicate.
			"B": {testSecurities()[0], testSecurities()[1]},
		},
	}
	resolver := NewResolverService(store, provider)

	matches, err := resolver.Resolve(context.Background(), "RELIANCE", driving.ResolveOptions{})
	require.NoError(t, err)
	require.Len(t, matches, 1)

	assert.Equal(t, 1, store.replaceCalls)
	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestResolveOne_BestMatch(t *testing.T) {
	resolver := freshResolver(t)

	match, err := resolver.ResolveOne(context.Background(), "rel")
	require.NoError(t, err)
	assert.Equal(t, "RELIANCE", match.Symbol)
}

func TestResolveOne_NumericProviderFallback(t *testing.T) {
	store := &mockSecurityStore{
		securities: testSecurities(),
		age:        time.Hour,
		hasData:    true,
	}
	provider := &mockProvider{
		scripNames: map[string]string{"543396": "One97 Communications Ltd"},
	}
	resolver := NewResolverService(store, provider)

	match, err := resolver.ResolveOne(context.Background(), "543396")
	require.NoError(t, err)
	assert.Equal(t, "543396", match.Code)
	assert.Equal(t, "One97 Communications Ltd", match.Name)
	assert.Equal(t, float64(100), match.Score)
}

func TestResolveOne_NotFound(t *testing.T) {
	resolver := freshResolver(t)

	_, err := resolver.ResolveOne(context.Background(), "xyzxyz")
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}

func TestResolveOne_EmptyQuery(t *testing.T) {
	resolver := freshResolver(t)

	_, err := resolver.ResolveOne(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRefresh_NoProvider(t *testing.T) {
	resolver := freshResolver(t)

	err := resolver.Refresh(context.Background())
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestRefresh_EmptyFetchFallsBackToStale(t *testing.T) {
	store := &mockSecurityStore{
		securities: testSecurities(),
		age:        48 * time.Hour,
		hasData:    true,
	}
	provider := &mockProvider{securities: map[string][]domain.Security{}}
	resolver := NewResolverService(store, provider)

	// All groups return nothing; the stale set keeps serving.
	matches, err := resolver.Resolve(context.Background(), "HDFCBANK", driving.ResolveOptions{})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "500180", matches[0].Code)
}

package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/scripdex/scripdex/internal/core/domain"
	"github.com/scripdex/scripdex/internal/core/ports/driven"
	"github.com/scripdex/scripdex/internal/core/ports/driving"
	"github.com/scripdex/scripdex/internal/logger"
)

// Ensure ResolverService implements the interface.
var _ driving.ResolverService = (*ResolverService)(nil)

// Resolution tier scores.
const (
	scoreExact     = 100
	scorePrefix    = 95
	scoreSubstring = 90
)

// DefaultTopN is the default number of resolution candidates.
const DefaultTopN = 5

// DefaultCutoff is the default minimum fuzzy score.
const DefaultCutoff = 60

// securityIndex is the read-optimised in-memory copy of the securities
// set. It is immutable once built; refreshes build a new index and swap
// the pointer, so concurrent readers never see a partial rebuild.
type securityIndex struct {
	securities []domain.Security
	byCode     map[string]int
	byISIN     map[string]int
	bySymbol   map[string]int
	corpus     []string // "SYMBOL | NAME | ISSUER_NAME" per security
}

func buildIndex(securities []domain.Security) *securityIndex {
	idx := &securityIndex{
		securities: securities,
		byCode:     make(map[string]int, len(securities)),
		byISIN:     make(map[string]int, len(securities)),
		bySymbol:   make(map[string]int, len(securities)),
		corpus:     make([]string, len(securities)),
	}

	for i, sec := range securities {
		if sec.Code != "" {
			idx.byCode[sec.Code] = i
		}
		if sec.ISIN != "" {
			idx.byISIN[strings.ToUpper(sec.ISIN)] = i
		}
		if sec.Symbol != "" {
			idx.bySymbol[strings.ToUpper(sec.Symbol)] = i
		}

		var parts []string
		for _, p := range []string{sec.Symbol, sec.Name, sec.IssuerName} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		idx.corpus[i] = strings.Join(parts, " | ")
	}

	return idx
}

// ResolverService resolves free-form company identifiers to canonical
// security records via the tiered matching contract.
type ResolverService struct {
	store    driven.SecurityStore
	provider driven.MarketDataProvider // optional; nil disables refresh

	mu  sync.RWMutex
	idx *securityIndex
}

// NewResolverService creates a resolver over the given store.
// The provider is optional: without it the resolver serves whatever the
// store holds, stale or not.
func NewResolverService(store driven.SecurityStore, provider driven.MarketDataProvider) *ResolverService {
	return &ResolverService{store: store, provider: provider}
}

// Resolve returns ranked candidates for a free-form identifier.
// An empty result means "no match", never an error.
func (s *ResolverService) Resolve(
	ctx context.Context, query string, opts driving.ResolveOptions,
) ([]domain.SecurityMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SecurityMatch{}, nil
	}

	idx, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	cutoff := opts.Cutoff
	if cutoff <= 0 {
		cutoff = DefaultCutoff
	}

	logger.Section("Company Resolution")
	logger.Debug("Query: %q, top_n=%d, cutoff=%d", query, topN, cutoff)

	// Tier 1: exact scrip code. Numeric queries never fall through.
	if isDigits(query) {
		if i, ok := idx.byCode[query]; ok {
			return []domain.SecurityMatch{match(idx.securities[i], scoreExact)}, nil
		}
		logger.Debug("Numeric query missed the code index")
		return []domain.SecurityMatch{}, nil
	}

	// Tier 2: exact ISIN. ISIN-shaped queries never fall through.
	if domain.IsISIN(query) {
		if i, ok := idx.byISIN[strings.ToUpper(query)]; ok {
			return []domain.SecurityMatch{match(idx.securities[i], scoreExact)}, nil
		}
		logger.Debug("ISIN query missed the ISIN index")
		return []domain.SecurityMatch{}, nil
	}

	upper := strings.ToUpper(query)

	// Tier 3: exact symbol.
	if i, ok := idx.bySymbol[upper]; ok {
		return []domain.SecurityMatch{match(idx.securities[i], scoreExact)}, nil
	}

	// Tier 4: symbol prefix.
	if matches := prefixMatches(idx, upper); len(matches) > 0 {
		logger.Debug("Prefix tier: %d matches", len(matches))
		return truncate(matches, topN), nil
	}

	// Tier 5: name / issuer substring.
	if matches := substringMatches(idx, strings.ToLower(query)); len(matches) > 0 {
		logger.Debug("Substring tier: %d matches", len(matches))
		return truncate(matches, topN), nil
	}

	// Tier 6: weighted-ratio fuzzy over the search corpus.
	matches := fuzzyMatches(idx, query, cutoff)
	logger.Debug("Fuzzy tier: %d matches at or above cutoff", len(matches))
	return truncate(matches, topN), nil
}

// ResolveOne returns the best candidate for a query. For numeric
// queries that miss the index it falls back to a direct code→name
// lookup via the provider.
func (s *ResolverService) ResolveOne(ctx context.Context, query string) (*domain.SecurityMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidInput
	}

	matches, err := s.Resolve(ctx, query, driving.ResolveOptions{TopN: 1})
	if err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		return &matches[0], nil
	}

	if isDigits(query) && s.provider != nil {
		name, err := s.provider.ScripName(ctx, query)
		if err != nil {
			logger.Warn("Provider code lookup for %s failed: %v", query, err)
		} else if name != "" {
			return &domain.SecurityMatch{
				Code:   query,
				Name:   name,
				Symbol: name,
				Score:  scoreExact,
			}, nil
		}
	}

	return nil, domain.ErrCompanyNotFound
}

// Refresh forces a full reload of the securities universe from the
// provider.
func (s *ResolverService) Refresh(ctx context.Context) error {
	if s.provider == nil {
		return domain.ErrProviderUnavailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

// ensureLoaded returns the current index, building or refreshing it on
// first use. The returned index is an immutable snapshot.
func (s *ResolverService) ensureLoaded(ctx context.Context) (*securityIndex, error) {
	s.mu.RLock()
	idx := s.idx
	s.mu.RUnlock()
	if idx != nil {
		return idx, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.idx != nil {
		return s.idx, nil
	}

	age, ok, err := s.store.Age(ctx)
	if err != nil {
		return nil, fmt.Errorf("securities age: %w", err)
	}

	if ok && age < domain.SecuritiesTTL {
		if err := s.loadFromStoreLocked(ctx); err != nil {
			return nil, err
		}
		logger.Info("Loaded %d securities from cache (age: %.1fh)",
			len(s.idx.securities), age.Hours())
		return s.idx, nil
	}

	if s.provider == nil {
		// Stale or empty, and nothing to refresh from. Serve stale
		// data if any exists; fail only when there is nothing at all.
		if err := s.loadFromStoreLocked(ctx); err != nil {
			return nil, err
		}
		if len(s.idx.securities) == 0 {
			s.idx = nil
			return nil, domain.ErrNoSecurities
		}
		logger.Info("Loaded %d securities from stale cache (no provider)", len(s.idx.securities))
		return s.idx, nil
	}

	if err := s.refreshLocked(ctx); err != nil {
		return nil, err
	}
	return s.idx, nil
}

// refreshLocked fetches the full universe group by group, replaces the
// stored set atomically and rebuilds the index from the re-normalised
// stored records. Caller holds mu.
func (s *ResolverService) refreshLocked(ctx context.Context) error {
	var fetched []domain.Security
	seen := make(map[string]struct{})

	for _, group := range domain.SecurityGroups {
		secs, err := s.provider.ListSecurities(ctx, group)
		if err != nil {
			// A failed group is logged and skipped; partial universes
			// are acceptable.
			logger.Warn("Failed to load group %s: %v", group, err)
			continue
		}
		for _, sec := range secs {
			if sec.Code == "" {
				continue
			}
			if _, dup := seen[sec.Code]; dup {
				continue
			}
			seen[sec.Code] = struct{}{}
			fetched = append(fetched, sec)
		}
	}

	if len(fetched) == 0 {
		// Zero securities across all groups: fall back to whatever
		// stale data exists rather than leaving the index empty.
		if err := s.loadFromStoreLocked(ctx); err != nil {
			return err
		}
		if len(s.idx.securities) == 0 {
			s.idx = nil
			return domain.ErrNoSecurities
		}
		logger.Warn("Refresh fetched nothing; serving %d stale securities", len(s.idx.securities))
		return nil
	}

	count, err := s.store.ReplaceAll(ctx, fetched)
	if err != nil {
		return fmt.Errorf("replacing securities: %w", err)
	}
	logger.Info("Cached %d securities from provider", count)

	return s.loadFromStoreLocked(ctx)
}

// loadFromStoreLocked builds a fresh index from the store and swaps it
// in. Caller holds mu.
func (s *ResolverService) loadFromStoreLocked(ctx context.Context) error {
	securities, err := s.store.All(ctx)
	if err != nil {
		return fmt.Errorf("loading securities: %w", err)
	}
	s.idx = buildIndex(securities)
	return nil
}

func prefixMatches(idx *securityIndex, upperQuery string) []domain.SecurityMatch {
	var matches []domain.SecurityMatch
	for sym, i := range idx.bySymbol {
		if strings.HasPrefix(sym, upperQuery) {
			matches = append(matches, match(idx.securities[i], scorePrefix))
		}
	}

	// Largest-cap segment first, then shorter symbols, then name.
	sort.Slice(matches, func(a, b int) bool {
		ma, mb := matches[a], matches[b]
		if pa, pb := domain.GroupPriority(ma.Group), domain.GroupPriority(mb.Group); pa != pb {
			return pa < pb
		}
		if len(ma.Symbol) != len(mb.Symbol) {
			return len(ma.Symbol) < len(mb.Symbol)
		}
		return ma.Name < mb.Name
	})
	return matches
}

func substringMatches(idx *securityIndex, lowerQuery string) []domain.SecurityMatch {
	var matches []domain.SecurityMatch
	for i := range idx.securities {
		sec := &idx.securities[i]
		if strings.Contains(strings.ToLower(sec.Name), lowerQuery) ||
			strings.Contains(strings.ToLower(sec.IssuerName), lowerQuery) {
			matches = append(matches, match(*sec, scoreSubstring))
		}
	}

	// Shortest name first (closest to exact), then segment priority.
	sort.Slice(matches, func(a, b int) bool {
		ma, mb := matches[a], matches[b]
		if len(ma.Name) != len(mb.Name) {
			return len(ma.Name) < len(mb.Name)
		}
		return domain.GroupPriority(ma.Group) < domain.GroupPriority(mb.Group)
	})
	return matches
}

func fuzzyMatches(idx *securityIndex, query string, cutoff int) []domain.SecurityMatch {
	type scored struct {
		i     int
		score int
	}
	var hits []scored
	for i, candidate := range idx.corpus {
		if candidate == "" {
			continue
		}
		if score := fuzzy.WRatio(query, candidate); score >= cutoff {
			hits = append(hits, scored{i, score})
		}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].score > hits[b].score
	})

	matches := make([]domain.SecurityMatch, len(hits))
	for n, h := range hits {
		matches[n] = match(idx.securities[h.i], float64(h.score))
	}
	return matches
}

func truncate(matches []domain.SecurityMatch, topN int) []domain.SecurityMatch {
	if len(matches) > topN {
		return matches[:topN]
	}
	return matches
}

func match(sec domain.Security, score float64) domain.SecurityMatch {
	return domain.SecurityMatch{
		Code:       sec.Code,
		Symbol:     sec.Symbol,
		Name:       sec.Name,
		IssuerName: sec.IssuerName,
		Group:      sec.Group,
		ISIN:       sec.ISIN,
		Score:      score,
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

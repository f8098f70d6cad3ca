package bse

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/scripdex/scripdex/internal/core/domain"
)

// scripRecord is one row of the ListofScripData response. The API is
// inconsistent about casing and numeric types across segments, so
// everything tolerant lives here.
type scripRecord struct {
	ScripCode  json.Number `json:"SCRIP_CD"`
	ScripID    string      `json:"scrip_id"`
	ScripName  string      `json:"Scrip_Name"`
	IssuerName string      `json:"ISSUER_NAME"`
	Group      string      `json:"GROUP"`
	ISIN       string      `json:"ISIN_NUMBER"`
}

// ListSecurities returns the active equity securities in one market
// segment group.
func (c *Client) ListSecurities(ctx context.Context, group string) ([]domain.Security, error) {
	params := url.Values{}
	params.Set("Group", group)
	params.Set("Scripcode", "")
	params.Set("industry", "")
	params.Set("segment", "Equity")
	params.Set("status", "Active")

	var records []scripRecord
	if err := c.getJSON(ctx, "/ListofScripData/w", params, &records); err != nil {
		return nil, err
	}

	securities := make([]domain.Security, 0, len(records))
	for _, rec := range records {
		code := rec.ScripCode.String()
		if code == "" {
			continue
		}
		securities = append(securities, domain.Security{
			Code:       code,
			Symbol:     strings.TrimSpace(rec.ScripID),
			Name:       strings.TrimSpace(rec.ScripName),
			IssuerName: strings.TrimSpace(rec.IssuerName),
			Group:      strings.TrimSpace(rec.Group),
			ISIN:       strings.TrimSpace(rec.ISIN),
		})
	}
	return securities, nil
}

// ScripName looks up the listed name for a scrip code via the quote
// header endpoint.
func (c *Client) ScripName(ctx context.Context, code string) (string, error) {
	quote, err := c.Quote(ctx, code)
	if err != nil {
		return "", err
	}
	return quote.CompanyName, nil
}

package bse

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/scripdex/scripdex/internal/core/domain"
)

// quoteResponse wraps the scrip header endpoint. Prices arrive as
// strings with thousands separators, so everything decodes into
// strings and is parsed afterwards.
type quoteResponse struct {
	CurrRate struct {
		LTP       json.Number `json:"LTP"`
		Change    json.Number `json:"Chg"`
		ChangePct json.Number `json:"PcChg"`
	} `json:"CurrRate"`
	Header struct {
		High52Week string `json:"Fiftytwo_WeekHigh"`
		Low52Week  string `json:"Fiftytwo_WeekLow"`
		Updated    string `json:"Dt_Tm"`
	} `json:"Header"`
	CompanyName struct {
		FullName  string `json:"FullN"`
		ShortName string `json:"ShortN"`
	} `json:"Cmpname"`
}

// Quote returns the current price snapshot for a scrip code.
func (c *Client) Quote(ctx context.Context, code string) (*domain.Quote, error) {
	params := url.Values{}
	params.Set("Debtflag", "")
	params.Set("scripcode", code)
	params.Set("seriesid", "")

	var resp quoteResponse
	if err := c.getJSON(ctx, "/getScripHeaderData/w", params, &resp); err != nil {
		return nil, err
	}

	name := pickName(resp.CompanyName.FullName, resp.CompanyName.ShortName)
	if name == "" {
		return nil, domain.ErrCompanyNotFound
	}

	return &domain.Quote{
		CompanyCode: code,
		CompanyName: name,
		Price:       numberValue(resp.CurrRate.LTP),
		Change:      numberValue(resp.CurrRate.Change),
		ChangePct:   numberValue(resp.CurrRate.ChangePct),
		High52Week:  parsePrice(resp.Header.High52Week),
		Low52Week:   parsePrice(resp.Header.Low52Week),
		Updated:     strings.TrimSpace(resp.Header.Updated),
	}, nil
}

func numberValue(n json.Number) float64 {
	v, _ := n.Float64()
	return v
}

// parsePrice handles values like "1,234.50" that the header endpoint
// returns with separators.
func parsePrice(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	var n json.Number = json.Number(s)
	return numberValue(n)
}

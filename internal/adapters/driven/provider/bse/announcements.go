package bse

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/scripdex/scripdex/internal/core/domain"
)

// keywordFilter maps a loose keyword to headline include/exclude terms
// and the exchange subcategories that always qualify.
type keywordFilter struct {
	include       []string
	exclude       []string
	subcategories []string
}

// keywordFilters refine announcement queries for the common filing
// keywords; unknown keywords fall back to a plain substring match.
var keywordFilters = map[string]keywordFilter{
	"transcript": {
		include: []string{"transcript", "concall", "con-call", "conference call",
			"earnings call transcript", "audio recording"},
		exclude:       []string{"intimation", "notice of", "schedule"},
		subcategories: []string{"earnings call transcript"},
	},
	"presentation": {
		include: []string{"presentation", "investor presentation", "analyst presentation",
			"capital market day", "investor meet", "analyst meet"},
		exclude:       []string{"intimation", "notice of", "schedule"},
		subcategories: []string{"analyst / investor meet", "investor presentation"},
	},
	"results": {
		include: []string{"financial result", "quarterly result", "audited", "unaudited",
			"half year", "nine month"},
		subcategories: []string{"financial results"},
	},
	"annual report": {
		include: []string{"annual report", "integrated report", "annual return"},
	},
	"press release": {
		include:       []string{"press release", "media release", "press conference"},
		exclude:       []string{"cancellation"},
		subcategories: []string{"press release / media release"},
	},
	"credit rating": {
		include:       []string{"credit rating", "rating revision", "rating reaffirm"},
		subcategories: []string{"credit rating"},
	},
}

// announcementRow is one row of the AnnGetData response.
type announcementRow struct {
	Headline    string      `json:"NEWSSUB"`
	Company     string      `json:"SLONGNAME"`
	ScripCode   json.Number `json:"SCRIP_CD"`
	Category    string      `json:"CATEGORYNAME"`
	Subcategory string      `json:"SUBCATNAME"`
	Date        string      `json:"NEWS_DT"`
	Attachment  string      `json:"ATTACHMENTNAME"`
}

// announcementResponse wraps the AnnGetData payload.
type announcementResponse struct {
	Table []announcementRow `json:"Table"`
}

// Announcements returns corporate filings matching the filter, with
// headline keyword filtering applied client-side the way the exchange
// site itself does.
func (c *Client) Announcements(
	ctx context.Context, filter domain.AnnouncementFilter,
) ([]domain.Announcement, error) {
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	category := filter.Category
	if category == "" {
		category = domain.CategoryAll
	}

	params := url.Values{}
	params.Set("pageno", strconv.Itoa(page))
	params.Set("strCat", string(category))
	params.Set("strPrevDate", compactDate(filter.FromDate))
	params.Set("strToDate", compactDate(filter.ToDate))
	params.Set("strScrip", filter.CompanyCode)
	params.Set("strSearch", "P")
	params.Set("strType", "C")
	params.Set("subcategory", "-1")

	var resp announcementResponse
	if err := c.getJSON(ctx, "/AnnGetData/w", params, &resp); err != nil {
		return nil, err
	}

	var include, exclude, subcats []string
	if filter.Keyword != "" {
		kw := strings.ToLower(filter.Keyword)
		if kf, ok := keywordFilters[kw]; ok {
			include, exclude, subcats = kf.include, kf.exclude, kf.subcategories
		} else {
			include = []string{kw}
		}
	}
	subcatFilter := strings.ToLower(filter.Subcategory)

	announcements := make([]domain.Announcement, 0, len(resp.Table))
	for _, row := range resp.Table {
		headline := strings.ToLower(row.Headline)
		subcategory := strings.ToLower(row.Subcategory)

		if subcatFilter != "" && !strings.Contains(subcategory, subcatFilter) {
			continue
		}

		if len(include) > 0 {
			headlineHit := containsAny(headline, include)
			subcatHit := containsAny(subcategory, subcats)
			if !headlineHit && !subcatHit {
				continue
			}
			if !subcatHit && containsAny(headline, exclude) {
				continue
			}
		}

		announcements = append(announcements, domain.Announcement{
			CompanyCode:   row.ScripCode.String(),
			CompanyName:   row.Company,
			Headline:      row.Headline,
			Category:      row.Category,
			Subcategory:   row.Subcategory,
			Date:          row.Date,
			AttachmentURL: attachmentURL(row.Attachment, row.Date),
		})
	}
	return announcements, nil
}

// attachmentURL picks the live or historical attachment host. Filings
// move to the historical host about a week after publication.
func attachmentURL(attachment, annDate string) string {
	if attachment == "" {
		return ""
	}

	if len(annDate) >= 10 {
		if d, err := time.Parse("2006-01-02", annDate[:10]); err == nil {
			if time.Since(d) > 7*24*time.Hour {
				return attachHisURL + attachment
			}
		}
	}
	return attachLiveURL + attachment
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(s, term) {
			return true
		}
	}
	return false
}

// compactDate converts YYYY-MM-DD to the YYYYMMDD the API expects.
func compactDate(d string) string {
	return strings.ReplaceAll(d, "-", "")
}

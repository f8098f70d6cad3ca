package bse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/scripdex/scripdex/internal/core/domain"
)

// actionWindow is how far back corporate actions are queried. The API
// caps each request at roughly a quarter, so the window is split.
const (
	actionWindow    = 365 * 24 * time.Hour
	actionChunkDays = 90

	// calendarWindow brackets the result calendar query around today so
	// both recent and upcoming board meeting dates come back.
	calendarWindow = 30 * 24 * time.Hour
)

// actionRow is one row of the corporate actions response.
type actionRow struct {
	ScripCode   json.Number `json:"scrip_code"`
	ShortName   string      `json:"short_name"`
	LongName    string      `json:"long_name"`
	Purpose     string      `json:"Purpose"`
	ExDate      string      `json:"Ex_date"`
	RecordDate  string      `json:"RD_Date"`
	BCStart     string      `json:"BCRD_FROM"`
	BCEnd       string      `json:"BCRD_TO"`
	PaymentDate string      `json:"payment_date"`
}

// CorporateActions returns dividend, bonus, split and similar events
// for the past year, optionally narrowed by company and purpose. The
// query is issued in quarter-sized windows; a window that errors is
// skipped rather than failing the whole call.
func (c *Client) CorporateActions(
	ctx context.Context, companyCode string, purpose domain.Purpose,
) ([]domain.CorporateAction, error) {
	end := time.Now()
	start := end.Add(-actionWindow)

	var actions []domain.CorporateAction
	for chunkStart := start; chunkStart.Before(end); {
		chunkEnd := chunkStart.AddDate(0, 0, actionChunkDays)
		if chunkEnd.After(end) {
			chunkEnd = end
		}

		rows, err := c.actionsWindow(ctx, companyCode, purpose, chunkStart, chunkEnd)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			chunkStart = chunkEnd
			continue
		}

		for _, row := range rows {
			actions = append(actions, domain.CorporateAction{
				CompanyCode: row.ScripCode.String(),
				CompanyName: pickName(row.LongName, row.ShortName),
				Purpose:     strings.TrimSpace(row.Purpose),
				ExDate:      row.ExDate,
				RecordDate:  row.RecordDate,
				Details:     actionDetails(row),
			})
		}
		chunkStart = chunkEnd
	}
	return actions, nil
}

func (c *Client) actionsWindow(
	ctx context.Context, companyCode string, purpose domain.Purpose, start, end time.Time,
) ([]actionRow, error) {
	params := url.Values{}
	params.Set("Fdate", start.Format("20060102"))
	params.Set("TDate", end.Format("20060102"))
	params.Set("Purposecode", string(purpose))
	params.Set("scripcode", companyCode)
	params.Set("ddlcategorys", "E")
	params.Set("ddlindustrys", "")
	params.Set("segment", "0")

	var rows []actionRow
	if err := c.getJSON(ctx, "/DefaultData/w", params, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// actionDetails folds the book-closure and payment dates into one
// human-readable field instead of five mostly-empty columns.
func actionDetails(row actionRow) string {
	var parts []string
	if row.BCStart != "" && row.BCEnd != "" {
		parts = append(parts, fmt.Sprintf("book closure %s to %s", row.BCStart, row.BCEnd))
	}
	if row.PaymentDate != "" {
		parts = append(parts, "payment "+row.PaymentDate)
	}
	return strings.Join(parts, "; ")
}

// calendarRow is one row of the result calendar response.
type calendarRow struct {
	ScripCode   json.Number `json:"scrip_Code"`
	ShortName   string      `json:"short_name"`
	LongName    string      `json:"Long_Name"`
	MeetingDate string      `json:"meeting_date"`
}

// ResultCalendar returns scheduled earnings announcement dates in a
// window around today, optionally narrowed to one company.
func (c *Client) ResultCalendar(
	ctx context.Context, companyCode string,
) ([]domain.ResultEvent, error) {
	now := time.Now()

	params := url.Values{}
	params.Set("scripcode", companyCode)
	params.Set("Fdate", now.Add(-calendarWindow).Format("20060102"))
	params.Set("Tdate", now.Add(calendarWindow).Format("20060102"))

	var rows []calendarRow
	if err := c.getJSON(ctx, "/Corpforthresults/w", params, &rows); err != nil {
		return nil, err
	}

	events := make([]domain.ResultEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, domain.ResultEvent{
			CompanyCode: row.ScripCode.String(),
			CompanyName: pickName(row.LongName, row.ShortName),
			Date:        row.MeetingDate,
		})
	}
	return events, nil
}

func pickName(names ...string) string {
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			return n
		}
	}
	return ""
}

package domain

import "strings"

// Category is an exchange announcement category.
type Category string

// Announcement categories as the exchange names them.
const (
	CategoryAGMEGM           Category = "AGM/EGM"
	CategoryBoardMeeting     Category = "Board Meeting"
	CategoryCompanyUpdate    Category = "Company Update"
	CategoryCorpAction       Category = "Corp. Action"
	CategoryInsiderTrading   Category = "Insider Trading / SAST"
	CategoryNewListing       Category = "New Listing"
	CategoryResult           Category = "Result"
	CategoryIntegratedFiling Category = "Integrated Filing"
	CategoryOthers           Category = "Others"
	CategoryAll              Category = "-1" // no filter
)

// CategoryDescriptions maps each category to a human-readable summary.
var CategoryDescriptions = map[Category]string{
	CategoryAGMEGM:           "Annual/Extraordinary General Meetings - shareholder meetings, voting results",
	CategoryBoardMeeting:     "Board meeting outcomes, approvals, resolutions",
	CategoryCompanyUpdate:    "General company updates and disclosures",
	CategoryCorpAction:       "Corporate actions - dividends, splits, bonuses, rights",
	CategoryInsiderTrading:   "Insider trading disclosures and SAST regulations",
	CategoryNewListing:       "New listings and IPO related announcements",
	CategoryResult:           "Financial results, earnings, concall transcripts, investor presentations",
	CategoryIntegratedFiling: "Integrated regulatory filings",
	CategoryOthers:           "Other announcements",
}

// categoryAliases maps loose user terms to categories.
var categoryAliases = []struct {
	term string
	cat  Category
}{
	{"agm", CategoryAGMEGM},
	{"egm", CategoryAGMEGM},
	{"board", CategoryBoardMeeting},
	{"meeting", CategoryBoardMeeting},
	{"update", CategoryCompanyUpdate},
	{"action", CategoryCorpAction},
	{"dividend", CategoryCorpAction},
	{"insider", CategoryInsiderTrading},
	{"listing", CategoryNewListing},
	{"result", CategoryResult},
	{"earning", CategoryResult},
	{"integrated", CategoryIntegratedFiling},
}

// CategoryByName resolves a loose, case-insensitive category name.
// Returns CategoryAll when nothing matches.
func CategoryByName(name string) Category {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return CategoryAll
	}
	for _, a := range categoryAliases {
		if strings.Contains(lower, a.term) {
			return a.cat
		}
	}
	return CategoryAll
}

// Purpose is a corporate action purpose code.
type Purpose string

// Corporate action purpose codes as the exchange encodes them.
const (
	PurposeBonus              Purpose = "P5"
	PurposeBuyback            Purpose = "P6"
	PurposeDividend           Purpose = "P9"
	PurposePreferenceDividend Purpose = "P10"
	PurposeSplit              Purpose = "P26"
	PurposeDelisting          Purpose = "P29"
	PurposeRights             Purpose = "P18"
	PurposeAGM                Purpose = "P1"
	PurposeEGM                Purpose = "P2"
	PurposeAll                Purpose = ""
)

// PurposeDescriptions maps each purpose code to a summary.
var PurposeDescriptions = map[Purpose]string{
	PurposeBonus:              "Bonus shares issued to existing shareholders",
	PurposeBuyback:            "Company buying back its own shares",
	PurposeDividend:           "Cash dividend payments",
	PurposePreferenceDividend: "Dividend on preference shares",
	PurposeSplit:              "Stock split - share subdivision",
	PurposeDelisting:          "Delisting from exchange",
	PurposeRights:             "Rights issue - new shares to existing holders",
	PurposeAGM:                "Annual General Meeting",
	PurposeEGM:                "Extraordinary General Meeting",
}

// PurposeByName resolves a loose action type ("dividend", "split", ...)
// to its purpose code. Returns PurposeAll when nothing matches.
func PurposeByName(name string) Purpose {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bonus":
		return PurposeBonus
	case "buyback":
		return PurposeBuyback
	case "dividend":
		return PurposeDividend
	case "split":
		return PurposeSplit
	case "rights":
		return PurposeRights
	case "delisting":
		return PurposeDelisting
	default:
		return PurposeAll
	}
}

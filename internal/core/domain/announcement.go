package domain

// Announcement is one corporate filing notice from the exchange.
type Announcement struct {
	CompanyCode   string `json:"scrip_code,omitempty"`
	CompanyName   string `json:"company,omitempty"`
	Headline      string `json:"headline"`
	Category      string `json:"category,omitempty"`
	Subcategory   string `json:"subcategory,omitempty"`
	Date          string `json:"date"`
	AttachmentURL string `json:"attachment_url,omitempty"`
}

// AnnouncementFilter narrows an announcements query.
// Zero values mean "no filter".
type AnnouncementFilter struct {
	CompanyCode string
	Category    Category
	Subcategory string
	Keyword     string
	FromDate    string // YYYY-MM-DD
	ToDate      string // YYYY-MM-DD
	Page        int
}

// CorporateAction is a dividend, bonus, split, rights issue or buyback.
type CorporateAction struct {
	CompanyCode string `json:"scrip_code"`
	CompanyName string `json:"company"`
	Purpose     string `json:"purpose"`
	ExDate      string `json:"ex_date,omitempty"`
	RecordDate  string `json:"record_date,omitempty"`
	Details     string `json:"details,omitempty"`
}

// ResultEvent is a scheduled earnings announcement date.
type ResultEvent struct {
	CompanyCode string `json:"scrip_code"`
	CompanyName string `json:"company"`
	Date        string `json:"date"`
}

// Quote is a point-in-time price snapshot for a security.
type Quote struct {
	CompanyCode string  `json:"scrip_code"`
	CompanyName string  `json:"company"`
	Price       float64 `json:"price"`
	Change      float64 `json:"change"`
	ChangePct   float64 `json:"change_pct"`
	High52Week  float64 `json:"high_52w,omitempty"`
	Low52Week   float64 `json:"low_52w,omitempty"`
	Updated     string  `json:"updated,omitempty"`
}

// ExtractedText is the result of pulling text out of a filing PDF.
type ExtractedText struct {
	Text    string `json:"text"`
	Pages   int    `json:"pages"`
	UsedOCR bool   `json:"ocr_used"`
	URL     string `json:"url"`
}

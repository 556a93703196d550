package models

// UsageTrendPoint is one date's derived usage of a prep item, for trend charts.
type UsageTrendPoint struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	Quantity float64 `json:"quantity"`
}

// UsageTrend is the per-item series returned by the usage trend report.
type UsageTrend struct {
	PrepItemID int64             `json:"prep_item_id"`
	Name       string            `json:"name"`
	Unit       string            `json:"unit"`
	Points     []UsageTrendPoint `json:"points"`
}

// ReportRequestParams holds common parameters for requesting reports.
type ReportRequestParams struct {
	RestaurantID int64   `form:"restaurant_id"`
	PrepItemID   *int64  `form:"prep_item_id"`
	StartDate    string  `form:"start_date"` // YYYY-MM-DD
	EndDate      string  `form:"end_date"`   // YYYY-MM-DD
	Date         *string `form:"date"`       // reference date for weekday breakdowns
}

package receipt

import "time"

// LineItem is one purchased item on a stored receipt
type LineItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"` // Rupiah
	Subtotal  float64 `json:"subtotal"`   // Rupiah
}

// Receipt represents a stored receipt with its extracted line items
type Receipt struct {
	ID          string     `json:"id"`
	Filename    string     `json:"filename"`
	ContentType string     `json:"content_type"`
	Items       []LineItem `json:"items"`
	TotalAmount float64    `json:"total_amount"` // Rupiah
	UploadDate  time.Time  `json:"upload_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// MonthlySummary aggregates spending for one calendar month
type MonthlySummary struct {
	Month string  `json:"month"` // YYYY-MM
	Total float64 `json:"total"`
}

// HighestItem points at the single priciest line item seen so far
type HighestItem struct {
	ReceiptID string  `json:"receipt_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Month     string  `json:"month"` // YYYY-MM
}

// DashboardData is the aggregate view served to the dashboard
type DashboardData struct {
	Monthly     []MonthlySummary `json:"monthly"`
	HighestItem *HighestItem     `json:"highest_item"`
	Recent      []*Receipt       `json:"recent"`
}

package grpc

import "time"

// GetInvoiceRequest is the request of GetInvoice
type GetInvoiceRequest struct {
	InvoiceID string `json:"invoice_id"`
}

// LineItem is a billed line of an invoice
type LineItem struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    int32  `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

// Deposit is a payment received against an invoice
type Deposit struct {
	ID          string `json:"id"`
	Amount      string `json:"amount"`
	DepositDate string `json:"deposit_date"`
	Note        string `json:"note,omitempty"`
}

// GetInvoiceResponse carries the invoice details
type GetInvoiceResponse struct {
	InvoiceID     string     `json:"invoice_id"`
	Number        string     `json:"number"`
	CustomerID    string     `json:"customer_id"`
	CustomerName  string     `json:"customer_name"`
	InvoiceDate   string     `json:"invoice_date"`
	DueDate       string     `json:"due_date"`
	TotalAmount   string     `json:"total_amount"`
	TotalDeposits string     `json:"total_deposits"`
	DueStatus     string     `json:"due_status"`
	DueDisplay    string     `json:"due_display"`
	LineItems     []LineItem `json:"line_items"`
	Deposits      []Deposit  `json:"deposits"`
}

// CreateDepositRequest is the request of CreateDeposit. Amount and
// DepositDate are validated server-side.
type CreateDepositRequest struct {
	InvoiceID   string `json:"invoice_id"`
	Amount      string `json:"amount"`
	DepositDate string `json:"deposit_date"`
	Note        string `json:"note,omitempty"`
}

// CreateDepositResponse is the response of CreateDeposit
type CreateDepositResponse struct {
	DepositID string    `json:"deposit_id"`
	CreatedAt time.Time `json:"created_at"`
}

// GetDepositSeriesRequest is the request of GetDepositSeries
type GetDepositSeriesRequest struct {
	InvoiceID string `json:"invoice_id"`
}

// SeriesPoint is one cumulative deposit total. X is unix milliseconds.
type SeriesPoint struct {
	X int64  `json:"x"`
	Y string `json:"y"`
}

// GetDepositSeriesResponse is the response of GetDepositSeries
type GetDepositSeriesResponse struct {
	Points []SeriesPoint `json:"points"`
}

// WatchDepositChartRequest is the request of WatchDepositChart
type WatchDepositChartRequest struct {
	InvoiceID string `json:"invoice_id"`
}

// ChartLabel is a text annotation of a chart frame
type ChartLabel struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Anchor   string  `json:"anchor,omitempty"`
	Baseline string  `json:"baseline,omitempty"`
	Kind     string  `json:"kind"`
}

// ChartFrame is one rendered state of the animated deposit chart
type ChartFrame struct {
	Path      string       `json:"path"`
	Progress  float64      `json:"progress"`
	Phase     string       `json:"phase"`
	Labels    []ChartLabel `json:"labels"`
	SVGWidth  float64      `json:"svg_width"`
	SVGHeight float64      `json:"svg_height"`
}

package web

import (
	"embed"
	"html/template"
	"math"
	"strconv"

	"github.com/simaogato/invoicedesk-backend/internal/chart"
	"github.com/simaogato/invoicedesk-backend/internal/domain"
	"github.com/simaogato/invoicedesk-backend/internal/format"
	"github.com/simaogato/invoicedesk-backend/internal/usecase/invoice"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names
const (
	pageInvoice  = "invoice"
	pageNotFound = "not_found"
	pageError    = "error"
)

func parseTemplates() (*template.Template, error) {
	return template.New("pages").
		Funcs(template.FuncMap{"num": formatNumber}).
		ParseFS(templateFS, "templates/*.html")
}

// formatNumber prints a coordinate with at most three decimals
func formatNumber(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type invoicePage struct {
	Number       string
	CustomerID   string
	CustomerName string
	Total        string
	DueDisplay   string
	DueClass     string
	InvoiceDate  string
	LineItems    []lineItemView
	Deposits     []depositView
	Chart        *chart.DepositChart
	ChartLayout  chart.Layout
	StreamURL    string
	Form         depositFormView
}

type lineItemView struct {
	Description string
	Quantity    string
	UnitPrice   string
}

type depositView struct {
	ID      string
	Date    string
	ISODate string
	Amount  string
}

// depositFormView holds the values and messages the deposit form is
// rendered with. Focus names the input that receives autofocus.
type depositFormView struct {
	Amount           string
	DepositDate      string
	Note             string
	AmountError      string
	DepositDateError string
	Focus            string
}

// newInvoicePage builds the page model. layout places the empty chart the
// page streams into when there is no drawable chart yet.
func newInvoicePage(d *invoice.Details, c *chart.DepositChart, layout chart.Layout, form depositFormView) invoicePage {
	page := invoicePage{
		Number:       d.Invoice.Number,
		CustomerID:   d.Customer.ID.String(),
		CustomerName: d.Customer.Name,
		Total:        format.Currency(d.TotalAmount),
		DueDisplay:   d.DueDisplay,
		DueClass:     dueClass(d.DueStatus),
		InvoiceDate:  format.Date(d.Invoice.InvoiceDate),
		Chart:        c,
		ChartLayout:  layout,
		StreamURL:    "/invoices/" + d.Invoice.ID.String() + "/chart/stream",
		Form:         form,
	}
	for _, li := range d.LineItems {
		page.LineItems = append(page.LineItems, lineItemView{
			Description: li.Description,
			Quantity:    format.Quantity(li.Quantity),
			UnitPrice:   format.Currency(li.UnitPrice),
		})
	}
	for _, dep := range d.Deposits {
		page.Deposits = append(page.Deposits, depositView{
			ID:      dep.ID.String(),
			Date:    format.Date(dep.DepositDate),
			ISODate: dep.DepositDate.Format(format.DateLayout),
			Amount:  format.Currency(dep.Amount),
		})
	}
	return page
}

func dueClass(status domain.DueStatus) string {
	switch status {
	case domain.DueStatusPaid:
		return "paid"
	case domain.DueStatusOverdue:
		return "overdue"
	}
	return ""
}

// formWithErrors echoes the submitted values and attaches field messages,
// focusing the first invalid field.
func formWithErrors(in depositForm, verr *domain.ValidationError) depositFormView {
	view := depositFormView{
		Amount:           in.Amount,
		DepositDate:      in.DepositDate,
		Note:             in.Note,
		AmountError:      verr.Message(domain.FieldAmount),
		DepositDateError: verr.Message(domain.FieldDepositDate),
	}
	switch {
	case view.AmountError != "":
		view.Focus = domain.FieldAmount
	case view.DepositDateError != "":
		view.Focus = domain.FieldDepositDate
	}
	return view
}

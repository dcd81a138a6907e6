// Package web serves the invoice detail page, its deposit form and the
// deposit chart over HTTP.
package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/form/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simaogato/invoicedesk-backend/internal/chart"
	"github.com/simaogato/invoicedesk-backend/internal/domain"
	"github.com/simaogato/invoicedesk-backend/internal/format"
	"github.com/simaogato/invoicedesk-backend/internal/logger"
	"github.com/simaogato/invoicedesk-backend/internal/usecase/chartfeed"
	"github.com/simaogato/invoicedesk-backend/internal/usecase/deposit"
	"github.com/simaogato/invoicedesk-backend/internal/usecase/invoice"
)

const intentCreateDeposit = "create-deposit"

// ErrorResponse is the JSON body of every error reply
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler serves the invoice routes
type Handler struct {
	InvoiceService *invoice.InvoiceService
	DepositService *deposit.DepositService
	ChartService   *chartfeed.ChartService
	Events         chartfeed.Subscriber
	Session        chartfeed.SessionConfig

	decoder *form.Decoder
}

// NewHandler creates a new Handler instance
func NewHandler(
	invoiceService *invoice.InvoiceService,
	depositService *deposit.DepositService,
	chartService *chartfeed.ChartService,
	events chartfeed.Subscriber,
	session chartfeed.SessionConfig,
) *Handler {
	return &Handler{
		InvoiceService: invoiceService,
		DepositService: depositService,
		ChartService:   chartService,
		Events:         events,
		Session:        session,
		decoder:        form.NewDecoder(),
	}
}

// depositForm is the submitted deposit form
type depositForm struct {
	Intent      string `form:"intent" json:"intent"`
	Amount      string `form:"amount" json:"amount"`
	DepositDate string `form:"depositDate" json:"depositDate"`
	Note        string `form:"note" json:"note"`
}

type lineItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

type depositResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	DepositDate string          `json:"depositDate"`
	Note        string          `json:"note,omitempty"`
}

type invoiceResponse struct {
	ID            string             `json:"id"`
	Number        string             `json:"number"`
	CustomerID    string             `json:"customerId"`
	CustomerName  string             `json:"customerName"`
	InvoiceDate   string             `json:"invoiceDate"`
	DueDate       string             `json:"dueDate"`
	TotalAmount   decimal.Decimal    `json:"totalAmount"`
	TotalDeposits decimal.Decimal    `json:"totalDeposits"`
	DueStatus     domain.DueStatus   `json:"dueStatus"`
	DueDisplay    string             `json:"dueDisplay"`
	LineItems     []lineItemResponse `json:"lineItems"`
	Deposits      []depositResponse  `json:"deposits"`
}

type chartResponse struct {
	Series []chart.SeriesPoint `json:"series"`
	Chart  *chart.DepositChart `json:"chart"`
}

// Healthz reports liveness
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ShowInvoice renders the invoice page, or its JSON when requested
func (h *Handler) ShowInvoice(c *gin.Context) {
	id, ok := h.invoiceID(c)
	if !ok {
		return
	}

	if wantsJSON(c) {
		details, err := h.InvoiceService.GetInvoiceDetails(c.Request.Context(), id)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, toInvoiceResponse(details))
		return
	}

	view := depositFormView{}
	if c.Query("created") != "" {
		view.Focus = domain.FieldAmount
	}
	h.renderInvoice(c, id, http.StatusOK, view)
}

// InvoiceAction handles the forms posted to the invoice page
func (h *Handler) InvoiceAction(c *gin.Context) {
	id, ok := h.invoiceID(c)
	if !ok {
		return
	}

	var in depositForm
	if err := h.decodeForm(c, &in); err != nil {
		h.badRequest(c, "invalid form submission")
		return
	}

	switch in.Intent {
	case "":
		h.badRequest(c, "intent required")
	case intentCreateDeposit:
		h.createDeposit(c, id, in)
	default:
		h.badRequest(c, fmt.Sprintf("Unsupported intent: %s", in.Intent))
	}
}

func (h *Handler) createDeposit(c *gin.Context, id uuid.UUID, in depositForm) {
	dep, err := h.DepositService.CreateDeposit(c.Request.Context(), deposit.CreateDepositInput{
		InvoiceID:   id,
		Amount:      in.Amount,
		DepositDate: in.DepositDate,
		Note:        in.Note,
	})

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		if wantsJSON(c) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verr.Fields()})
			return
		}
		h.renderInvoice(c, id, http.StatusUnprocessableEntity, formWithErrors(in, verr))
	case err != nil:
		h.handleError(c, err)
	case wantsJSON(c):
		c.JSON(http.StatusCreated, toDepositResponse(*dep))
	default:
		c.Redirect(http.StatusSeeOther, "/invoices/"+id.String()+"?created=1")
	}
}

// GetChart returns the deposit series and chart model as JSON. The chart is
// null until the invoice has deposits on two different dates.
func (h *Handler) GetChart(c *gin.Context) {
	id, ok := h.invoiceID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	series, err := h.ChartService.DepositSeries(ctx, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	ch, err := h.ChartService.DepositChart(ctx, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, chartResponse{Series: series, Chart: ch})
}

// StreamChart streams animation frames of the deposit chart as Server-Sent
// Events until the client disconnects.
func (h *Handler) StreamChart(c *gin.Context) {
	id, ok := h.invoiceID(c)
	if !ok {
		return
	}

	session := chartfeed.NewSession(h.ChartService, h.Events, id, h.Session)
	started := false
	err := session.Run(c.Request.Context(), func(f chartfeed.Frame) error {
		if !started {
			c.Header("Content-Type", "text/event-stream")
			c.Header("Cache-Control", "no-cache")
			c.Header("Connection", "keep-alive")
			c.Header("X-Accel-Buffering", "no")
			c.Status(http.StatusOK)
			started = true
		}
		c.SSEvent("frame", f)
		c.Writer.Flush()
		return nil
	})
	if err == nil {
		return
	}
	if !c.Writer.Written() {
		h.handleError(c, err)
		return
	}
	logger.FromContext(c.Request.Context()).Error("Chart stream ended with error",
		zap.String("invoice_id", id.String()),
		zap.Error(err),
	)
}

func (h *Handler) renderInvoice(c *gin.Context, id uuid.UUID, status int, view depositFormView) {
	ctx := c.Request.Context()

	details, err := h.InvoiceService.GetInvoiceDetails(ctx, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	ch, err := h.ChartService.DepositChart(ctx, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.HTML(status, pageInvoice, newInvoicePage(details, ch, h.ChartService.Layout, view))
}

// invoiceID parses the :invoiceID path parameter. A malformed ID cannot
// name an invoice, so it is answered like an unknown one.
func (h *Handler) invoiceID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Param("invoiceID")
	id, err := uuid.Parse(raw)
	if err != nil {
		h.notFound(c)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) decodeForm(c *gin.Context, in *depositForm) error {
	if strings.HasPrefix(c.ContentType(), gin.MIMEJSON) {
		return c.ShouldBindJSON(in)
	}
	if err := c.Request.ParseForm(); err != nil {
		return err
	}
	return h.decoder.Decode(in, c.Request.PostForm)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		h.notFound(c)
		return
	}

	_ = c.Error(err)
	logger.FromContext(c.Request.Context()).Error("Request failed",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	if wantsJSON(c) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	c.HTML(http.StatusInternalServerError, pageError, nil)
	c.Abort()
}

func (h *Handler) notFound(c *gin.Context) {
	raw := c.Param("invoiceID")
	if wantsJSON(c) {
		c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{
			Error: fmt.Sprintf("No invoice found with the ID of %q", raw),
		})
		return
	}
	c.HTML(http.StatusNotFound, pageNotFound, raw)
	c.Abort()
}

func (h *Handler) badRequest(c *gin.Context, msg string) {
	if wantsJSON(c) {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: msg})
		return
	}
	c.String(http.StatusBadRequest, msg)
	c.Abort()
}

// wantsJSON reports whether the client prefers JSON over HTML
func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

func toInvoiceResponse(d *invoice.Details) invoiceResponse {
	resp := invoiceResponse{
		ID:            d.Invoice.ID.String(),
		Number:        d.Invoice.Number,
		CustomerID:    d.Customer.ID.String(),
		CustomerName:  d.Customer.Name,
		InvoiceDate:   d.Invoice.InvoiceDate.Format(format.DateLayout),
		DueDate:       d.Invoice.DueDate.Format(format.DateLayout),
		TotalAmount:   d.TotalAmount,
		TotalDeposits: d.TotalDeposits,
		DueStatus:     d.DueStatus,
		DueDisplay:    d.DueDisplay,
		LineItems:     make([]lineItemResponse, 0, len(d.LineItems)),
		Deposits:      make([]depositResponse, 0, len(d.Deposits)),
	}
	for _, li := range d.LineItems {
		resp.LineItems = append(resp.LineItems, lineItemResponse{
			ID:          li.ID.String(),
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
		})
	}
	for _, dep := range d.Deposits {
		resp.Deposits = append(resp.Deposits, toDepositResponse(dep))
	}
	return resp
}

func toDepositResponse(d domain.Deposit) depositResponse {
	return depositResponse{
		ID:          d.ID.String(),
		Amount:      d.Amount,
		DepositDate: d.DepositDate.Format(format.DateLayout),
		Note:        d.Note,
	}
}

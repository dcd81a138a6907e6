package grpc

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/simaogato/invoicedesk-backend/internal/domain"
	"github.com/simaogato/invoicedesk-backend/internal/format"
	"github.com/simaogato/invoicedesk-backend/internal/logger"
	"github.com/simaogato/invoicedesk-backend/internal/usecase/chartfeed"
	"github.com/simaogato/invoicedesk-backend/internal/usecase/deposit"
	"github.com/simaogato/invoicedesk-backend/internal/usecase/invoice"
)

// Server implements the InvoiceService gRPC server
type Server struct {
	InvoiceService *invoice.InvoiceService
	DepositService *deposit.DepositService
	ChartService   *chartfeed.ChartService
	Events         chartfeed.Subscriber
	Session        chartfeed.SessionConfig

	closing   chan struct{}
	closeOnce sync.Once
}

var _ InvoiceServiceServer = (*Server)(nil)

// NewServer creates a new gRPC server instance
func NewServer(
	invoiceService *invoice.InvoiceService,
	depositService *deposit.DepositService,
	chartService *chartfeed.ChartService,
	events chartfeed.Subscriber,
	session chartfeed.SessionConfig,
) *Server {
	return &Server{
		InvoiceService: invoiceService,
		DepositService: depositService,
		ChartService:   chartService,
		Events:         events,
		Session:        session,
		closing:        make(chan struct{}),
	}
}

// Close ends every running WatchDepositChart stream so that GracefulStop
// can drain. Unary calls are unaffected. Safe to call more than once.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		if s.closing != nil {
			close(s.closing)
		}
	})
}

// Shutdown closes live chart streams and drains gs. If ctx ends first the
// remaining connections are dropped with gs.Stop.
func (s *Server) Shutdown(ctx context.Context, gs *grpc.Server) {
	s.Close()

	stopped := make(chan struct{})
	go func() {
		gs.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		logger.Warn("gRPC graceful stop timed out, forcing stop")
		gs.Stop()
		<-stopped
	}
}

func (s *Server) closed() bool {
	select {
	case <-s.closing:
		return true
	default:
		return false
	}
}

// GetInvoice handles the GetInvoice RPC
func (s *Server) GetInvoice(ctx context.Context, req *GetInvoiceRequest) (*GetInvoiceResponse, error) {
	invoiceID, err := parseInvoiceID(req.InvoiceID)
	if err != nil {
		return nil, err
	}

	details, err := s.InvoiceService.GetInvoiceDetails(ctx, invoiceID)
	if err != nil {
		return nil, mapError(ctx, err)
	}

	resp := &GetInvoiceResponse{
		InvoiceID:     details.Invoice.ID.String(),
		Number:        details.Invoice.Number,
		CustomerID:    details.Customer.ID.String(),
		CustomerName:  details.Customer.Name,
		InvoiceDate:   details.Invoice.InvoiceDate.Format(format.DateLayout),
		DueDate:       details.Invoice.DueDate.Format(format.DateLayout),
		TotalAmount:   details.TotalAmount.StringFixed(2),
		TotalDeposits: details.TotalDeposits.StringFixed(2),
		DueStatus:     string(details.DueStatus),
		DueDisplay:    details.DueDisplay,
		LineItems:     make([]LineItem, 0, len(details.LineItems)),
		Deposits:      make([]Deposit, 0, len(details.Deposits)),
	}
	for _, li := range details.LineItems {
		resp.LineItems = append(resp.LineItems, LineItem{
			ID:          li.ID.String(),
			Description: li.Description,
			Quantity:    int32(li.Quantity),
			UnitPrice:   li.UnitPrice.StringFixed(2),
		})
	}
	for _, d := range details.Deposits {
		resp.Deposits = append(resp.Deposits, Deposit{
			ID:          d.ID.String(),
			Amount:      d.Amount.StringFixed(2),
			DepositDate: d.DepositDate.Format(format.DateLayout),
			Note:        d.Note,
		})
	}
	return resp, nil
}

// CreateDeposit handles the CreateDeposit RPC
func (s *Server) CreateDeposit(ctx context.Context, req *CreateDepositRequest) (*CreateDepositResponse, error) {
	invoiceID, err := parseInvoiceID(req.InvoiceID)
	if err != nil {
		return nil, err
	}

	d, err := s.DepositService.CreateDeposit(ctx, deposit.CreateDepositInput{
		InvoiceID:   invoiceID,
		Amount:      req.Amount,
		DepositDate: req.DepositDate,
		Note:        req.Note,
	})
	if err != nil {
		return nil, mapError(ctx, err)
	}

	return &CreateDepositResponse{
		DepositID: d.ID.String(),
		CreatedAt: d.CreatedAt,
	}, nil
}

// GetDepositSeries handles the GetDepositSeries RPC
func (s *Server) GetDepositSeries(ctx context.Context, req *GetDepositSeriesRequest) (*GetDepositSeriesResponse, error) {
	invoiceID, err := parseInvoiceID(req.InvoiceID)
	if err != nil {
		return nil, err
	}

	series, err := s.ChartService.DepositSeries(ctx, invoiceID)
	if err != nil {
		return nil, mapError(ctx, err)
	}

	points := make([]SeriesPoint, len(series))
	for i, p := range series {
		points[i] = SeriesPoint{X: p.X, Y: p.Y.String()}
	}
	return &GetDepositSeriesResponse{Points: points}, nil
}

// WatchDepositChart handles the WatchDepositChart server stream. It runs
// until the client cancels or the server is closed.
func (s *Server) WatchDepositChart(req *WatchDepositChartRequest, stream ChartFrameSender) error {
	invoiceID, err := parseInvoiceID(req.InvoiceID)
	if err != nil {
		return err
	}
	if s.closed() {
		return status.Error(codes.Unavailable, "server shutting down")
	}

	ctx, cancel := context.WithCancel(stream.Context())
	defer cancel()
	go func() {
		select {
		case <-s.closing:
			cancel()
		case <-ctx.Done():
		}
	}()

	session := chartfeed.NewSession(s.ChartService, s.Events, invoiceID, s.Session)
	err = session.Run(ctx, func(f chartfeed.Frame) error {
		frame := &ChartFrame{
			Path:      f.Path,
			Progress:  f.Progress,
			Phase:     f.Phase,
			SVGWidth:  f.SVGWidth,
			SVGHeight: f.SVGHeight,
			Labels:    make([]ChartLabel, len(f.Labels)),
		}
		for i, l := range f.Labels {
			frame.Labels[i] = ChartLabel{
				Text:     l.Text,
				X:        l.X,
				Y:        l.Y,
				Anchor:   l.Anchor,
				Baseline: l.Baseline,
				Kind:     l.Kind,
			}
		}
		return stream.Send(frame)
	})
	if s.closed() && stream.Context().Err() == nil {
		return status.Error(codes.Unavailable, "server shutting down")
	}
	if err != nil {
		return mapError(ctx, err)
	}
	return nil
}

func parseInvoiceID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid invoice_id format: %v", err)
	}
	return id, nil
}

// mapError converts domain errors to gRPC status errors. Validation errors
// carry one BadRequest field violation per invalid field.
func mapError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		st := status.New(codes.InvalidArgument, verr.Error())
		br := &errdetails.BadRequest{}
		for _, fe := range verr.Errors {
			br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
				Field:       fe.Field,
				Description: fe.Message,
			})
		}
		if detailed, derr := st.WithDetails(br); derr == nil {
			st = detailed
		}
		return st.Err()
	case errors.Is(err, domain.ErrNotFound):
		return status.Errorf(codes.NotFound, "%s", err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	logger.FromContext(ctx).Error("RPC failed", zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}

// FieldViolations extracts the field messages from an InvalidArgument
// status produced by the server.
func FieldViolations(err error) map[string]string {
	st, ok := status.FromError(err)
	if !ok {
		return nil
	}
	out := make(map[string]string)
	for _, d := range st.Details() {
		if br, ok := d.(*errdetails.BadRequest); ok {
			for _, v := range br.GetFieldViolations() {
				out[v.GetField()] = v.GetDescription()
			}
		}
	}
	return out
}

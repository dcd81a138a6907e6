package grpc

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified name of the invoice service
const ServiceName = "invoicedesk.v1.InvoiceService"

const (
	getInvoiceMethod        = "/" + ServiceName + "/GetInvoice"
	createDepositMethod     = "/" + ServiceName + "/CreateDeposit"
	getDepositSeriesMethod  = "/" + ServiceName + "/GetDepositSeries"
	watchDepositChartMethod = "/" + ServiceName + "/WatchDepositChart"
)

// InvoiceServiceServer is the server API for the invoice service
type InvoiceServiceServer interface {
	GetInvoice(context.Context, *GetInvoiceRequest) (*GetInvoiceResponse, error)
	CreateDeposit(context.Context, *CreateDepositRequest) (*CreateDepositResponse, error)
	GetDepositSeries(context.Context, *GetDepositSeriesRequest) (*GetDepositSeriesResponse, error)
	WatchDepositChart(*WatchDepositChartRequest, ChartFrameSender) error
}

// ChartFrameSender is the server side of a WatchDepositChart stream
type ChartFrameSender interface {
	Send(*ChartFrame) error
	grpc.ServerStream
}

// ServiceDesc describes the invoice service for grpc.Server registration
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*InvoiceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetInvoice", Handler: getInvoiceHandler},
		{MethodName: "CreateDeposit", Handler: createDepositHandler},
		{MethodName: "GetDepositSeries", Handler: getDepositSeriesHandler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchDepositChart",
			Handler:       watchDepositChartHandler,
			ServerStreams: true,
		},
	},
	Metadata: "invoicedesk/v1/invoice",
}

// RegisterInvoiceServiceServer registers srv on s
func RegisterInvoiceServiceServer(s grpc.ServiceRegistrar, srv InvoiceServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// NewGRPCServer builds a grpc.Server with logging and auth interceptors and
// the invoice service registered. Messages use the JSON codec and there is
// no compiled descriptor behind ServiceDesc.Metadata, so server reflection
// is not registered.
func NewGRPCServer(srv InvoiceServiceServer, authToken string, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts,
		grpc.ChainUnaryInterceptor(LoggingInterceptor(), AuthInterceptor(authToken)),
		grpc.ChainStreamInterceptor(StreamLoggingInterceptor(), StreamAuthInterceptor(authToken)),
	)
	s := grpc.NewServer(opts...)
	RegisterInvoiceServiceServer(s, srv)
	return s
}

func getInvoiceHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetInvoiceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InvoiceServiceServer).GetInvoice(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getInvoiceMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(InvoiceServiceServer).GetInvoice(ctx, req.(*GetInvoiceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func createDepositHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateDepositRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InvoiceServiceServer).CreateDeposit(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: createDepositMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(InvoiceServiceServer).CreateDeposit(ctx, req.(*CreateDepositRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getDepositSeriesHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetDepositSeriesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InvoiceServiceServer).GetDepositSeries(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getDepositSeriesMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(InvoiceServiceServer).GetDepositSeries(ctx, req.(*GetDepositSeriesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func watchDepositChartHandler(srv interface{}, stream grpc.ServerStream) error {
	in := new(WatchDepositChartRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(InvoiceServiceServer).WatchDepositChart(in, &chartFrameSender{stream})
}

type chartFrameSender struct {
	grpc.ServerStream
}

func (s *chartFrameSender) Send(f *ChartFrame) error {
	return s.ServerStream.SendMsg(f)
}

// InvoiceServiceClient calls the invoice service using the JSON codec
type InvoiceServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewInvoiceServiceClient creates a client on cc
func NewInvoiceServiceClient(cc grpc.ClientConnInterface) *InvoiceServiceClient {
	return &InvoiceServiceClient{cc: cc}
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

// GetInvoice fetches invoice details
func (c *InvoiceServiceClient) GetInvoice(ctx context.Context, in *GetInvoiceRequest, opts ...grpc.CallOption) (*GetInvoiceResponse, error) {
	out := new(GetInvoiceResponse)
	if err := c.cc.Invoke(ctx, getInvoiceMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateDeposit records a deposit
func (c *InvoiceServiceClient) CreateDeposit(ctx context.Context, in *CreateDepositRequest, opts ...grpc.CallOption) (*CreateDepositResponse, error) {
	out := new(CreateDepositResponse)
	if err := c.cc.Invoke(ctx, createDepositMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDepositSeries fetches the cumulative deposit series
func (c *InvoiceServiceClient) GetDepositSeries(ctx context.Context, in *GetDepositSeriesRequest, opts ...grpc.CallOption) (*GetDepositSeriesResponse, error) {
	out := new(GetDepositSeriesResponse)
	if err := c.cc.Invoke(ctx, getDepositSeriesMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// ChartFrameReceiver is the client side of a WatchDepositChart stream
type ChartFrameReceiver interface {
	Recv() (*ChartFrame, error)
	grpc.ClientStream
}

// WatchDepositChart opens a stream of chart frames. Cancel ctx to end it.
func (c *InvoiceServiceClient) WatchDepositChart(ctx context.Context, in *WatchDepositChartRequest, opts ...grpc.CallOption) (ChartFrameReceiver, error) {
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], watchDepositChartMethod, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	x := &chartFrameReceiver{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type chartFrameReceiver struct {
	grpc.ClientStream
}

func (r *chartFrameReceiver) Recv() (*ChartFrame, error) {
	f := new(ChartFrame)
	if err := r.ClientStream.RecvMsg(f); err != nil {
		return nil, err
	}
	return f, nil
}

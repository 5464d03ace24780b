package grpcsvc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	serviceName = "checkout.v1.CheckoutService"

	methodCreateOrder = "/" + serviceName + "/CreateOrder"
	methodGetOrder    = "/" + serviceName + "/GetOrder"
	methodListOrders  = "/" + serviceName + "/ListOrders"
)

// CheckoutServiceServer - серверная часть checkout.v1.CheckoutService.
type CheckoutServiceServer interface {
	CreateOrder(context.Context, *CreateOrderRequest) (*CreateOrderResponse, error)
	GetOrder(context.Context, *GetOrderRequest) (*GetOrderResponse, error)
	ListOrders(context.Context, *ListOrdersRequest) (*ListOrdersResponse, error)
}

// RegisterCheckoutServiceServer регистрирует реализацию на gRPC-сервере.
func RegisterCheckoutServiceServer(s grpc.ServiceRegistrar, srv CheckoutServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

// unaryHandler собирает grpc.MethodHandler для метода с типизированными запросом и ответом.
func unaryHandler[Req any, Resp any](
	fullMethod string,
	call func(CheckoutServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CheckoutServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CheckoutServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*CheckoutServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateOrder",
			Handler:    unaryHandler(methodCreateOrder, CheckoutServiceServer.CreateOrder),
		},
		{
			MethodName: "GetOrder",
			Handler:    unaryHandler(methodGetOrder, CheckoutServiceServer.GetOrder),
		},
		{
			MethodName: "ListOrders",
			Handler:    unaryHandler(methodListOrders, CheckoutServiceServer.ListOrders),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "checkout/v1/checkout.json",
}

package grpcsvc_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	grpcsvc "github.com/vladislavdragonenkov/checkout/internal/service/grpc"
	"github.com/vladislavdragonenkov/checkout/internal/service/inventory"
	"github.com/vladislavdragonenkov/checkout/internal/service/ordering"
	"github.com/vladislavdragonenkov/checkout/internal/storage/memory"
)

const bufSize = 1024 * 1024

type testEnv struct {
	client   *grpcsvc.Client
	products domain.ProductRepository
}

func newTestServer(t *testing.T) *testEnv {
	t.Helper()

	customers := memory.NewCustomerRepository()
	products := memory.NewProductRepository()
	orders := memory.NewOrderRepository()

	ctx := context.Background()
	require.NoError(t, customers.Create(ctx, domain.Customer{ID: "C1", Name: "Ada", Email: "ada@example.com"}))
	require.NoError(t, products.Create(ctx, domain.Product{ID: "P1", Name: "Keyboard", PriceMinor: 500, Quantity: 10}))
	require.NoError(t, products.Create(ctx, domain.Product{ID: "P2", Name: "Mouse", PriceMinor: 250, Quantity: 3}))

	svc := ordering.NewService(customers, products, orders, inventory.NewService(products),
		ordering.WithLogger(loggerForTests()))

	lis := bufconn.Listen(bufSize)
	server := grpc.NewServer()
	grpcsvc.RegisterCheckoutServiceServer(server, grpcsvc.NewCheckoutService(svc, loggerForTests()))

	go func() {
		_ = server.Serve(lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		server.Stop()
		_ = lis.Close()
	})

	return &testEnv{client: grpcsvc.NewClient(conn), products: products}
}

func loggerForTests() *logrus.Entry {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)
	return logrus.NewEntry(logger)
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestCreateOrder_Success(t *testing.T) {
	env := newTestServer(t)
	ctx := testContext(t)

	resp, err := env.client.CreateOrder(ctx, &grpcsvc.CreateOrderRequest{
		CustomerID: "C1",
		Products:   []grpcsvc.ProductQuantity{{ID: "P1", Quantity: 3}},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Order)
	require.Equal(t, "C1", resp.Order.CustomerID)
	require.Equal(t, int64(1500), resp.Order.AmountMinor)
	require.Len(t, resp.Order.Items, 1)
	require.Equal(t, "P1", resp.Order.Items[0].ProductID)
	require.Equal(t, int64(500), resp.Order.Items[0].PriceMinor)
	require.Equal(t, int32(3), resp.Order.Items[0].Quantity)
	require.NotNil(t, resp.Order.Customer)
	require.Equal(t, "ada@example.com", resp.Order.Customer.Email)

	product, err := env.products.FindByID(ctx, "P1")
	require.NoError(t, err)
	require.Equal(t, int32(7), product.Quantity)
}

func TestCreateOrder_StatusCodes(t *testing.T) {
	tests := []struct {
		name string
		req  *grpcsvc.CreateOrderRequest
		code codes.Code
	}{
		{
			name: "unknown customer",
			req:  &grpcsvc.CreateOrderRequest{CustomerID: "missing", Products: []grpcsvc.ProductQuantity{{ID: "P1", Quantity: 1}}},
			code: codes.InvalidArgument,
		},
		{
			name: "empty products",
			req:  &grpcsvc.CreateOrderRequest{CustomerID: "C1"},
			code: codes.InvalidArgument,
		},
		{
			name: "zero quantity",
			req:  &grpcsvc.CreateOrderRequest{CustomerID: "C1", Products: []grpcsvc.ProductQuantity{{ID: "P1", Quantity: 0}}},
			code: codes.InvalidArgument,
		},
		{
			name: "unknown product",
			req:  &grpcsvc.CreateOrderRequest{CustomerID: "C1", Products: []grpcsvc.ProductQuantity{{ID: "P9", Quantity: 1}}},
			code: codes.InvalidArgument,
		},
		{
			name: "exact depletion",
			req:  &grpcsvc.CreateOrderRequest{CustomerID: "C1", Products: []grpcsvc.ProductQuantity{{ID: "P2", Quantity: 3}}},
			code: codes.FailedPrecondition,
		},
	}

	env := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.client.CreateOrder(testContext(t), tt.req)
			require.Error(t, err)
			st, ok := status.FromError(err)
			require.True(t, ok)
			require.Equal(t, tt.code, st.Code(), st.Message())
		})
	}

	product, err := env.products.FindByID(context.Background(), "P2")
	require.NoError(t, err)
	require.Equal(t, int32(3), product.Quantity)
}

func TestGetOrder(t *testing.T) {
	env := newTestServer(t)
	ctx := testContext(t)

	created, err := env.client.CreateOrder(ctx, &grpcsvc.CreateOrderRequest{
		CustomerID: "C1",
		Products:   []grpcsvc.ProductQuantity{{ID: "P1", Quantity: 1}, {ID: "P2", Quantity: 1}},
	})
	require.NoError(t, err)

	got, err := env.client.GetOrder(ctx, &grpcsvc.GetOrderRequest{OrderID: created.Order.ID})
	require.NoError(t, err)
	require.Equal(t, created.Order.ID, got.Order.ID)
	require.Equal(t, int64(750), got.Order.AmountMinor)
	require.Len(t, got.Order.Items, 2)

	_, err = env.client.GetOrder(ctx, &grpcsvc.GetOrderRequest{OrderID: "nope"})
	require.Equal(t, codes.NotFound, status.Code(err))

	_, err = env.client.GetOrder(ctx, &grpcsvc.GetOrderRequest{})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestListOrders(t *testing.T) {
	env := newTestServer(t)
	ctx := testContext(t)

	for i := 0; i < 2; i++ {
		_, err := env.client.CreateOrder(ctx, &grpcsvc.CreateOrderRequest{
			CustomerID: "C1",
			Products:   []grpcsvc.ProductQuantity{{ID: "P1", Quantity: 1}},
		})
		require.NoError(t, err)
	}

	resp, err := env.client.ListOrders(ctx, &grpcsvc.ListOrdersRequest{CustomerID: "C1"})
	require.NoError(t, err)
	require.Len(t, resp.Orders, 2)

	_, err = env.client.ListOrders(ctx, &grpcsvc.ListOrdersRequest{})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

type failingOrders struct{}

func (failingOrders) CreateOrder(context.Context, ordering.CreateOrderRequest) (domain.Order, error) {
	return domain.Order{}, errors.New("connection reset by peer")
}

func (failingOrders) GetOrder(context.Context, string) (domain.Order, error) {
	return domain.Order{}, errors.New("connection reset by peer")
}

func (failingOrders) ListOrders(context.Context, string, int) ([]domain.Order, error) {
	return nil, errors.New("connection reset by peer")
}

func TestInternalErrorsAreHidden(t *testing.T) {
	svc := grpcsvc.NewCheckoutService(failingOrders{}, loggerForTests())

	_, err := svc.CreateOrder(context.Background(), &grpcsvc.CreateOrderRequest{CustomerID: "C1"})
	st, ok := status.FromError(err)
	require.True(t, ok)
	require.Equal(t, codes.Internal, st.Code())
	require.Equal(t, "internal error", st.Message())

	_, err = svc.GetOrder(context.Background(), &grpcsvc.GetOrderRequest{OrderID: "O1"})
	require.Equal(t, codes.Internal, status.Code(err))
}

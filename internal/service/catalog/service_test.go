package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/service/catalog"
	"github.com/vladislavdragonenkov/checkout/internal/storage/memory"
)

func newService() *catalog.Service {
	return catalog.NewService(memory.NewCustomerRepository(), memory.NewProductRepository(), nil)
}

func TestCreateCustomer(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	customer, err := svc.CreateCustomer(ctx, "  Ada ", "ada@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, customer.ID)
	require.Equal(t, "Ada", customer.Name)
	require.False(t, customer.CreatedAt.IsZero())

	stored, err := svc.GetCustomer(ctx, customer.ID)
	require.NoError(t, err)
	require.Equal(t, customer.Email, stored.Email)

	_, err = svc.CreateCustomer(ctx, "Other", "ADA@example.com")
	require.ErrorIs(t, err, domain.ErrCustomerAlreadyExists)
}

func TestCreateCustomer_Validation(t *testing.T) {
	svc := newService()

	_, err := svc.CreateCustomer(context.Background(), "", "")
	require.ErrorIs(t, err, domain.ErrCustomerNameRequired)
	require.ErrorIs(t, err, domain.ErrCustomerEmailRequired)
}

func TestCreateProduct(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, "Keyboard", 500, 10)
	require.NoError(t, err)
	require.EqualValues(t, 500, product.PriceMinor)
	require.EqualValues(t, 10, product.Quantity)

	got, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, "Keyboard", got.Name)

	_, err = svc.CreateProduct(ctx, "Keyboard", 100, 1)
	require.ErrorIs(t, err, domain.ErrProductAlreadyExists)

	_, err = svc.GetProduct(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCreateProduct_Validation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	cases := []struct {
		name     string
		title    string
		price    int64
		quantity int32
		wantErr  error
	}{
		{"empty name", " ", 100, 1, domain.ErrProductNameRequired},
		{"negative price", "Mouse", -1, 1, domain.ErrItemPriceInvalid},
		{"negative quantity", "Mouse", 100, -1, domain.ErrProductQuantityNegative},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx, tc.title, tc.price, tc.quantity)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

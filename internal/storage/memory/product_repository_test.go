package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/storage/memory"
)

func seedProducts(t *testing.T, repo domain.ProductRepository, products ...domain.Product) {
	t.Helper()
	for _, p := range products {
		if err := repo.Create(context.Background(), p); err != nil {
			t.Fatalf("create product %s: %v", p.ID, err)
		}
	}
}

func TestProductRepository_FindAllByIDSkipsUnknownAndDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	seedProducts(t, repo,
		domain.Product{ID: "p-1", Name: "Keyboard", PriceMinor: 500, Quantity: 10},
		domain.Product{ID: "p-2", Name: "Mouse", PriceMinor: 250, Quantity: 3},
	)

	found, err := repo.FindAllByID(ctx, []string{"p-2", "unknown", "p-1", "p-2"})
	if err != nil {
		t.Fatalf("find all failed: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 products, got %d", len(found))
	}
	if found[0].ID != "p-2" || found[1].ID != "p-1" {
		t.Fatalf("unexpected order of products: %s, %s", found[0].ID, found[1].ID)
	}
}

func TestProductRepository_CreateRejectsDuplicateName(t *testing.T) {
	repo := memory.NewProductRepository()
	seedProducts(t, repo, domain.Product{ID: "p-1", Name: "Keyboard"})

	err := repo.Create(context.Background(), domain.Product{ID: "p-2", Name: "Keyboard"})
	if !errors.Is(err, domain.ErrProductAlreadyExists) {
		t.Fatalf("expected ErrProductAlreadyExists, got %v", err)
	}

	byName, err := repo.FindByName(context.Background(), "Keyboard")
	if err != nil || byName.ID != "p-1" {
		t.Fatalf("unexpected find by name result: %+v, %v", byName, err)
	}
}

func TestProductRepository_SaveQuantities(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	seedProducts(t, repo,
		domain.Product{ID: "p-1", Name: "Keyboard", PriceMinor: 500, Quantity: 10},
		domain.Product{ID: "p-2", Name: "Mouse", PriceMinor: 250, Quantity: 3},
	)

	if err := repo.SaveQuantities(ctx, []domain.Product{{ID: "p-1", Name: "ignored", Quantity: 7}}); err != nil {
		t.Fatalf("save quantities failed: %v", err)
	}

	p1, err := repo.FindByID(ctx, "p-1")
	if err != nil {
		t.Fatalf("find p-1 failed: %v", err)
	}
	if p1.Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", p1.Quantity)
	}
	if p1.Name != "Keyboard" {
		t.Fatalf("SaveQuantities must not touch other fields, got name %q", p1.Name)
	}

	err = repo.SaveQuantities(ctx, []domain.Product{{ID: "p-2", Quantity: 1}, {ID: "gone", Quantity: 1}})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	p2, _ := repo.FindByID(ctx, "p-2")
	if p2.Quantity != 3 {
		t.Fatalf("failed batch must not be applied partially, got quantity %d", p2.Quantity)
	}
}

func TestCustomerRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCustomerRepository()

	customer := domain.Customer{ID: "c-1", Name: "Ada", Email: "Ada@Example.com"}
	if err := repo.Create(ctx, customer); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(ctx, domain.Customer{ID: "c-2", Name: "Other", Email: "ada@example.com"}); !errors.Is(err, domain.ErrCustomerAlreadyExists) {
		t.Fatalf("expected ErrCustomerAlreadyExists, got %v", err)
	}

	byID, err := repo.FindByID(ctx, "c-1")
	if err != nil || byID.Name != "Ada" {
		t.Fatalf("unexpected find by id result: %+v, %v", byID, err)
	}
	byEmail, err := repo.FindByEmail(ctx, "ADA@example.com")
	if err != nil || byEmail.ID != "c-1" {
		t.Fatalf("unexpected find by email result: %+v, %v", byEmail, err)
	}
	if _, err := repo.FindByID(ctx, "missing"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

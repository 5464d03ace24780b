package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

func TestCustomerRepository_Postgres(t *testing.T) {
	db := newCheckoutDB(t)
	repo := db.customers
	ctx := context.Background()
	now := time.Now().UTC().Round(time.Microsecond)

	customer, _, _ := db.seedCatalog(t, now)

	got, err := repo.FindByID(ctx, customer.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if got.Email != customer.Email || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected customer: %+v", got)
	}

	byEmail, err := repo.FindByEmail(ctx, "ADA@example.com")
	if err != nil || byEmail.ID != customer.ID {
		t.Fatalf("find by email: %+v, %v", byEmail, err)
	}

	dup := domain.Customer{ID: "customer-2", Name: "Other", Email: "Ada@Example.com", CreatedAt: now}
	if err := repo.Create(ctx, dup); !errors.Is(err, domain.ErrCustomerAlreadyExists) {
		t.Fatalf("expected ErrCustomerAlreadyExists, got %v", err)
	}
	if _, err := repo.FindByID(ctx, "missing"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestProductRepository_Postgres(t *testing.T) {
	db := newCheckoutDB(t)
	repo := db.products
	ctx := context.Background()
	now := time.Now().UTC().Round(time.Microsecond)

	_, keyboard, mouse := db.seedCatalog(t, now)

	found, err := repo.FindAllByID(ctx, []string{keyboard.ID, "unknown", mouse.ID})
	if err != nil {
		t.Fatalf("find all by id: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 products, got %d", len(found))
	}

	byName, err := repo.FindByName(ctx, "Mouse")
	if err != nil || byName.ID != mouse.ID {
		t.Fatalf("find by name: %+v, %v", byName, err)
	}
	if err := repo.Create(ctx, domain.Product{ID: "product-3", Name: "Mouse", CreatedAt: now, UpdatedAt: now}); !errors.Is(err, domain.ErrProductAlreadyExists) {
		t.Fatalf("expected ErrProductAlreadyExists, got %v", err)
	}

	keyboard.Quantity = 7
	if err := repo.SaveQuantities(ctx, []domain.Product{keyboard}); err != nil {
		t.Fatalf("save quantities: %v", err)
	}
	stored, err := repo.FindByID(ctx, keyboard.ID)
	if err != nil || stored.Quantity != 7 {
		t.Fatalf("unexpected stored keyboard: %+v, %v", stored, err)
	}

	mouse.Quantity = 0
	err = repo.SaveQuantities(ctx, []domain.Product{mouse, {ID: "vanished", Quantity: 1}})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	storedMouse, _ := repo.FindByID(ctx, mouse.ID)
	if storedMouse.Quantity != 3 {
		t.Fatalf("failed batch must roll back, got quantity %d", storedMouse.Quantity)
	}
}

func TestOrderRepository_PostgresCreateGetList(t *testing.T) {
	db := newCheckoutDB(t)
	repo := db.orders
	ctx := context.Background()
	now := time.Now().UTC().Round(time.Microsecond)

	customer, keyboard, _ := db.seedCatalog(t, now)

	older := sampleOrder("order-1", customer.ID, keyboard.ID, now.Add(-time.Minute))
	newer := sampleOrder("order-2", customer.ID, keyboard.ID, now)
	for _, o := range []domain.Order{older, newer} {
		if err := repo.Create(ctx, o); err != nil {
			t.Fatalf("create %s: %v", o.ID, err)
		}
	}

	got, err := repo.Get(ctx, older.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got.Customer.Email != customer.Email {
		t.Fatalf("expected joined customer, got %+v", got.Customer)
	}
	if len(got.Items) != 1 || got.Items[0].ProductID != keyboard.ID {
		t.Fatalf("unexpected items: %+v", got.Items)
	}

	listed, err := repo.ListByCustomer(ctx, customer.ID, 1)
	if err != nil {
		t.Fatalf("list with limit: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != newer.ID {
		t.Fatalf("unexpected list result: %+v", listed)
	}

	if err := repo.Create(ctx, older); !errors.Is(err, domain.ErrOrderAlreadyExists) {
		t.Fatalf("expected ErrOrderAlreadyExists, got %v", err)
	}
	if _, err := repo.Get(ctx, "missing-order"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepository_PostgresCreateIsAtomic(t *testing.T) {
	db := newCheckoutDB(t)
	repo := db.orders
	ctx := context.Background()
	now := time.Now().UTC().Round(time.Microsecond)

	customer, keyboard, _ := db.seedCatalog(t, now)

	broken := sampleOrder("order-broken", customer.ID, "no-such-product", now)
	if err := repo.Create(ctx, broken); err == nil {
		t.Fatal("expected foreign key error for unknown product")
	}
	if _, err := repo.Get(ctx, broken.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("order header must be rolled back, got %v", err)
	}
	if n := db.countRows(t, "order_items"); n != 0 {
		t.Fatalf("order lines must be rolled back, got %d rows", n)
	}
	if stock := db.stockOf(t, keyboard.ID); stock != keyboard.Quantity {
		t.Fatalf("order insert must not touch stock, got %d", stock)
	}
}

func TestOutboxRepository_PostgresFlow(t *testing.T) {
	db := newCheckoutDB(t)
	repo := db.outbox
	ctx := context.Background()

	stored, err := repo.Enqueue(ctx, domain.OutboxMessage{
		AggregateType: "order",
		AggregateID:   "order-1",
		EventType:     "order.created",
		Payload:       []byte(`{"order_id":"order-1"}`),
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if stored.ID == "" {
		t.Fatal("expected generated id")
	}

	pending, err := repo.PullPending(ctx, 0)
	if err != nil || len(pending) != 1 {
		t.Fatalf("pull pending: %v, %d", err, len(pending))
	}

	stats, err := repo.Stats(ctx)
	if err != nil || stats.PendingCount != 1 || stats.OldestPendingAt.IsZero() {
		t.Fatalf("unexpected stats: %+v, %v", stats, err)
	}

	if err := repo.MarkSent(ctx, stored.ID); err != nil {
		t.Fatalf("mark sent: %v", err)
	}
	if err := repo.MarkFailed(ctx, "missing-outbox"); !errors.Is(err, domain.ErrOutboxPublish) {
		t.Fatalf("expected ErrOutboxPublish, got %v", err)
	}

	after, err := repo.PullPending(ctx, 10)
	if err != nil || len(after) != 0 {
		t.Fatalf("expected empty backlog: %v, %d", err, len(after))
	}
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository создаёт PostgreSQL-реализацию CustomerRepository.
func NewCustomerRepository(store *Store) domain.CustomerRepository {
	return &customerRepository{db: store.DB()}
}

func (r *customerRepository) Create(ctx context.Context, customer domain.Customer) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, email, created_at)
		VALUES ($1, $2, $3, $4)
	`, customer.ID, customer.Name, customer.Email, customer.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCustomerAlreadyExists
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id string) (domain.Customer, error) {
	return r.findOne(ctx, `SELECT id, name, email, created_at FROM customers WHERE id = $1`, id)
}

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (domain.Customer, error) {
	return r.findOne(ctx, `SELECT id, name, email, created_at FROM customers WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *customerRepository) findOne(ctx context.Context, query string, arg string) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var c domain.Customer
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("select customer: %w", err)
	}
	return c, nil
}

var _ domain.CustomerRepository = (*customerRepository)(nil)

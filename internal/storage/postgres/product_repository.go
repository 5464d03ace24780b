package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

const productColumns = `id, name, price_minor, quantity, created_at, updated_at`

type productRepository struct {
	store *Store
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{store: store}
}

func (r *productRepository) Create(ctx context.Context, product domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.store.DB().ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, product.ID, product.Name, product.PriceMinor, product.Quantity, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProductAlreadyExists
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	return r.findOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (r *productRepository) FindByName(ctx context.Context, name string) (domain.Product, error) {
	return r.findOne(ctx, `SELECT `+productColumns+` FROM products WHERE name = $1`, name)
}

// FindAllByID выбирает товары одним запросом; отсутствующие id просто не попадают в результат.
func (r *productRepository) FindAllByID(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.store.DB().QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0, len(ids))
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.PriceMinor, &p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}
	return products, nil
}

// SaveQuantities обновляет остатки всех товаров в одной транзакции.
func (r *productRepository) SaveQuantities(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.store.withTx(ctx, func(tx *sql.Tx) error {
		for _, p := range products {
			updatedAt := p.UpdatedAt
			if updatedAt.IsZero() {
				updatedAt = time.Now().UTC()
			}
			res, err := tx.ExecContext(ctx, `
				UPDATE products
				SET quantity = $2,
				    updated_at = $3
				WHERE id = $1
			`, p.ID, p.Quantity, updatedAt)
			if err != nil {
				return fmt.Errorf("update product %s quantity: %w", p.ID, err)
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("rows affected for product %s: %w", p.ID, err)
			}
			if affected == 0 {
				return fmt.Errorf("%w: %s", domain.ErrProductNotFound, p.ID)
			}
		}
		return nil
	})
}

func (r *productRepository) findOne(ctx context.Context, query, arg string) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var p domain.Product
	err := r.store.DB().QueryRowContext(ctx, query, arg).
		Scan(&p.ID, &p.Name, &p.PriceMinor, &p.Quantity, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}
	return p, nil
}

var _ domain.ProductRepository = (*productRepository)(nil)

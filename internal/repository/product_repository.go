package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tedytech/backoffice-service/internal/domain"
)

// ProductRepository exposes reads over the products collection, including
// the batched point lookup the demand ranker uses.
type ProductRepository interface {
	ListActive(ctx context.Context) ([]domain.Product, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository instantiates repository.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

const productColumns = `id, phone_type, stock_quantity, low_stock_threshold, is_archived, created_at, updated_at`

func (r *productRepository) ListActive(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_archived = FALSE`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	result := make(map[string]domain.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		result[p.ID] = p
	}
	return result, nil
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID,
			&p.PhoneType,
			&p.StockQuantity,
			&p.LowStockThreshold,
			&p.IsArchived,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

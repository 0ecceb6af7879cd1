package postgres

import (
	"context"
	"database/sql"
	"errors"

	"commerceregistrations/internal/domain"
)

type productRepository struct {
	DB *sql.DB
}

func NewProductRepository(db *sql.DB) domain.ProductRepository {
	return &productRepository{
		DB: db,
	}
}

func (r *productRepository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT id, title FROM products WHERE id = $1`
	product := &domain.Product{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&product.ID, &product.Title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (r *productRepository) GetVariation(ctx context.Context, id int64) (*domain.ProductVariation, error) {
	query := `
		SELECT id, product_id, type_id, sku, title
		FROM product_variations
		WHERE id = $1
	`
	variation := &domain.ProductVariation{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&variation.ID, &variation.ProductID, &variation.TypeID, &variation.SKU, &variation.Title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return variation, nil
}

func (r *productRepository) GetVariationType(ctx context.Context, id string) (*domain.VariationType, error) {
	query := `SELECT id, label FROM product_variation_types WHERE id = $1`
	vt := &domain.VariationType{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&vt.ID, &vt.Label)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return vt, nil
}

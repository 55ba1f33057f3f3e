package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/st4l1nR/nike-api/internal/apperr"
	"github.com/st4l1nR/nike-api/internal/domain/catalog"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// ProductWithOptions loads a product with its options and each option's
// values, both in stored order.
func (r *Repo) ProductWithOptions(ctx context.Context, id int64) (catalog.Product, error) {
	var p catalog.Product
	err := r.db.QueryRow(ctx, `
		SELECT id, category_id, name, COALESCE(description,''), price, COALESCE(image_url,''),
		       is_active, created_at, updated_at
		FROM products
		WHERE id = $1
	`, id).Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Product{}, apperr.NotFound("product %d not found", id)
	}
	if err != nil {
		return catalog.Product{}, err
	}

	opts, err := r.optionsForProduct(ctx, p.ID)
	if err != nil {
		return catalog.Product{}, err
	}
	p.Options = opts
	return p, nil
}

func (r *Repo) optionsForProduct(ctx context.Context, productID int64) ([]catalog.Option, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, name, position
		FROM product_options
		WHERE product_id = $1
		ORDER BY position ASC, id ASC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opts []catalog.Option
	var optIDs []int64
	for rows.Next() {
		var o catalog.Option
		if err := rows.Scan(&o.ID, &o.ProductID, &o.Name, &o.Position); err != nil {
			return nil, err
		}
		opts = append(opts, o)
		optIDs = append(optIDs, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(opts) == 0 {
		return opts, nil
	}

	vrows, err := r.db.Query(ctx, `
		SELECT id, option_id, name, position
		FROM product_option_values
		WHERE option_id = ANY($1)
		ORDER BY position ASC, id ASC
	`, optIDs)
	if err != nil {
		return nil, err
	}
	defer vrows.Close()

	byOption := make(map[int64][]catalog.OptionValue, len(opts))
	for vrows.Next() {
		var v catalog.OptionValue
		if err := vrows.Scan(&v.ID, &v.OptionID, &v.Name, &v.Position); err != nil {
			return nil, err
		}
		byOption[v.OptionID] = append(byOption[v.OptionID], v)
	}
	if err := vrows.Err(); err != nil {
		return nil, err
	}

	for i := range opts {
		opts[i].Values = byOption[opts[i].ID]
	}
	return opts, nil
}

// CreateVariants persists all generated variants in one transaction.
func (r *Repo) CreateVariants(ctx context.Context, variants []catalog.Variant) ([]catalog.Variant, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	out := make([]catalog.Variant, 0, len(variants))
	for _, v := range variants {
		err := tx.QueryRow(ctx, `
			INSERT INTO product_variants (product_id, name, price, selected_options)
			VALUES ($1,$2,$3,$4)
			RETURNING id, created_at, updated_at
		`, v.ProductID, v.Name, v.Price, v.SelectedOptions).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("variant insert failed: %w", err)
		}
		out = append(out, v)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

type CreateProductInput struct {
	CategoryID  int64
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	CreatedBy   int64

	Options []CreateOptionInput
}

type CreateOptionInput struct {
	Name   string
	Values []string
}

func (r *Repo) CreateProduct(ctx context.Context, in CreateProductInput) (catalog.Product, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return catalog.Product{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var p catalog.Product
	err = tx.QueryRow(ctx, `
		INSERT INTO products (category_id, name, description, price, image_url, created_by, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,true)
		RETURNING id, category_id, name, COALESCE(description,''), price, COALESCE(image_url,''),
		          is_active, created_by, created_at, updated_at
	`, in.CategoryID, in.Name, in.Description, in.Price, in.ImageURL, in.CreatedBy).Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
		&p.IsActive, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return catalog.Product{}, err
	}

	for pos, o := range in.Options {
		var opt catalog.Option
		err := tx.QueryRow(ctx, `
			INSERT INTO product_options (product_id, name, position)
			VALUES ($1,$2,$3)
			RETURNING id, product_id, name, position
		`, p.ID, o.Name, pos).Scan(&opt.ID, &opt.ProductID, &opt.Name, &opt.Position)
		if err != nil {
			return catalog.Product{}, fmt.Errorf("option insert failed: %w", err)
		}

		for vpos, name := range o.Values {
			var val catalog.OptionValue
			err := tx.QueryRow(ctx, `
				INSERT INTO product_option_values (option_id, name, position)
				VALUES ($1,$2,$3)
				RETURNING id, option_id, name, position
			`, opt.ID, name, vpos).Scan(&val.ID, &val.OptionID, &val.Name, &val.Position)
			if err != nil {
				return catalog.Product{}, fmt.Errorf("option value insert failed: %w", err)
			}
			opt.Values = append(opt.Values, val)
		}
		p.Options = append(p.Options, opt)
	}

	if err := tx.Commit(ctx); err != nil {
		return catalog.Product{}, err
	}
	return p, nil
}

func (r *Repo) ListPublic(ctx context.Context, categorySlug *string) ([]catalog.Product, error) {
	q := `
		SELECT
		  p.id, p.category_id, p.name, COALESCE(p.description,''), p.price, COALESCE(p.image_url,''),
		  p.is_active, p.created_at, p.updated_at,
		  c.name as category_name
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.is_active = true AND c.is_active = true
	`
	args := []any{}
	if categorySlug != nil && *categorySlug != "" {
		q += " AND c.slug = $1 "
		args = append(args, *categorySlug)
	}
	q += " ORDER BY p.created_at DESC "

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Product
	for rows.Next() {
		var p catalog.Product
		if err := rows.Scan(
			&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
			&p.Category,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetPublic loads a product with its options, values and generated variants.
func (r *Repo) GetPublic(ctx context.Context, id int64) (catalog.Product, error) {
	var p catalog.Product
	err := r.db.QueryRow(ctx, `
		SELECT
		  p.id, p.category_id, p.name, COALESCE(p.description,''), p.price, COALESCE(p.image_url,''),
		  p.is_active, p.created_at, p.updated_at,
		  c.name as category_name
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1 AND p.is_active = true AND c.is_active = true
	`, id).Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		&p.Category,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Product{}, apperr.NotFound("product %d not found", id)
	}
	if err != nil {
		return catalog.Product{}, err
	}

	opts, err := r.optionsForProduct(ctx, p.ID)
	if err != nil {
		return catalog.Product{}, err
	}
	p.Options = opts

	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, name, price, selected_options, created_at, updated_at
		FROM product_variants
		WHERE product_id = $1
		ORDER BY id ASC
	`, p.ID)
	if err != nil {
		return catalog.Product{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var v catalog.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.Price, &v.SelectedOptions, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return catalog.Product{}, err
		}
		p.Variants = append(p.Variants, v)
	}
	return p, rows.Err()
}

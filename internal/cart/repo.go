package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/st4l1nR/nike-api/internal/apperr"
	"github.com/st4l1nR/nike-api/internal/domain/cart"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context) (cart.Cart, error) {
	var c cart.Cart
	err := r.db.QueryRow(ctx, `
		INSERT INTO carts (total, version)
		VALUES (0, 0)
		RETURNING id, total, version, created_at, updated_at
	`).Scan(&c.ID, &c.Total, &c.Version, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return cart.Cart{}, err
	}
	c.Items = []cart.CartItem{}
	return c, nil
}

// Get loads a cart with its items, each item's product and variant populated.
func (r *Repo) Get(ctx context.Context, id int64) (cart.Cart, error) {
	var c cart.Cart
	err := r.db.QueryRow(ctx, `
		SELECT id, total, version, created_at, updated_at
		FROM carts
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Total, &c.Version, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return cart.Cart{}, apperr.NotFound("cart %d not found", id)
	}
	if err != nil {
		return cart.Cart{}, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT
		  ci.id, ci.quantity, ci.price, COALESCE(ci.image_url,''),
		  p.id, p.name, p.price,
		  v.id, v.name, v.price, v.selected_options
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		LEFT JOIN product_variants v ON v.id = ci.variant_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id ASC
	`, id)
	if err != nil {
		return cart.Cart{}, err
	}
	defer rows.Close()

	c.Items = []cart.CartItem{}
	for rows.Next() {
		var it cart.CartItem
		var vID *int64
		var vName *string
		var vPrice *decimal.Decimal
		var vOpts map[string]string
		if err := rows.Scan(
			&it.ID, &it.Quantity, &it.Price, &it.ImageURL,
			&it.Product.ID, &it.Product.Name, &it.Product.Price,
			&vID, &vName, &vPrice, &vOpts,
		); err != nil {
			return cart.Cart{}, err
		}
		if vID != nil {
			it.Variant = &cart.VariantRef{ID: *vID, Name: *vName, Price: *vPrice, SelectedOptions: vOpts}
		}
		c.Items = append(c.Items, it)
	}
	return c, rows.Err()
}

// Change is the delta a mutation wants persisted. Version is the version the
// mutation was computed against; the save fails with a concurrency conflict
// when another writer got there first.
type Change struct {
	Total     decimal.Decimal
	Version   int
	Upserts   []cart.CartItem // ID == 0 means insert
	DeleteIDs []int64
	DeleteAll bool
}

// Save applies a change in one transaction, guarded by optimistic locking on
// carts.version.
func (r *Repo) Save(ctx context.Context, cartID int64, ch Change) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ct, err := tx.Exec(ctx, `
		UPDATE carts
		SET total = $2, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $3
	`, cartID, ch.Total, ch.Version)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM carts WHERE id=$1)`, cartID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("cart %d not found", cartID)
		}
		return apperr.Conflict("cart %d was modified concurrently, retry", cartID)
	}

	if ch.DeleteAll {
		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, cartID); err != nil {
			return err
		}
	}
	for _, id := range ch.DeleteIDs {
		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1 AND id=$2`, cartID, id); err != nil {
			return err
		}
	}
	for _, it := range ch.Upserts {
		if it.ID == 0 {
			var variantID *int64
			if it.Variant != nil {
				variantID = &it.Variant.ID
			}
			_, err := tx.Exec(ctx, `
				INSERT INTO cart_items (cart_id, product_id, variant_id, quantity, price, image_url)
				VALUES ($1,$2,$3,$4,$5,$6)
			`, cartID, it.Product.ID, variantID, it.Quantity, it.Price, nullIfEmpty(it.ImageURL))
			if err != nil {
				return err
			}
			continue
		}
		_, err := tx.Exec(ctx, `
			UPDATE cart_items
			SET quantity = $3, updated_at = now()
			WHERE cart_id = $1 AND id = $2
		`, cartID, it.ID, it.Quantity)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

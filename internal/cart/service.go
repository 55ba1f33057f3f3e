package cart

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/st4l1nR/nike-api/internal/apperr"
	"github.com/st4l1nR/nike-api/internal/domain/cart"
)

// Repository is what cart mutations need from storage.
type Repository interface {
	Create(ctx context.Context) (cart.Cart, error)
	Get(ctx context.Context, id int64) (cart.Cart, error)
	Save(ctx context.Context, cartID int64, ch Change) error
}

type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// NewItem is the caller-supplied line for AddItem.
type NewItem struct {
	ProductID int64
	VariantID *int64
	Quantity  int
	Price     decimal.Decimal
	ImageURL  string
}

func (s *Service) Create(ctx context.Context) (cart.Cart, error) {
	return s.repo.Create(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (cart.Cart, error) {
	return s.repo.Get(ctx, id)
}

// AddItem merges the new item into an existing line matching it by
// (product, variant) or appends it as a new line, and bumps the running
// total by round(price * quantity, 2).
func (s *Service) AddItem(ctx context.Context, cartID int64, in NewItem) (cart.Cart, error) {
	if in.Quantity <= 0 {
		return cart.Cart{}, apperr.InvalidInput("quantity must be positive")
	}
	if in.Price.IsNegative() {
		return cart.Cart{}, apperr.InvalidInput("price must not be negative")
	}

	c, err := s.repo.Get(ctx, cartID)
	if err != nil {
		return cart.Cart{}, err
	}

	var line cart.CartItem
	merged := false
	for i := range c.Items {
		if c.Items[i].SameLine(in.ProductID, in.VariantID) {
			c.Items[i].Quantity += in.Quantity
			line = c.Items[i]
			merged = true
			break
		}
	}
	if !merged {
		line = cart.CartItem{
			Quantity: in.Quantity,
			Price:    in.Price,
			ImageURL: in.ImageURL,
			Product:  cart.ProductRef{ID: in.ProductID},
		}
		if in.VariantID != nil {
			line.Variant = &cart.VariantRef{ID: *in.VariantID}
		}
	}

	added := in.Price.Mul(decimal.NewFromInt(int64(in.Quantity))).Round(2)
	ch := Change{
		Total:   c.Total.Add(added),
		Version: c.Version,
		Upserts: []cart.CartItem{line},
	}
	if err := s.repo.Save(ctx, cartID, ch); err != nil {
		return cart.Cart{}, err
	}

	s.log.Debug("cart item added",
		zap.Int64("cart_id", cartID),
		zap.Int64("product_id", in.ProductID),
		zap.Bool("merged", merged))
	return s.repo.Get(ctx, cartID)
}

// UpdateItem replaces a line's quantity, swapping its old contribution to
// the total for the new one.
func (s *Service) UpdateItem(ctx context.Context, cartID, itemID int64, quantity int) (cart.Cart, error) {
	if quantity <= 0 {
		return cart.Cart{}, apperr.InvalidInput("quantity must be positive")
	}

	c, err := s.repo.Get(ctx, cartID)
	if err != nil {
		return cart.Cart{}, err
	}

	item, ok := findItem(c.Items, itemID)
	if !ok {
		return cart.Cart{}, apperr.NotFound("cart item %d not found in cart %d", itemID, cartID)
	}

	total := c.Total.Sub(item.LineTotal())
	item.Quantity = quantity
	total = total.Add(item.LineTotal())

	ch := Change{
		Total:   total,
		Version: c.Version,
		Upserts: []cart.CartItem{item},
	}
	if err := s.repo.Save(ctx, cartID, ch); err != nil {
		return cart.Cart{}, err
	}
	return s.repo.Get(ctx, cartID)
}

// DeleteItem removes a line and subtracts its contribution from the total.
func (s *Service) DeleteItem(ctx context.Context, cartID, itemID int64) (cart.Cart, error) {
	c, err := s.repo.Get(ctx, cartID)
	if err != nil {
		return cart.Cart{}, err
	}

	item, ok := findItem(c.Items, itemID)
	if !ok {
		return cart.Cart{}, apperr.NotFound("cart item %d not found in cart %d", itemID, cartID)
	}

	ch := Change{
		Total:     c.Total.Sub(item.LineTotal()),
		Version:   c.Version,
		DeleteIDs: []int64{itemID},
	}
	if err := s.repo.Save(ctx, cartID, ch); err != nil {
		return cart.Cart{}, err
	}
	return s.repo.Get(ctx, cartID)
}

// Empty removes every line and resets the total to zero.
func (s *Service) Empty(ctx context.Context, cartID int64) (cart.Cart, error) {
	c, err := s.repo.Get(ctx, cartID)
	if err != nil {
		return cart.Cart{}, err
	}

	ch := Change{
		Total:     decimal.Zero,
		Version:   c.Version,
		DeleteAll: true,
	}
	if err := s.repo.Save(ctx, cartID, ch); err != nil {
		return cart.Cart{}, err
	}
	return s.repo.Get(ctx, cartID)
}

func findItem(items []cart.CartItem, itemID int64) (cart.CartItem, bool) {
	for _, it := range items {
		if it.ID == itemID {
			return it, true
		}
	}
	return cart.CartItem{}, false
}

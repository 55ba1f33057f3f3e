package gql

import (
	"context"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/shopspring/decimal"

	"github.com/st4l1nR/nike-api/internal/apperr"
	cartsvc "github.com/st4l1nR/nike-api/internal/cart"
	"github.com/st4l1nR/nike-api/internal/domain/cart"
	"github.com/st4l1nR/nike-api/internal/payment"
)

// CartService is the cart mutation surface the resolvers need.
type CartService interface {
	Create(ctx context.Context) (cart.Cart, error)
	Get(ctx context.Context, id int64) (cart.Cart, error)
	AddItem(ctx context.Context, cartID int64, in cartsvc.NewItem) (cart.Cart, error)
	UpdateItem(ctx context.Context, cartID, itemID int64, quantity int) (cart.Cart, error)
	DeleteItem(ctx context.Context, cartID, itemID int64) (cart.Cart, error)
	Empty(ctx context.Context, cartID int64) (cart.Cart, error)
}

// PaymentService creates provider payment intents.
type PaymentService interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal, currency string) (payment.Intent, error)
}

type Resolver struct {
	carts    CartService
	payments PaymentService
	currency string
}

func NewResolver(carts CartService, payments PaymentService, currency string) *Resolver {
	return &Resolver{carts: carts, payments: payments, currency: currency}
}

// MustSchema parses the schema against the resolver; panics on mismatch.
func MustSchema(r *Resolver) *graphql.Schema {
	return graphql.MustParseSchema(Schema, r)
}

// Handler mounts the GraphQL endpoint on gin.
func Handler(schema *graphql.Schema) gin.HandlerFunc {
	return gin.WrapH(&relay.Handler{Schema: schema})
}

func parseID(id graphql.ID, what string) (int64, error) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return 0, apperr.InvalidInput("invalid %s id %q", what, string(id))
	}
	return n, nil
}

func (r *Resolver) Cart(ctx context.Context, args struct{ ID graphql.ID }) (*CartResolver, error) {
	id, err := parseID(args.ID, "cart")
	if err != nil {
		return nil, err
	}
	c, err := r.carts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CartResolver{c: c}, nil
}

func (r *Resolver) CreateCart(ctx context.Context) (*CartResolver, error) {
	c, err := r.carts.Create(ctx)
	if err != nil {
		return nil, err
	}
	return &CartResolver{c: c}, nil
}

type CartItemInput struct {
	Product  graphql.ID
	Variant  *graphql.ID
	Quantity int32
	Price    float64
	Image    *string
}

func (r *Resolver) AddCartItem(ctx context.Context, args struct {
	ID       graphql.ID
	CartItem CartItemInput
}) (*CartResolver, error) {
	cartID, err := parseID(args.ID, "cart")
	if err != nil {
		return nil, err
	}
	productID, err := parseID(args.CartItem.Product, "product")
	if err != nil {
		return nil, err
	}

	in := cartsvc.NewItem{
		ProductID: productID,
		Quantity:  int(args.CartItem.Quantity),
		Price:     decimal.NewFromFloat(args.CartItem.Price).Round(2),
	}
	if args.CartItem.Variant != nil {
		variantID, err := parseID(*args.CartItem.Variant, "variant")
		if err != nil {
			return nil, err
		}
		in.VariantID = &variantID
	}
	if args.CartItem.Image != nil {
		in.ImageURL = *args.CartItem.Image
	}

	c, err := r.carts.AddItem(ctx, cartID, in)
	if err != nil {
		return nil, err
	}
	return &CartResolver{c: c}, nil
}

func (r *Resolver) DeleteCartItem(ctx context.Context, args struct {
	ID         graphql.ID
	CartItemID graphql.ID
}) (*CartResolver, error) {
	cartID, err := parseID(args.ID, "cart")
	if err != nil {
		return nil, err
	}
	itemID, err := parseID(args.CartItemID, "cart item")
	if err != nil {
		return nil, err
	}
	c, err := r.carts.DeleteItem(ctx, cartID, itemID)
	if err != nil {
		return nil, err
	}
	return &CartResolver{c: c}, nil
}

func (r *Resolver) UpdateCartItem(ctx context.Context, args struct {
	ID         graphql.ID
	CartItemID graphql.ID
	Quantity   int32
}) (*CartResolver, error) {
	cartID, err := parseID(args.ID, "cart")
	if err != nil {
		return nil, err
	}
	itemID, err := parseID(args.CartItemID, "cart item")
	if err != nil {
		return nil, err
	}
	c, err := r.carts.UpdateItem(ctx, cartID, itemID, int(args.Quantity))
	if err != nil {
		return nil, err
	}
	return &CartResolver{c: c}, nil
}

func (r *Resolver) EmptyCart(ctx context.Context, args struct{ ID graphql.ID }) (*CartResolver, error) {
	cartID, err := parseID(args.ID, "cart")
	if err != nil {
		return nil, err
	}
	c, err := r.carts.Empty(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return &CartResolver{c: c}, nil
}

func (r *Resolver) CreatePaymentIntent(ctx context.Context, args struct{ Amount float64 }) (*PaymentIntentResolver, error) {
	if args.Amount <= 0 {
		return nil, apperr.InvalidInput("amount must be positive")
	}
	intent, err := r.payments.CreateIntent(ctx, decimal.NewFromFloat(args.Amount), r.currency)
	if err != nil {
		return nil, err
	}
	return &PaymentIntentResolver{intent: intent}, nil
}

type CartResolver struct {
	c cart.Cart
}

func (r *CartResolver) ID() graphql.ID {
	return graphql.ID(strconv.FormatInt(r.c.ID, 10))
}

func (r *CartResolver) Total() float64 {
	f, _ := r.c.Total.Float64()
	return f
}

func (r *CartResolver) Items() []*CartItemResolver {
	out := make([]*CartItemResolver, 0, len(r.c.Items))
	for _, it := range r.c.Items {
		out = append(out, &CartItemResolver{it: it})
	}
	return out
}

type CartItemResolver struct {
	it cart.CartItem
}

func (r *CartItemResolver) ID() graphql.ID {
	return graphql.ID(strconv.FormatInt(r.it.ID, 10))
}

func (r *CartItemResolver) Quantity() int32 {
	return int32(r.it.Quantity)
}

func (r *CartItemResolver) Price() float64 {
	f, _ := r.it.Price.Float64()
	return f
}

func (r *CartItemResolver) Image() *string {
	if r.it.ImageURL == "" {
		return nil
	}
	url := r.it.ImageURL
	return &url
}

func (r *CartItemResolver) Product() *ProductResolver {
	return &ProductResolver{p: r.it.Product}
}

func (r *CartItemResolver) Variant() *VariantResolver {
	if r.it.Variant == nil {
		return nil
	}
	return &VariantResolver{v: *r.it.Variant}
}

type ProductResolver struct {
	p cart.ProductRef
}

func (r *ProductResolver) ID() graphql.ID {
	return graphql.ID(strconv.FormatInt(r.p.ID, 10))
}

func (r *ProductResolver) Name() string { return r.p.Name }

func (r *ProductResolver) Price() float64 {
	f, _ := r.p.Price.Float64()
	return f
}

type VariantResolver struct {
	v cart.VariantRef
}

func (r *VariantResolver) ID() graphql.ID {
	return graphql.ID(strconv.FormatInt(r.v.ID, 10))
}

func (r *VariantResolver) Name() string { return r.v.Name }

func (r *VariantResolver) Price() float64 {
	f, _ := r.v.Price.Float64()
	return f
}

func (r *VariantResolver) SelectedOptions() []*SelectedOptionResolver {
	names := make([]string, 0, len(r.v.SelectedOptions))
	for name := range r.v.SelectedOptions {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*SelectedOptionResolver, 0, len(names))
	for _, name := range names {
		out = append(out, &SelectedOptionResolver{name: name, value: r.v.SelectedOptions[name]})
	}
	return out
}

type SelectedOptionResolver struct {
	name, value string
}

func (r *SelectedOptionResolver) Name() string  { return r.name }
func (r *SelectedOptionResolver) Value() string { return r.value }

type PaymentIntentResolver struct {
	intent payment.Intent
}

func (r *PaymentIntentResolver) ClientSecret() string {
	return r.intent.ClientSecret
}

package gql

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/st4l1nR/nike-api/internal/apperr"
	cartsvc "github.com/st4l1nR/nike-api/internal/cart"
	"github.com/st4l1nR/nike-api/internal/domain/cart"
	"github.com/st4l1nR/nike-api/internal/payment"
)

type fakeCarts struct {
	cart cart.Cart
	err  error

	addCartID int64
	added     *cartsvc.NewItem
	updated   *struct {
		CartID, ItemID int64
		Quantity       int
	}
	deleted *struct{ CartID, ItemID int64 }
	emptied *int64
}

func (f *fakeCarts) Create(ctx context.Context) (cart.Cart, error) {
	return f.cart, f.err
}

func (f *fakeCarts) Get(ctx context.Context, id int64) (cart.Cart, error) {
	return f.cart, f.err
}

func (f *fakeCarts) AddItem(ctx context.Context, cartID int64, in cartsvc.NewItem) (cart.Cart, error) {
	f.addCartID = cartID
	f.added = &in
	return f.cart, f.err
}

func (f *fakeCarts) UpdateItem(ctx context.Context, cartID, itemID int64, quantity int) (cart.Cart, error) {
	f.updated = &struct {
		CartID, ItemID int64
		Quantity       int
	}{cartID, itemID, quantity}
	return f.cart, f.err
}

func (f *fakeCarts) DeleteItem(ctx context.Context, cartID, itemID int64) (cart.Cart, error) {
	f.deleted = &struct{ CartID, ItemID int64 }{cartID, itemID}
	return f.cart, f.err
}

func (f *fakeCarts) Empty(ctx context.Context, cartID int64) (cart.Cart, error) {
	f.emptied = &cartID
	return f.cart, f.err
}

type fakePayments struct {
	amount   decimal.Decimal
	currency string
	intent   payment.Intent
	err      error
}

func (f *fakePayments) CreateIntent(ctx context.Context, amount decimal.Decimal, currency string) (payment.Intent, error) {
	f.amount = amount
	f.currency = currency
	return f.intent, f.err
}

func sampleCart() cart.Cart {
	variantID := int64(4)
	return cart.Cart{
		ID:    1,
		Total: decimal.RequireFromString("30.00"),
		Items: []cart.CartItem{
			{
				ID:       5,
				Quantity: 3,
				Price:    decimal.RequireFromString("10.00"),
				Product:  cart.ProductRef{ID: 10, Name: "Air Max", Price: decimal.RequireFromString("10.00")},
				Variant: &cart.VariantRef{
					ID:              variantID,
					Name:            "Red/S",
					Price:           decimal.RequireFromString("10.00"),
					SelectedOptions: map[string]string{"Size": "S", "Color": "Red"},
				},
			},
		},
	}
}

func TestSchemaParses(t *testing.T) {
	assert.NotPanics(t, func() {
		MustSchema(NewResolver(&fakeCarts{}, &fakePayments{}, "usd"))
	})
}

func TestAddCartItemMutation(t *testing.T) {
	carts := &fakeCarts{cart: sampleCart()}
	schema := MustSchema(NewResolver(carts, &fakePayments{}, "usd"))

	resp := schema.Exec(context.Background(), `
		mutation {
			addCartItem(id: "1", cartItem: {product: "10", variant: "4", quantity: 1, price: 10.0}) {
				id
				total
				items {
					id
					quantity
					product { id name }
					variant { id name selectedOptions { name value } }
				}
			}
		}
	`, "", nil)
	require.Empty(t, resp.Errors)

	require.NotNil(t, carts.added)
	assert.Equal(t, int64(1), carts.addCartID)
	assert.Equal(t, int64(10), carts.added.ProductID)
	require.NotNil(t, carts.added.VariantID)
	assert.Equal(t, int64(4), *carts.added.VariantID)
	assert.Equal(t, 1, carts.added.Quantity)
	assert.Equal(t, "10.00", carts.added.Price.StringFixed(2))

	var data struct {
		AddCartItem struct {
			ID    string  `json:"id"`
			Total float64 `json:"total"`
			Items []struct {
				ID       string `json:"id"`
				Quantity int32  `json:"quantity"`
				Product  struct {
					ID   string `json:"id"`
					Name string `json:"name"`
				} `json:"product"`
				Variant struct {
					ID              string `json:"id"`
					Name            string `json:"name"`
					SelectedOptions []struct {
						Name  string `json:"name"`
						Value string `json:"value"`
					} `json:"selectedOptions"`
				} `json:"variant"`
			} `json:"items"`
		} `json:"addCartItem"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "1", data.AddCartItem.ID)
	assert.Equal(t, 30.0, data.AddCartItem.Total)
	require.Len(t, data.AddCartItem.Items, 1)
	assert.Equal(t, "Air Max", data.AddCartItem.Items[0].Product.Name)
	assert.Equal(t, "Red/S", data.AddCartItem.Items[0].Variant.Name)
	// Options come back sorted by name.
	require.Len(t, data.AddCartItem.Items[0].Variant.SelectedOptions, 2)
	assert.Equal(t, "Color", data.AddCartItem.Items[0].Variant.SelectedOptions[0].Name)
	assert.Equal(t, "Red", data.AddCartItem.Items[0].Variant.SelectedOptions[0].Value)
}

func TestUpdateCartItemMutation(t *testing.T) {
	carts := &fakeCarts{cart: sampleCart()}
	schema := MustSchema(NewResolver(carts, &fakePayments{}, "usd"))

	resp := schema.Exec(context.Background(), `
		mutation { updateCartItem(id: "1", cartItemId: "5", quantity: 5) { id total } }
	`, "", nil)
	require.Empty(t, resp.Errors)
	require.NotNil(t, carts.updated)
	assert.Equal(t, int64(1), carts.updated.CartID)
	assert.Equal(t, int64(5), carts.updated.ItemID)
	assert.Equal(t, 5, carts.updated.Quantity)
}

func TestDeleteCartItemMutation(t *testing.T) {
	carts := &fakeCarts{cart: sampleCart()}
	schema := MustSchema(NewResolver(carts, &fakePayments{}, "usd"))

	resp := schema.Exec(context.Background(), `
		mutation { deleteCartItem(id: "1", cartItemId: "5") { id } }
	`, "", nil)
	require.Empty(t, resp.Errors)
	require.NotNil(t, carts.deleted)
	assert.Equal(t, int64(5), carts.deleted.ItemID)
}

func TestEmptyCartMutation(t *testing.T) {
	carts := &fakeCarts{cart: cart.Cart{ID: 1, Total: decimal.Zero, Items: []cart.CartItem{}}}
	schema := MustSchema(NewResolver(carts, &fakePayments{}, "usd"))

	resp := schema.Exec(context.Background(), `
		mutation { emptyCart(id: "1") { id total items { id } } }
	`, "", nil)
	require.Empty(t, resp.Errors)
	require.NotNil(t, carts.emptied)
	assert.JSONEq(t, `{"emptyCart":{"id":"1","total":0,"items":[]}}`, string(resp.Data))
}

func TestCreatePaymentIntentMutation(t *testing.T) {
	payments := &fakePayments{intent: payment.Intent{ID: "pi_1", ClientSecret: "pi_1_secret_abc"}}
	schema := MustSchema(NewResolver(&fakeCarts{}, payments, "usd"))

	resp := schema.Exec(context.Background(), `
		mutation { createPaymentIntent(amount: 25.5) { clientSecret } }
	`, "", nil)
	require.Empty(t, resp.Errors)
	assert.Equal(t, "usd", payments.currency)
	assert.Equal(t, "25.5", payments.amount.String())
	assert.JSONEq(t, `{"createPaymentIntent":{"clientSecret":"pi_1_secret_abc"}}`, string(resp.Data))
}

func TestCreatePaymentIntentRejectsNonPositiveAmount(t *testing.T) {
	schema := MustSchema(NewResolver(&fakeCarts{}, &fakePayments{}, "usd"))

	resp := schema.Exec(context.Background(), `
		mutation { createPaymentIntent(amount: -5.0) { clientSecret } }
	`, "", nil)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, apperr.CodeInvalidInput, resp.Errors[0].Extensions["code"])
}

func TestMutationErrorCarriesCode(t *testing.T) {
	carts := &fakeCarts{err: apperr.NotFound("cart 9 not found")}
	schema := MustSchema(NewResolver(carts, &fakePayments{}, "usd"))

	resp := schema.Exec(context.Background(), `
		mutation { emptyCart(id: "9") { id } }
	`, "", nil)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, apperr.CodeNotFound, resp.Errors[0].Extensions["code"])
	assert.Equal(t, "cart 9 not found", resp.Errors[0].Message)
}

func TestCartQuery(t *testing.T) {
	carts := &fakeCarts{cart: sampleCart()}
	schema := MustSchema(NewResolver(carts, &fakePayments{}, "usd"))

	resp := schema.Exec(context.Background(), `
		query { cart(id: "1") { id total } }
	`, "", nil)
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"cart":{"id":"1","total":30}}`, string(resp.Data))
}

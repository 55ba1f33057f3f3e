package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/st4l1nR/nike-api/internal/apperr"
	"github.com/st4l1nR/nike-api/internal/domain/catalog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ProductWithOptions(ctx context.Context, id int64) (catalog.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(catalog.Product), args.Error(1)
}

// CreateVariants echoes the input back on success, the way the real repo
// returns what it inserted.
func (m *MockRepository) CreateVariants(ctx context.Context, variants []catalog.Variant) ([]catalog.Variant, error) {
	args := m.Called(ctx, variants)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	return variants, nil
}

func option(id int64, name string, values ...string) catalog.Option {
	o := catalog.Option{ID: id, Name: name, Position: int(id)}
	for i, v := range values {
		o.Values = append(o.Values, catalog.OptionValue{ID: int64(i + 1), OptionID: id, Name: v, Position: i})
	}
	return o
}

func TestGenerateVariants_TwoByTwo(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, zap.NewNop())

	price := decimal.RequireFromString("49.99")
	repo.On("ProductWithOptions", mock.Anything, int64(7)).Return(catalog.Product{
		ID:    7,
		Name:  "Air Max",
		Price: price,
		Options: []catalog.Option{
			option(1, "Color", "Red", "Blue"),
			option(2, "Size", "S", "M"),
		},
	}, nil)
	repo.On("CreateVariants", mock.Anything, mock.Anything).Return(nil, nil)

	got, err := svc.GenerateVariants(context.Background(), 7)
	assert.NoError(t, err)
	assert.Len(t, got, 4)

	// First option varies slowest.
	names := []string{got[0].Name, got[1].Name, got[2].Name, got[3].Name}
	assert.Equal(t, []string{"Red/S", "Red/M", "Blue/S", "Blue/M"}, names)

	for _, v := range got {
		assert.Equal(t, int64(7), v.ProductID)
		assert.True(t, price.Equal(v.Price), "variant price must be copied from the product")
	}
	assert.Equal(t, map[string]string{"Color": "Red", "Size": "S"}, got[0].SelectedOptions)
	assert.Equal(t, map[string]string{"Color": "Blue", "Size": "M"}, got[3].SelectedOptions)

	repo.AssertExpectations(t)
}

func TestGenerateVariants_ZeroOptions(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, zap.NewNop())

	repo.On("ProductWithOptions", mock.Anything, int64(3)).Return(catalog.Product{
		ID:    3,
		Price: decimal.RequireFromString("10.00"),
	}, nil)

	got, err := svc.GenerateVariants(context.Background(), 3)
	assert.NoError(t, err)
	assert.Empty(t, got)
	repo.AssertNotCalled(t, "CreateVariants", mock.Anything, mock.Anything)
}

func TestGenerateVariants_OptionWithoutValues(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, zap.NewNop())

	repo.On("ProductWithOptions", mock.Anything, int64(3)).Return(catalog.Product{
		ID:    3,
		Price: decimal.RequireFromString("10.00"),
		Options: []catalog.Option{
			option(1, "Color", "Red", "Blue"),
			option(2, "Size"), // no values
		},
	}, nil)

	got, err := svc.GenerateVariants(context.Background(), 3)
	assert.NoError(t, err)
	assert.Empty(t, got)
	repo.AssertNotCalled(t, "CreateVariants", mock.Anything, mock.Anything)
}

func TestGenerateVariants_ThreeOptions(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, zap.NewNop())

	repo.On("ProductWithOptions", mock.Anything, int64(9)).Return(catalog.Product{
		ID:    9,
		Price: decimal.RequireFromString("5.00"),
		Options: []catalog.Option{
			option(1, "Color", "Red", "Blue"),
			option(2, "Size", "S", "M", "L"),
			option(3, "Material", "Mesh", "Leather"),
		},
	}, nil)
	repo.On("CreateVariants", mock.Anything, mock.Anything).Return(nil, nil)

	got, err := svc.GenerateVariants(context.Background(), 9)
	assert.NoError(t, err)
	assert.Len(t, got, 12)
	assert.Equal(t, "Red/S/Mesh", got[0].Name)
	assert.Equal(t, "Red/S/Leather", got[1].Name)
	assert.Equal(t, "Blue/L/Leather", got[11].Name)
}

func TestGenerateVariants_ProductNotFound(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, zap.NewNop())

	repo.On("ProductWithOptions", mock.Anything, int64(404)).
		Return(catalog.Product{}, apperr.NotFound("product 404 not found"))

	_, err := svc.GenerateVariants(context.Background(), 404)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestCombinations_Order(t *testing.T) {
	combos := combinations([]catalog.Option{
		option(1, "Color", "Red", "Blue"),
		option(2, "Size", "S", "M"),
	})
	assert.Equal(t, [][]string{
		{"Red", "S"},
		{"Red", "M"},
		{"Blue", "S"},
		{"Blue", "M"},
	}, combos)
}

func TestCombinations_Empty(t *testing.T) {
	assert.Nil(t, combinations(nil))
	assert.Nil(t, combinations([]catalog.Option{option(1, "Color")}))
}

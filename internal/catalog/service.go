package catalog

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/st4l1nR/nike-api/internal/domain/catalog"
)

// Repository is what the variant generator needs from storage.
type Repository interface {
	ProductWithOptions(ctx context.Context, id int64) (catalog.Product, error)
	CreateVariants(ctx context.Context, variants []catalog.Variant) ([]catalog.Variant, error)
}

type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// GenerateVariants computes the cartesian product of the product's option
// values and persists one variant per combination. Each variant is named by
// joining the chosen value names with "/" in option order, carries the
// product's price and a map from option name to chosen value name.
//
// A product with no options, or with any option that has no values,
// generates no variants.
func (s *Service) GenerateVariants(ctx context.Context, productID int64) ([]catalog.Variant, error) {
	p, err := s.repo.ProductWithOptions(ctx, productID)
	if err != nil {
		return nil, err
	}

	combos := combinations(p.Options)
	if len(combos) == 0 {
		s.log.Info("no variant combinations for product", zap.Int64("product_id", productID))
		return []catalog.Variant{}, nil
	}

	variants := make([]catalog.Variant, 0, len(combos))
	for _, combo := range combos {
		selected := make(map[string]string, len(combo))
		for i, value := range combo {
			selected[p.Options[i].Name] = value
		}
		variants = append(variants, catalog.Variant{
			ProductID:       p.ID,
			Name:            strings.Join(combo, "/"),
			Price:           p.Price,
			SelectedOptions: selected,
		})
	}

	created, err := s.repo.CreateVariants(ctx, variants)
	if err != nil {
		return nil, err
	}
	s.log.Info("generated variants",
		zap.Int64("product_id", productID),
		zap.Int("count", len(created)))
	return created, nil
}

// combinations enumerates the cartesian product of the options' value names.
// The first option varies slowest, so Color[Red,Blue] x Size[S,M] yields
// Red/S, Red/M, Blue/S, Blue/M. Empty input yields nothing: no options, or
// an option without values, means there is no combination to sell.
func combinations(options []catalog.Option) [][]string {
	if len(options) == 0 {
		return nil
	}
	total := 1
	for _, opt := range options {
		total *= len(opt.Values)
	}
	if total == 0 {
		return nil
	}

	combos := make([][]string, 0, total)
	idx := make([]int, len(options))
	for {
		combo := make([]string, len(options))
		for i, opt := range options {
			combo[i] = opt.Values[idx[i]].Name
		}
		combos = append(combos, combo)

		i := len(options) - 1
		for i >= 0 {
			idx[i]++
			if idx[i] < len(options[i].Values) {
				break
			}
			idx[i] = 0
			i--
		}
		if i < 0 {
			break
		}
	}
	return combos
}

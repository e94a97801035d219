package app

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const (
	DefaultLimit = 100
	MaxLimit     = 100

	allCategories = "all"
)

const (
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortNameAZ    = "name-az"
	SortNameZA    = "name-za"
	SortNewest    = "newest"
)

type ListQuery struct {
	Category string
	Sort     string
	Limit    int
}

type ListResult struct {
	Products []domain.Product
	// Total is the number of products returned.
	Total int
	// TotalCount is the size of the whole catalog.
	TotalCount int
}

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

// ListProducts takes the first Limit products of the catalog, then filters
// and sorts them. An unknown sort keeps catalog order.
func (s *Service) ListProducts(ctx context.Context, q ListQuery) (ListResult, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	products, totalCount, err := s.repo.List(ctx, limit)
	if err != nil {
		return ListResult{}, err
	}

	category := strings.TrimSpace(q.Category)
	if category != "" && category != allCategories {
		products = slices.DeleteFunc(products, func(p domain.Product) bool {
			return p.Category != category
		})
	}

	sortProducts(products, q.Sort)

	return ListResult{
		Products:   products,
		Total:      len(products),
		TotalCount: totalCount,
	}, nil
}

func sortProducts(products []domain.Product, by string) {
	switch by {
	case SortPriceLow:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return a.BasePrice.Cmp(b.BasePrice)
		})
	case SortPriceHigh:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return b.BasePrice.Cmp(a.BasePrice)
		})
	case SortNameAZ, SortNameZA:
		c := collate.New(language.English)
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			if by == SortNameZA {
				a, b = b, a
			}
			return c.CompareString(a.Title, b.Title)
		})
	case SortNewest:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return b.ContentID - a.ContentID
		})
	}
}

// Categories returns the distinct product categories in collation order.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	products, _, err := s.repo.List(ctx, MaxLimit)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	collate.New(language.English).SortStrings(out)
	return out, nil
}

func (s *Service) GetProduct(ctx context.Context, slug string) (domain.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.GetBySlug(ctx, slug)
}

// DefaultVariant is the product's first variant.
func (s *Service) DefaultVariant(ctx context.Context, slug string) (domain.Variant, error) {
	p, err := s.GetProduct(ctx, slug)
	if err != nil {
		return domain.Variant{}, err
	}
	if len(p.Variants) == 0 {
		return domain.Variant{}, ErrNotFound
	}
	return p.Variants[0], nil
}

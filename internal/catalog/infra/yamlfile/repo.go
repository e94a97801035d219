// Package yamlfile serves the catalog from a YAML file loaded at startup.
package yamlfile

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type imageRecord struct {
	URL    string `yaml:"url"`
	Label  string `yaml:"label"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type variantRecord struct {
	VariantName   string       `yaml:"variantName"`
	Details       string       `yaml:"details"`
	VariantSKU    string       `yaml:"variantSKU"`
	Color         string       `yaml:"color"`
	ColorName     string       `yaml:"colorName"`
	ColorHEX      string       `yaml:"colorHEX"`
	SizeTitle     string       `yaml:"sizeTitle"`
	SizeName      string       `yaml:"sizeName"`
	Price         string       `yaml:"price"`
	Image         *imageRecord `yaml:"image"`
	StockQuantity int          `yaml:"stockQuantity"`
}

type productRecord struct {
	ID            int             `yaml:"id"`
	Title         string          `yaml:"title"`
	SKU           string          `yaml:"sku"`
	Slug          string          `yaml:"slug"`
	Description   string          `yaml:"description"`
	BasePrice     string          `yaml:"basePrice"`
	Category      string          `yaml:"category"`
	FeaturedImage *imageRecord    `yaml:"featuredImage"`
	Variants      []variantRecord `yaml:"variants"`
}

type catalogFile struct {
	Products []productRecord `yaml:"products"`
}

// Repo is an immutable in-memory catalog.
type Repo struct {
	products []domain.Product
	bySlug   map[string]int
}

func Load(path string) (*Repo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Repo, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	r := &Repo{
		products: make([]domain.Product, 0, len(f.Products)),
		bySlug:   make(map[string]int, len(f.Products)),
	}
	for i, rec := range f.Products {
		p, err := toProduct(rec)
		if err != nil {
			return nil, fmt.Errorf("product %d (%s): %w", i, rec.Slug, err)
		}
		if _, dup := r.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("product %d: duplicate slug %q", i, p.Slug)
		}
		r.bySlug[p.Slug] = len(r.products)
		r.products = append(r.products, p)
	}
	return r, nil
}

func toProduct(rec productRecord) (domain.Product, error) {
	slug := strings.TrimSpace(rec.Slug)
	if slug == "" {
		return domain.Product{}, fmt.Errorf("missing slug")
	}

	base, err := parsePrice(rec.BasePrice)
	if err != nil {
		return domain.Product{}, fmt.Errorf("basePrice: %w", err)
	}

	p := domain.Product{
		ContentID:     rec.ID,
		Title:         rec.Title,
		SKU:           rec.SKU,
		Slug:          slug,
		Description:   rec.Description,
		BasePrice:     base,
		Category:      rec.Category,
		FeaturedImage: toImage(rec.FeaturedImage),
		Variants:      make([]domain.Variant, 0, len(rec.Variants)),
	}
	for j, v := range rec.Variants {
		price, err := parsePrice(v.Price)
		if err != nil {
			return domain.Product{}, fmt.Errorf("variant %d price: %w", j, err)
		}
		p.Variants = append(p.Variants, domain.Variant{
			VariantName:   v.VariantName,
			Details:       v.Details,
			VariantSKU:    v.VariantSKU,
			Color:         v.Color,
			ColorName:     v.ColorName,
			ColorHEX:      v.ColorHEX,
			Size:          domain.Size{Title: v.SizeTitle, Name: v.SizeName},
			Price:         price,
			Image:         toImage(v.Image),
			StockQuantity: v.StockQuantity,
		})
	}
	return p, nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("negative price %s", s)
	}
	return d, nil
}

func toImage(rec *imageRecord) *domain.Image {
	if rec == nil || rec.URL == "" {
		return nil
	}
	return &domain.Image{URL: rec.URL, Label: rec.Label, Width: rec.Width, Height: rec.Height}
}

func (r *Repo) List(_ context.Context, limit int) ([]domain.Product, int, error) {
	n := len(r.products)
	if limit >= 0 && limit < n {
		n = limit
	}
	return slices.Clone(r.products[:n]), len(r.products), nil
}

func (r *Repo) GetBySlug(_ context.Context, slug string) (domain.Product, error) {
	i, ok := r.bySlug[slug]
	if !ok {
		return domain.Product{}, app.ErrNotFound
	}
	return r.products[i], nil
}

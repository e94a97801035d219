package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/internal/cart/infra/memory"
	"github.com/dwikikusuma/storefront/internal/cart/infra/sqlite"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	cataloghttp "github.com/dwikikusuma/storefront/internal/catalog/infra/httpclient"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/dwikikusuma/storefront/internal/checkout/infra/adapter"
	checkouthttp "github.com/dwikikusuma/storefront/internal/checkout/infra/httpclient"
	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const customerIDKey = "customer_id"

// session is the state one command invocation works with.
type session struct {
	cfg config.Config
	out io.Writer

	dbPath    string
	apiURL    string
	ephemeral bool
	verbose   bool

	log   *zap.Logger
	kv    cartapp.Storage
	close func() error
	store *cartapp.Store
}

func (s *session) open(ctx context.Context) error {
	level := s.cfg.LogLevel
	if !s.verbose {
		level = "warn"
	}
	log, err := logger.New(logger.Options{Service: "storefront-cart", Env: s.cfg.AppEnv, Level: level})
	if err != nil {
		return err
	}
	s.log = log

	if s.ephemeral {
		s.kv = memory.NewKV()
		s.close = func() error { return nil }
	} else {
		kv, err := sqlite.Open(ctx, s.dbPath)
		if err != nil {
			return err
		}
		s.kv, s.close = kv, kv.Close
	}

	s.store = cartapp.NewStore(s.kv, log.Named("cart"))
	return s.store.Load(ctx)
}

func (s *session) release() {
	if s.store != nil {
		s.store.Close()
	}
	if s.close != nil {
		if err := s.close(); err != nil && s.log != nil {
			s.log.Warn("close cart storage", zap.Error(err))
		}
	}
	if s.log != nil {
		_ = s.log.Sync()
	}
}

func (s *session) catalog() *cataloghttp.Client {
	return cataloghttp.New(s.apiURL, s.cfg.HTTPClientTimeout)
}

func (s *session) checkout() *checkoutapp.Service {
	client := checkouthttp.New(s.apiURL, s.cfg.HTTPClientTimeout, s.log.Named("checkout"))
	return checkoutapp.NewService(adapter.NewCartStoreReader(s.store), client, client, s.log.Named("checkout"))
}

func run(ctx context.Context, cfg config.Config, args []string, out io.Writer) error {
	s := &session{cfg: cfg, out: out}
	defer s.release()

	root := newRootCmd(s)
	root.SetArgs(args)
	root.SetOut(out)
	return root.ExecuteContext(ctx)
}

func newRootCmd(s *session) *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront-cart",
		Short:         "Manage a local cart and check it out",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.open(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&s.dbPath, "db", s.cfg.CartDBPath, "cart database file")
	root.PersistentFlags().StringVar(&s.apiURL, "api", s.cfg.CheckoutAPIURL, "storefront server URL")
	root.PersistentFlags().BoolVar(&s.ephemeral, "ephemeral", false, "keep the cart in memory only")
	root.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "log at the configured level")

	root.AddCommand(
		productsCmd(s),
		addCmd(s),
		removeCmd(s),
		setCmd(s),
		showCmd(s),
		clearCmd(s),
		checkoutCmd(s),
		completeCmd(s),
		forgetCmd(s),
	)
	return root
}

func productsCmd(s *session) *cobra.Command {
	var q catalogapp.ListQuery
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List catalog products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := s.catalog().ListProducts(cmd.Context(), q)
			if err != nil {
				return err
			}
			for _, p := range res.Products {
				fmt.Fprintf(s.out, "%-24s %-32s %s\n", p.Slug, p.Title, formatPrice(p.BasePrice))
			}
			fmt.Fprintf(s.out, "%d of %d products\n", res.Total, res.TotalCount)
			return nil
		},
	}
	cmd.Flags().StringVar(&q.Category, "category", "", "only this category")
	cmd.Flags().StringVar(&q.Sort, "sort", "", "price-low, price-high, name-az, name-za or newest")
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "at most this many products")
	return cmd
}

func addCmd(s *session) *cobra.Command {
	var (
		sku string
		qty int
	)
	cmd := &cobra.Command{
		Use:   "add <product-slug>",
		Short: "Add a product variant to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := s.catalog().GetProduct(cmd.Context(), args[0])
			if errors.Is(err, catalogapp.ErrNotFound) {
				return fmt.Errorf("no product %q", args[0])
			}
			if err != nil {
				return err
			}

			v, err := pickVariant(p, sku)
			if err != nil {
				return err
			}

			product, variant := toCartLine(p, v)
			if err := s.store.AddItem(cmd.Context(), product, variant, qty); err != nil {
				return err
			}
			fmt.Fprintf(s.out, "added %d x %s (%s) [%s]\n",
				qty, p.Title, cartdomain.VariantKey(product, variant), catalogdomain.StockMessage(v.StockQuantity))
			return nil
		},
	}
	cmd.Flags().StringVar(&sku, "variant", "", "variant SKU, defaults to the first variant")
	cmd.Flags().IntVarP(&qty, "qty", "q", 1, "quantity to add")
	return cmd
}

func pickVariant(p catalogdomain.Product, sku string) (catalogdomain.Variant, error) {
	if len(p.Variants) == 0 {
		return catalogdomain.Variant{}, fmt.Errorf("product %q has no variants", p.Slug)
	}
	if sku == "" {
		return p.Variants[0], nil
	}
	for _, v := range p.Variants {
		if strings.EqualFold(v.VariantSKU, sku) {
			return v, nil
		}
	}
	return catalogdomain.Variant{}, fmt.Errorf("product %q has no variant %q", p.Slug, sku)
}

func toCartLine(p catalogdomain.Product, v catalogdomain.Variant) (cartdomain.Product, cartdomain.Variant) {
	size := v.Size.Title
	if size == "" {
		size = v.Size.Name
	}
	product := cartdomain.Product{
		ContentID:     p.ContentID,
		Title:         p.Title,
		SKU:           p.SKU,
		Slug:          p.Slug,
		FeaturedImage: toCartImage(p.FeaturedImage),
	}
	variant := cartdomain.Variant{
		VariantName:   v.VariantName,
		Details:       v.Details,
		VariantSKU:    v.VariantSKU,
		Color:         v.Color,
		ColorName:     v.ColorName,
		ColorHEX:      v.ColorHEX,
		Size:          size,
		Price:         v.Price,
		Image:         toCartImage(v.Image),
		StockQuantity: v.StockQuantity,
	}
	return product, variant
}

func formatPrice(d decimal.Decimal) string {
	return money.Format(money.ToCents(d), "usd")
}

func toCartImage(img *catalogdomain.Image) *cartdomain.Image {
	if img == nil {
		return nil
	}
	return &cartdomain.Image{URL: img.URL, Label: img.Label, Width: img.Width, Height: img.Height}
}

func removeCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <variant-key>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.store.RemoveItem(cmd.Context(), args[0])
		},
	}
}

func setCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "set <variant-key> <quantity>",
		Short: "Set a line's quantity; zero removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity %q: %w", args[1], err)
			}
			return s.store.UpdateQuantity(cmd.Context(), args[0], qty)
		},
	}
}

func showCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the cart",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			items := s.store.Items()
			if len(items) == 0 {
				fmt.Fprintln(s.out, "cart is empty")
				return nil
			}
			for _, it := range items {
				fmt.Fprintf(s.out, "%-20s %-28s %3d x %-10s %s\n",
					it.VariantKey, it.Product.Title, it.Quantity, formatPrice(it.UnitPrice), formatPrice(it.LineTotal()))
			}
			fmt.Fprintf(s.out, "%d items, total %s\n", s.store.ItemCount(), formatPrice(s.store.Total()))
			return nil
		},
	}
}

func clearCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.store.Clear(cmd.Context())
		},
	}
}

func checkoutCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Open a payment session for the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			customerID, _, err := s.kv.Get(ctx, customerIDKey)
			if err != nil {
				return err
			}

			sess, err := s.checkout().Checkout(ctx, string(customerID))
			var se *checkoutapp.SubmitError
			switch {
			case errors.Is(err, checkoutapp.ErrEmptyCart):
				return errors.New("your cart is empty")
			case errors.As(err, &se):
				return errors.New(se.Message)
			case err != nil:
				return err
			}

			fmt.Fprintf(s.out, "session %s\npay at %s\n", sess.SessionID, sess.URL)
			return nil
		},
	}
}

func completeCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <session-id>",
		Short: "Finish a paid checkout: clear the cart and remember the customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			details, err := s.checkout().Complete(ctx, args[0])
			if err != nil {
				return err
			}
			if details.CustomerID != "" {
				if err := s.kv.Set(ctx, customerIDKey, []byte(details.CustomerID)); err != nil {
					return err
				}
			}

			sum := details.Session
			fmt.Fprintf(s.out, "order %s %s, %s\n", sum.ID, sum.PaymentStatus, money.Format(sum.AmountTotal, sum.Currency))
			return nil
		},
	}
}

func forgetCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "forget",
		Short: "Forget the remembered customer; later checkouts are guest checkouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.kv.Delete(cmd.Context(), customerIDKey)
		},
	}
}

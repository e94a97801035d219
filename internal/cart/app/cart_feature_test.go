package app_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/cucumber/godog"
	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/internal/cart/infra/memory"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type cartCtxKey struct{}

type cartWorld struct {
	kv    *memory.KV
	store *app.Store
}

func world(ctx context.Context) *cartWorld {
	return ctx.Value(cartCtxKey{}).(*cartWorld)
}

func anEmptyCart(ctx context.Context) error {
	w := world(ctx)
	w.store = app.NewStore(w.kv, zap.NewNop())
	return nil
}

func iAddOfPriced(ctx context.Context, qty int, sku, price string) error {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	return world(ctx).store.AddItem(ctx,
		domain.Product{Title: "Item " + sku, SKU: sku},
		domain.Variant{VariantSKU: sku, Price: p},
		qty,
	)
}

func iSetTheQuantityOfTo(ctx context.Context, sku string, qty int) error {
	return world(ctx).store.UpdateQuantity(ctx, sku, qty)
}

func iRemove(ctx context.Context, sku string) error {
	return world(ctx).store.RemoveItem(ctx, sku)
}

func iClearTheCart(ctx context.Context) error {
	return world(ctx).store.Clear(ctx)
}

func theStoredCartIs(ctx context.Context, raw string) error {
	return world(ctx).kv.Set(ctx, app.StorageKey, []byte(raw))
}

func theCartIsLoaded(ctx context.Context) error {
	w := world(ctx)
	w.store.Close()
	w.store = app.NewStore(w.kv, zap.NewNop())
	return w.store.Load(ctx)
}

func theCartHasLines(ctx context.Context, n int) error {
	if got := len(world(ctx).store.Items()); got != n {
		return fmt.Errorf("expected %d lines but got %d", n, got)
	}
	return nil
}

func theItemCountIs(ctx context.Context, n int) error {
	if got := world(ctx).store.ItemCount(); got != n {
		return fmt.Errorf("expected item count %d but got %d", n, got)
	}
	return nil
}

func theTotalIs(ctx context.Context, want string) error {
	w, err := decimal.NewFromString(want)
	if err != nil {
		return err
	}
	if got := world(ctx).store.Total(); !got.Equal(w) {
		return fmt.Errorf("expected total %s but got %s", w, got)
	}
	return nil
}

func lineHasQuantity(ctx context.Context, sku string, qty int) error {
	for _, it := range world(ctx).store.Items() {
		if it.VariantKey == sku {
			if it.Quantity != qty {
				return fmt.Errorf("line %s: expected quantity %d but got %d", sku, qty, it.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("line %s not in cart", sku)
}

func InitializeScenario(sc *godog.ScenarioContext) {
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return context.WithValue(ctx, cartCtxKey{}, &cartWorld{kv: memory.NewKV()}), nil
	})
	sc.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		if w, ok := ctx.Value(cartCtxKey{}).(*cartWorld); ok && w.store != nil {
			w.store.Close()
		}
		return ctx, err
	})

	sc.Step(`^an empty cart$`, anEmptyCart)
	sc.Step(`^the stored cart is "([^"]*)"$`, theStoredCartIs)
	sc.Step(`^the cart is loaded$`, theCartIsLoaded)

	sc.Step(`^I add (\d+) of "([^"]*)" priced ([0-9.]+)$`, iAddOfPriced)
	sc.Step(`^I set the quantity of "([^"]*)" to (-?\d+)$`, iSetTheQuantityOfTo)
	sc.Step(`^I remove "([^"]*)"$`, iRemove)
	sc.Step(`^I clear the cart$`, iClearTheCart)

	sc.Step(`^the cart has (\d+) lines$`, theCartHasLines)
	sc.Step(`^the item count is (\d+)$`, theItemCountIs)
	sc.Step(`^the total is ([0-9.]+)$`, theTotalIs)
	sc.Step(`^line "([^"]*)" has quantity (\d+)$`, lineHasQuantity)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "progress",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

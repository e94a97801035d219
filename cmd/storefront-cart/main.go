// Command storefront-cart manages a local shopping cart and checks it out
// against a storefront server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/shutdown"
)

func main() {
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	if err := run(ctx, config.Load(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		cancel()
		os.Exit(1)
	}
}

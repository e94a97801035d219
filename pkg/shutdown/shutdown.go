package shutdown

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func WithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(ch)
		select {
		case <-ctx.Done():
			return
		case <-ch:
			cancel()
		}
	}()

	return ctx, cancel
}

// Serve runs srv until ctx is cancelled or the listener fails, then gives
// in-flight requests up to grace to finish.
func Serve(ctx context.Context, log *zap.Logger, srv *http.Server, grace time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", zap.Error(err))
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		stopCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()

		if err := srv.Shutdown(stopCtx); err != nil {
			log.Warn("graceful stop timeout, forcing close", zap.Error(err))
			return srv.Close()
		}
		return nil
	})

	return g.Wait()
}

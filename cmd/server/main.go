package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wordgrid/wordgrid-backend/internal/bot"
	"github.com/wordgrid/wordgrid-backend/internal/dispatch"
	"github.com/wordgrid/wordgrid-backend/internal/history"
	"github.com/wordgrid/wordgrid-backend/internal/httpapi"
	"github.com/wordgrid/wordgrid-backend/internal/hub"
)

func main() {
	_ = godotenv.Load()

	var log *zap.Logger
	var err error
	if os.Getenv("LOG_DEV") != "" {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var archive *history.Store
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		archive, err = history.Open(dsn, log)
		if err != nil {
			log.Fatal("history store unavailable", zap.Error(err))
		}
		log.Info("history store enabled")
	}

	h := hub.NewHub(ctx, log)
	notify := hub.NewNotifyAdapter(h, archive, log)

	// Build the dispatcher *with* the hub adapters injected
	d := dispatch.New(ctx, hub.NewEngineAdapter(h), notify, hub.NewLookupAdapter(h), bot.IsBot, log)
	if ms := os.Getenv("RECOVERY_DELAY_MS"); ms != "" {
		if n, err := strconv.Atoi(ms); err == nil && n > 0 {
			d.SetRecoveryDelay(time.Duration(n) * time.Millisecond)
		}
	}

	b := bot.New(ctx, h, log)
	b.SetSubmitter(d)
	d.SetVirtualTrigger(b)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: httpapi.SetupRoutes(h, d, notify, log)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kiwari-pos/qrcounter/internal/backends"
	"github.com/kiwari-pos/qrcounter/internal/config"
	"github.com/kiwari-pos/qrcounter/internal/metrics"
	"github.com/kiwari-pos/qrcounter/internal/qr"
	"github.com/kiwari-pos/qrcounter/internal/router"
	"github.com/kiwari-pos/qrcounter/internal/service"
	"github.com/kiwari-pos/qrcounter/internal/upi"
	"github.com/kiwari-pos/qrcounter/internal/ws"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("WARNING: load .env: %v", err)
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := backends.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Unable to open %s store: %v", cfg.StoreDriver, err)
	}
	defer st.Close()
	log.Printf("Using %s store", cfg.StoreDriver)

	arch, err := backends.OpenArchive(ctx, cfg)
	if err != nil {
		log.Fatalf("Unable to open %s archive: %v", cfg.ArchiveDriver, err)
	}

	m := metrics.New()

	hub := ws.NewHub()
	hub.OnClientCountChange(m.SetDisplayClients)
	go hub.Run(ctx)

	catalog := service.NewCatalogService(st, m)
	orders := service.NewOrderService(service.OrderServiceConfig{
		Items: st,
		Txns:  st,
		QR:    qr.NewEncoder(cfg.QRSize),
		Payee: upi.Payee{
			ID:       cfg.UPIPayeeID,
			Name:     cfg.UPIPayeeName,
			Currency: cfg.UPICurrency,
		},
		Notifier: ws.NewNotifier(hub),
		Archive:  arch,
		Metrics:  m,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router.New(cfg, catalog, orders, hub, m),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: shutdown: %v", err)
	}
}

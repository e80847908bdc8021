package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"invoicesearch/internal/catalog"
	"invoicesearch/internal/searchd"
)

func main() {
	var (
		addr        string
		catalogPath string
		release     bool
	)
	flag.StringVar(&addr, "addr", "127.0.0.1:5000", "Listen address")
	flag.StringVar(&catalogPath, "catalog", "", "YAML catalog file (default: bundled sample data)")
	flag.BoolVar(&release, "release", false, "Run gin in release mode")
	flag.Parse()

	if release {
		gin.SetMode(gin.ReleaseMode)
	}

	cat, err := loadCatalog(catalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}
	log.Printf("Serving tables %v", cat.TableNames())

	srv := &http.Server{
		Addr:              addr,
		Handler:           searchd.NewRouter(cat),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Listening on http://%s/search", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown: %v", err)
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

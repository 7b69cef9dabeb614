package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/jbweber/homelab/restkit/internal/config"
	"github.com/jbweber/homelab/restkit/internal/controller"
	"github.com/jbweber/homelab/restkit/internal/product"
	"github.com/jbweber/homelab/restkit/internal/repository"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "restkit",
		Short: "Generic REST resource service",
	}
	rootCmd.AddCommand(newServeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	cfg := config.New()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfg)
		},
	}
	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	cmd.Flags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite database")
	return cmd
}

func serve(cfg *config.Config) error {
	db, err := cfg.InitializeDatabase()
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Product resource: generic repository -> product service -> controller.
	productRepo := repository.NewSQLRepository(db, product.Mapper())
	defer productRepo.Close()
	productSvc := product.NewService(productRepo)
	products := controller.NewResource[*product.Product](productSvc, product.BasePath, func() *product.Product {
		return &product.Product{}
	})
	products.RegisterRoutes(r)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := fmt.Fprintln(w, "ok"); err != nil {
			log.Printf("failed to write response: %v", err)
		}
	})

	log.Printf("Starting restkit on %s", cfg.Addr)
	return http.ListenAndServe(cfg.Addr, r)
}

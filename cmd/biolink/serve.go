package main

import (
	"context"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/joestump/biolink/internal/api"
	"github.com/joestump/biolink/internal/auth"
	"github.com/joestump/biolink/internal/config"
	"github.com/joestump/biolink/internal/db"
	"github.com/joestump/biolink/internal/metrics"
	"github.com/joestump/biolink/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifetime)
			if err != nil {
				return err
			}

			userStore := store.NewUserStore(database)
			linkStore := store.NewLinkStore(database)
			clickStore := store.NewClickStore(database)

			ctx := context.Background()
			clickCh := make(chan store.ClickEvent, 256)
			go runClickWriter(ctx, clickCh, clickStore)

			router := api.NewRouter(api.Deps{
				DB:         database,
				Bearer:     auth.NewBearerMiddleware(tokens),
				Tokens:     tokens,
				UserStore:  userStore,
				LinkStore:  linkStore,
				ClickStore: clickStore,
				ClickCh:    clickCh,
				BcryptCost: cfg.Auth.BcryptCost,
			})

			log.Printf("listening on %s", cfg.HTTP.Addr)
			return http.ListenAndServe(cfg.HTTP.Addr, router)
		},
	}
}

// runClickWriter reads click events from the channel and persists them.
// On context cancellation it drains remaining events before returning.
func runClickWriter(ctx context.Context, ch <-chan store.ClickEvent, cs *store.ClickStore) {
	for {
		select {
		case e, ok := <-ch:
			if !ok {
				return
			}
			if err := cs.RecordClick(ctx, e); err != nil {
				metrics.ClicksRecordErrorsTotal.Inc()
				log.Printf("click write error: %v", err)
				continue
			}
			metrics.ClicksRecordedTotal.Inc()
		case <-ctx.Done():
			// Drain remaining events.
			for {
				select {
				case e, ok := <-ch:
					if !ok {
						return
					}
					if err := cs.RecordClick(context.Background(), e); err != nil {
						metrics.ClicksRecordErrorsTotal.Inc()
						log.Printf("click drain error: %v", err)
						continue
					}
					metrics.ClicksRecordedTotal.Inc()
				default:
					return
				}
			}
		}
	}
}

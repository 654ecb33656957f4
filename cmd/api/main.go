package main

import (
	"net/http"
	"os"
	"time"

	"kennel-manager/internal/adapters/auth/jwtauth"
	pg "kennel-manager/internal/adapters/storage/postgres"
	"kennel-manager/internal/config"
	"kennel-manager/internal/platform/logger"
	"kennel-manager/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    "kennel-manager",
	})

	opts := router.Options{
		TokenTTL:    time.Duration(cfg.Auth.ExpiryMinutes) * time.Minute,
		Log:         log,
		CORSOrigins: cfg.CORS.Origins,
	}

	if cfg.Auth.Secret != "" {
		signer, err := jwtauth.New(jwtauth.Config{
			Secret:   cfg.Auth.Secret,
			Issuer:   cfg.Auth.Issuer,
			Audience: cfg.Auth.Audience,
		})
		if err != nil {
			log.Error("jwt signer init failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		opts.Issuer, opts.Verifier = signer, signer
	}

	if cfg.Database.URL != "" {
		db, err := pg.Open(cfg.Database.URL)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		opts.DB = db
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": cfg.Addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}

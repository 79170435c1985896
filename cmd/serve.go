// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/authorization"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/config"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/db"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/logging"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/monitoring/prometheus"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/storage"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/tracing"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/pkg/authentication"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/pkg/notes"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/pkg/tenants"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("notes_service", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	codec, err := authentication.NewJWTCodec(specs.JWTSecret, specs.TokenLifetime, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create token codec: %v", err)
	}

	authService := authentication.NewService(s, codec, tracer, monitor, logger)
	authAPI := authentication.NewAPI(authService, tracer, monitor, logger)
	authMiddleware := authentication.NewMiddleware(codec, s, tracer, monitor, logger)
	authzMiddleware := authorization.NewMiddleware(tracer, monitor, logger)

	notesService := notes.NewService(s, tracer, monitor, logger)
	notesAPI := notes.NewAPI(notesService, tracer, monitor, logger)

	tenantsService := tenants.NewService(s, tracer, monitor, logger)
	tenantsAPI := tenants.NewAPI(tenantsService, authzMiddleware, tracer, monitor, logger)

	router := web.NewRouter(
		authAPI,
		authMiddleware,
		authzMiddleware,
		notesAPI,
		tenantsAPI,
		specs.CORSAllowedOrigins,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}

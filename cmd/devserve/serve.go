package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/creamcroissant/devserve/internal/api"
	"github.com/creamcroissant/devserve/internal/bootstrap"
	"github.com/creamcroissant/devserve/internal/cert"
	"github.com/creamcroissant/devserve/internal/config"
	"github.com/creamcroissant/devserve/internal/content"
	"github.com/creamcroissant/devserve/internal/job"
	"github.com/creamcroissant/devserve/internal/support/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTPS server",
	RunE:  runServe,
}

func init() {
	flags := serveCmd.Flags()
	flags.String("host", "", "host to bind to (default localhost)")
	flags.IntP("port", "p", 0, "port to serve on (default 8443)")
	flags.Bool("network", false, "bind all interfaces, same as --host 0.0.0.0")
	flags.String("cert", "", "path to a PEM certificate file")
	flags.String("key", "", "path to a PEM private key file")
	flags.String("root", "", "document root (default current directory)")
	config.BindFlags(flags)
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(logging.Options{
		Level:     cfg.Log.SlogLevel(),
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
	}).With("session", uuid.NewString())

	if err := bootstrap.VerifyAssets(cfg.Root.Dir, cfg.Root.RequiredFiles); err != nil {
		return err
	}

	material, err := cert.NewProvider(logger).Obtain(ctx, cert.Request{
		Host:     cfg.Server.Host,
		CertFile: cfg.TLS.CertFile,
		KeyFile:  cfg.TLS.KeyFile,
	})
	if err != nil {
		return err
	}
	// Cleanup is registered before the listener opens so every exit path,
	// bind failures included, removes generated certificate material.
	defer func() {
		if err := material.Cleanup(); err != nil {
			logger.Warn("certificate cleanup failed", "error", err)
		}
	}()

	tlsConf, err := bootstrap.NewTLSConfig(material)
	if err != nil {
		return err
	}

	listener, err := bootstrap.Listen(cfg.Server.Addr(), tlsConf)
	if err != nil {
		return err
	}

	resolver := content.NewResolver(cfg.Root.Dir, content.WithCacheTTL(cfg.Content.CacheTTL))
	router := api.NewRouter(logger, api.Session{
		HTTPS:         true,
		AllowedOrigin: cfg.Security.AllowedOrigin,
	}, resolver, cfg.Metrics)

	scheduler := job.NewScheduler(logger)
	expiryJob := job.NewCertExpiryJob(material, 30*24*time.Hour, logger)
	if _, err := scheduler.Register("@every 12h", expiryJob); err != nil {
		return err
	}
	scheduler.Start()

	server := bootstrap.NewHTTPServer(cfg.Server.Addr(), router)

	printBanner(cmd.OutOrStdout(), cfg, material)

	go func() {
		logger.Info("https server starting", "addr", cfg.Server.Addr(), "root", cfg.Root.Dir)
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("https server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	stopCtx := scheduler.Stop()
	<-stopCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	logger.Info("shutting down https server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	logger.Info("server exited cleanly")
	return nil
}

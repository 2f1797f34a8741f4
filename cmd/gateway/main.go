package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"covercart/internal/badge"
	"covercart/internal/checkout"
	"covercart/internal/config"
	"covercart/internal/counter"
	"covercart/internal/httpserver"
	"covercart/internal/notify"
	"covercart/internal/reconcile"
	"covercart/internal/session"
	"covercart/internal/store"
	"covercart/internal/upstream"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[gateway] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	if cfg.UserEmail == "" {
		logger.Fatalf("USER_EMAIL is required")
	}

	ctx := context.Background()
	client := upstream.New(cfg.UpstreamBaseURL, nil, logger)

	sess, err := session.Start(ctx, client, cfg.UserEmail, logger)
	if err != nil {
		logger.Fatalf("start session: %v", err)
	}
	defer sess.Close()

	cartStore := store.New()
	notices := notify.NewFeed(logger)
	handoff := checkout.NewHandoff(logger)
	reconciler := reconcile.New(sess.Context(), sess.UserID, client, cartStore, notices, handoff, logger)

	if err := reconciler.Refresh(sess.Context()); err != nil {
		logger.Printf("initial cart load failed, continuing with empty cart: %v", err)
	}

	var badgeCount atomic.Int64
	poller := badge.New(client, sess.UserID, cfg.BadgeInterval, func(count int) {
		badgeCount.Store(int64(count))
	}, logger)
	go poller.Run(sess.Context())

	stats := counter.New([]counter.Stat{
		{Label: "Customer Satisfaction", Target: 99, Suffix: "%"},
		{Label: "Unique Designs", Target: 100, Suffix: "+"},
		{Label: "Covers Sold", Target: 50, Suffix: "M+"},
	}, 0, 0)
	stats.Start(sess.Context())
	defer stats.Stop()

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Store:      cartStore,
		Reconciler: reconciler,
		Notices:    notices,
		BadgeCount: func() int { return int(badgeCount.Load()) },
		Stats:      stats,
	}, cfg.AllowedOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	sess.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

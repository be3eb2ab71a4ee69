package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pribylovaa/icebreaker-frame/internal/clients"
	"github.com/pribylovaa/icebreaker-frame/internal/config"
	"github.com/pribylovaa/icebreaker-frame/internal/frame"
	framehttp "github.com/pribylovaa/icebreaker-frame/internal/http"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting icebreaker-frame", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	cl, err := clients.New(rootCtx, *cfg, log)
	if err != nil {
		log.Error("clients_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if cerr := cl.Close(); cerr != nil {
			log.Warn("clients_close_failed", slog.String("err", cerr.Error()))
		}
	}()

	log.Info("clients_initialized")

	svc := frame.New(cl.Directory, cl.Tracker, frame.Options{
		FrameURL:          cfg.Frame.PublicURL,
		BasePath:          cfg.Frame.BasePath,
		AppURL:            cfg.Frame.AppURL,
		WarpcastURL:       cfg.Frame.WarpcastURL,
		DetachedAnalytics: cfg.Analytics.Detached,
	})

	apiHandler := framehttp.NewRouter(svc, framehttp.Options{
		Logger:   log,
		Timeout:  cfg.Timeouts.Service,
		BasePath: cfg.Frame.BasePath,
		Title:    cfg.Frame.Title,
	})

	var ready atomic.Bool

	opsHandler := framehttp.NewOpsHandler(&ready)

	apiSrv := &http.Server{Addr: cfg.HTTP.Addr(), Handler: apiHandler, ReadHeaderTimeout: 5 * time.Second}
	opsSrv := &http.Server{Addr: cfg.Metrics.Addr(), Handler: opsHandler, ReadHeaderTimeout: 5 * time.Second}

	apiLn, err := net.Listen("tcp", apiSrv.Addr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", apiSrv.Addr), slog.String("err", err.Error()))
		os.Exit(1)
	}

	opsLn, err := net.Listen("tcp", opsSrv.Addr)
	if err != nil {
		_ = apiLn.Close()
		log.Error("metrics_listen_failed", slog.String("addr", opsSrv.Addr), slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("http_listen_start", slog.String("addr", apiSrv.Addr), slog.String("base_path", cfg.Frame.BasePath))
	log.Info("metrics_listen_start", slog.String("addr", opsSrv.Addr))

	g, gctx := errgroup.WithContext(rootCtx)
	g.Go(func() error { return serve(apiSrv, apiLn) })
	g.Go(func() error { return serve(opsSrv, opsLn) })

	ready.Store(true)
	log.Info("frame_ready")

	<-gctx.Done()
	if rootCtx.Err() != nil {
		log.Info("shutdown_requested")
	}

	ready.Store(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := apiSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	// Отложенная аналитика дренируется до закрытия трекера.
	if err := svc.Close(shutdownCtx); err != nil {
		log.Warn("analytics_drain_incomplete", slog.String("err", err.Error()))
	}

	if err := opsSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("metrics_shutdown_incomplete", slog.String("err", err.Error()))
	}

	if err := g.Wait(); err != nil {
		log.Error("http_serve_failed", slog.String("err", err.Error()))
	}

	log.Info("service_stopped")
}

// serve запускает сервер; штатная остановка через Shutdown не считается ошибкой.
func serve(srv *http.Server, ln net.Listener) error {
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

// Package main runs the LocalLibrary catalog: server-rendered pages for
// browsing and editing the copies (book instances) of the library's books.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"locallibrary/app/echoServer"
	bookinstancectrl "locallibrary/app/echoServer/controller/bookinstance"
	catalogctrl "locallibrary/app/echoServer/controller/catalog"
	"locallibrary/app/echoServer/validation"
	"locallibrary/app/echoServer/view"
	"locallibrary/config"
	"locallibrary/repository"
	booksvc "locallibrary/service/book"
	bookinstancesvc "locallibrary/service/bookinstance"
	catalogsvc "locallibrary/service/catalog"

	"github.com/labstack/echo/v4"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: config.ParseLevel(cfg.LogLevel)}))
	slog.SetDefault(log)

	// store
	store, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Error("store connect failed", "driver", cfg.StoreDriver, "err", err)
		os.Exit(1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Error("store close", "err", err)
		}
	}()

	// services
	bs := booksvc.New(store.Books)
	bis := bookinstancesvc.New(store.BookInstances, bs)
	cs := catalogsvc.New(store.Books, store.BookInstances, store.Authors, store.Genres)

	if cfg.SeedData {
		seeded, err := cs.Seed(ctx)
		if err != nil {
			log.Error("seed failed", "err", err)
			os.Exit(1)
		}
		log.Info("seed", "written", seeded)
	}

	// controllers
	v := validation.New()
	bookInstanceC := &bookinstancectrl.Controller{Svc: bis, Books: bs, V: v, Log: log}
	catalogC := &catalogctrl.Controller{Svc: cs, Log: log}

	// echo
	renderer, err := view.New()
	if err != nil {
		log.Error("templates", "err", err)
		os.Exit(1)
	}
	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.HTTPErrorHandler = echoServer.ErrorHandler(log, cfg.IsDev())
	echoServer.RegisterMiddlewares(e, log, cfg.PublicDir)

	echoServer.Register(e, echoServer.C{
		Catalog:      catalogC,
		BookInstance: bookInstanceC,
		Ping:         store.Ping,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	log.Info("starting server", "PORT_env", os.Getenv("PORT"), "chosen_port", port, "store", cfg.StoreDriver, "env", cfg.Env)

	go func() {
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
}

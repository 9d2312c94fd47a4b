package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"studentapi/internal/config"
	"studentapi/internal/dataset"
	"studentapi/internal/handler"
	"studentapi/internal/server"
	"studentapi/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The dataset is loaded once; the server does not start without it.
	ds, err := dataset.Load(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to load student data: %v", err)
	}

	// Initialize services
	studentService := service.NewStudentService(ds)

	// Initialize handlers
	studentHandler := handler.NewStudentHandler(studentService)
	pageHandler := handler.NewPageHandler(cfg.IndexPage, cfg.StaticDir)

	// Setup router
	r := server.NewRouter(studentHandler, pageHandler)
	srv := server.New(r, server.Options{
		Addr:            cfg.Addr(),
		CORSOrigins:     cfg.CORSOrigins,
		ShutdownTimeout: cfg.ShutdownTimeout,
	})

	errCh := srv.Start()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Failed to run server: %v", err)
	case sig := <-signals:
		log.Printf("Received signal %v, shutting down", sig)
	}

	if err := srv.Stop(context.Background()); err != nil {
		log.Printf("Graceful shutdown error: %v", err)
	}
	log.Println("Server stopped")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"google.golang.org/grpc"

	"github.com/banshee-data/skylink/internal/api"
	"github.com/banshee-data/skylink/internal/db"
	"github.com/banshee-data/skylink/internal/rpc"
)

func cmdServe(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("serve", stderr)
	configPath := fs.String("config", "", "Path to a JSON config file")
	listen := fs.String("listen", "", "HTTP listen address (default: listen from config)")
	grpcListen := fs.String("grpc-listen", "", "gRPC listen address (default: grpc_listen from config)")
	dbPath := fs.String("db", "", "Database path (default: db_path from config)")
	verbose := fs.Bool("v", false, "Verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	e, err := loadEnv(*configPath)
	if err != nil {
		return err
	}
	setVerbose(*verbose, e.cfg.GetVerbose())
	if *listen != "" {
		e.cfg.Listen = listen
	}
	if *grpcListen != "" {
		e.cfg.GRPCListen = grpcListen
	}
	if *dbPath != "" {
		e.cfg.DBPath = dbPath
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return serve(ctx, e, stdout)
}

// serve runs the HTTP and gRPC servers until ctx is cancelled.
func serve(ctx context.Context, e *env, stdout io.Writer) error {
	database, err := db.NewDB(e.cfg.GetDBPath())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	mux := api.NewServer(e.registry, db.NewSessionStore(database)).ServeMux()
	if err := database.AttachAdminRoutes(mux); err != nil {
		return err
	}

	httpLn, err := net.Listen("tcp", e.cfg.GetListen())
	if err != nil {
		return fmt.Errorf("listen http: %w", err)
	}
	grpcLn, err := net.Listen("tcp", e.cfg.GetGRPCListen())
	if err != nil {
		httpLn.Close()
		return fmt.Errorf("listen grpc: %w", err)
	}
	fmt.Fprintf(stdout, "HTTP listening on %s\n", httpLn.Addr())
	fmt.Fprintf(stdout, "gRPC listening on %s\n", grpcLn.Addr())

	grpcServer := grpc.NewServer()
	rpc.RegisterConverterServer(grpcServer, rpc.NewServer(e.registry))
	httpServer := &http.Server{Handler: api.LoggingMiddleware(mux)}

	var wg sync.WaitGroup
	errs := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := httpServer.Serve(httpLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("http server: %w", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := grpcServer.Serve(grpcLn); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errs <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errs:
	}
	log.Println("shutting down servers...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), e.cfg.GetShutdownTimeout())
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
		if err := httpServer.Close(); err != nil {
			log.Printf("HTTP server force close error: %v", err)
		}
	}

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		grpcServer.Stop()
	}

	wg.Wait()
	log.Printf("Graceful shutdown complete")
	return serveErr
}

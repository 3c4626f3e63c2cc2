package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	v1 "github.com/voyago/tripdesk/apis/v1"
	"github.com/voyago/tripdesk/bootstrap"
	"github.com/voyago/tripdesk/config"
	"github.com/voyago/tripdesk/log"
)

func main() {
	log.Init()
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info(context.Background(), "shutdown signal received")
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf(context.Background(), "failed to load config: %v", err)
	}

	app, err := bootstrap.Setup(ctx, cfg)
	if err != nil {
		log.Fatalf(context.Background(), "setup failed: %v", err)
	}

	server := &v1.Server{Planner: app.Planner, Agent: app.Agent}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
	}).Handler(server.Router())

	// h2c serves HTTP/2 without TLS for dev and internal deployments
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: h2c.NewHandler(corsHandler, &http2.Server{}),
	}

	go func() {
		<-ctx.Done()
		log.Info(context.Background(), "shutting down server")
		srv.Shutdown(context.Background())
	}()

	log.Infof(context.Background(), "starting server on port %s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf(context.Background(), "server failed: %v", err)
	}
}

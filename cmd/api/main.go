package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"example.com/ftracker/internal/api"
	"example.com/ftracker/internal/auth"
	"example.com/ftracker/internal/config"
	"example.com/ftracker/internal/publish"
	httptransport "example.com/ftracker/internal/transport/http"
)

func main() {
	cfg := config.Load()

	opts := []api.Option{}

	if len(cfg.KafkaBrokers) > 0 {
		producer := publish.NewKafkaProducer(cfg.KafkaBrokers)
		defer func() {
			if err := producer.Close(); err != nil {
				log.Printf("kafka producer close error: %v", err)
			}
		}()
		opts = append(opts, api.WithPublisher(publish.NewSummaryPublisher(producer, cfg.SummaryTopic, cfg.PublishTimeout)))
		log.Printf("publishing summaries to %s via %v", cfg.SummaryTopic, cfg.KafkaBrokers)
	} else {
		log.Printf("KAFKA_BROKERS not set, summaries will not be published")
	}

	if !cfg.AuthEnabled {
		log.Printf("authentication disabled")
		opts = append(opts, api.WithoutAuth())
	}

	handler := api.NewHandler(opts...)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	var root http.Handler = mux
	if cfg.AuthEnabled {
		root = auth.NewMiddleware(auth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer}).Wrap(root)
	}
	root = httptransport.RequestLogger(log.Default(), root)

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTPAddress,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, root)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("ftracker api listening on %s", cfg.HTTPAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-shutdownCh

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

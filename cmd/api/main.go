package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fieldroute/internal/api"
	"fieldroute/internal/metrics"
)

func main() {
	_ = godotenv.Load()

	srv, err := api.NewServer()
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	metrics.RegisterDefault()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/optimize", srv.OptimizeHandler)
	mux.HandleFunc("/v1/routes", srv.RoutesIndexHandler)
	mux.HandleFunc("/v1/routes/", srv.RouteByIDHandler)
	mux.HandleFunc("/v1/admin/routes/stats", srv.StatsHandler)
	mux.HandleFunc("/v1/positions/ws", srv.PositionsWSHandler)
	mux.HandleFunc("/healthz", srv.HealthHandler)
	mux.HandleFunc("/readyz", srv.ReadyHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	httpSrv := &http.Server{
		Addr:              ":" + port,
		Handler:           api.LogMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("fieldroute api listening on :%s", port)
	if err := httpSrv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

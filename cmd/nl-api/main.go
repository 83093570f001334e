package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"NetLens/internal/config"
	"NetLens/internal/query"

	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Find the first enabled ClickHouse writer config; the API reads
	// the snapshots that writer produces.
	var chCfg *config.ClickHouseConfig
	for _, writerDef := range cfg.Stats.Writers {
		if writerDef.Enabled && writerDef.Type == "clickhouse" {
			chCfg = &writerDef.ClickHouse
			break
		}
	}
	if chCfg == nil {
		log.Fatalf("No enabled ClickHouse writer found in config. API server cannot start.")
	}

	querier, err := query.NewClickHouseQuerier(*chCfg)
	if err != nil {
		log.Fatalf("Failed to create querier: %v", err)
	}

	apiHandler := &APIHandler{querier: querier}

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/stats/protocols", apiHandler.protocolsHandler).Methods("GET")
	r.HandleFunc("/api/v1/stats/ports", apiHandler.portsHandler).Methods("GET")
	r.HandleFunc("/api/v1/stats/total", apiHandler.totalHandler).Methods("GET")

	server := &http.Server{
		Addr:    cfg.API.ListenAddr,
		Handler: r,
	}

	go func() {
		log.Printf("API server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v", server.Addr, err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("API server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("API server exited.")
}

// APIHandler holds the dependencies for API handlers.
type APIHandler struct {
	querier query.Querier
}

// protocolsHandler serves the protocol occurrence distribution.
func (h *APIHandler) protocolsHandler(w http.ResponseWriter, r *http.Request) {
	distribution, err := h.querier.ProtocolDistribution(r.Context())
	if err != nil {
		http.Error(w, "failed to query protocol distribution: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, distribution)
}

// portsHandler serves the per-destination-port byte totals.
func (h *APIHandler) portsHandler(w http.ResponseWriter, r *http.Request) {
	traffic, err := h.querier.PortTraffic(r.Context())
	if err != nil {
		http.Error(w, "failed to query port traffic: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, traffic)
}

// totalHandler serves the grand total byte count.
func (h *APIHandler) totalHandler(w http.ResponseWriter, r *http.Request) {
	total, err := h.querier.TotalBytes(r.Context())
	if err != nil {
		http.Error(w, "failed to query traffic total: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]uint64{"total_bytes": total})
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

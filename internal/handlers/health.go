package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"runtime"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/minjoonc/portfolio-backend/internal/services"
)

// HealthHandler reports process health: store reachability, uptime, memory
// usage and the current environment.
type HealthHandler struct {
	client    *mongo.Client
	hub       *services.ChatHub
	env       string
	startedAt time.Time
}

func NewHealthHandler(client *mongo.Client, hub *services.ChatHub, env string) *HealthHandler {
	return &HealthHandler{
		client:    client,
		hub:       hub,
		env:       env,
		startedAt: time.Now(),
	}
}

// HealthResponse represents the health check snapshot
type HealthResponse struct {
	Success          bool    `json:"success"`
	Message          string  `json:"message,omitempty"`
	Status           string  `json:"status,omitempty"`
	Environment      string  `json:"environment,omitempty"`
	UptimeSeconds    float64 `json:"uptime_seconds,omitempty"`
	ConnectedClients int     `json:"connected_clients"`
	MemoryAllocMB    float64 `json:"memory_alloc_mb,omitempty"`
	MemorySysMB      float64 `json:"memory_sys_mb,omitempty"`
	NumGoroutine     int     `json:"num_goroutine,omitempty"`
}

// Check handles GET /api/health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := h.client.Ping(r.Context(), nil); err != nil {
		log.Printf("health check: store ping failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(HealthResponse{
			Success: false,
			Message: "Database unreachable",
		})
		return
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	json.NewEncoder(w).Encode(HealthResponse{
		Success:          true,
		Status:           "ok",
		Environment:      h.env,
		UptimeSeconds:    time.Since(h.startedAt).Seconds(),
		ConnectedClients: h.hub.Count(),
		MemoryAllocMB:    float64(mem.Alloc) / 1024 / 1024,
		MemorySysMB:      float64(mem.Sys) / 1024 / 1024,
		NumGoroutine:     runtime.NumGoroutine(),
	})
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const version = "1.0.0"

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store       Pinger
	storeDriver string
}

type HealthResponse struct {
	Status   string           `json:"status"`
	Checks   map[string]Check `json:"checks"`
	Metadata Metadata         `json:"metadata"`
}

type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type Metadata struct {
	Version   string `json:"version"`
	Store     string `json:"store"`
	Timestamp string `json:"timestamp"`
}

func NewHealthHandler(store Pinger, storeDriver string) *HealthHandler {
	return &HealthHandler{
		store:       store,
		storeDriver: storeDriver,
	}
}

func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *HealthHandler) Readyz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	storeCheck := h.checkStore(ctx)

	response := HealthResponse{
		Status: "up",
		Checks: map[string]Check{"store": storeCheck},
		Metadata: Metadata{
			Version:   version,
			Store:     h.storeDriver,
			Timestamp: time.Now().Format(time.RFC3339),
		},
	}

	if storeCheck.Status != "up" {
		response.Status = "down"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) checkStore(ctx context.Context) Check {
	if err := h.store.Ping(ctx); err != nil {
		return Check{
			Status:  "down",
			Message: err.Error(),
		}
	}

	return Check{
		Status:  "up",
		Message: "connected",
	}
}

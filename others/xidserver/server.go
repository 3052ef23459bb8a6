package main

import (
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Lzww0608/gxid"
	"github.com/gin-gonic/gin"
)

const maxBatch = 1000

// Handler serves identifiers from one long-lived generator
type Handler struct {
	gen    *gxid.Generator
	logger *slog.Logger
}

// NewHandler creates a Handler around gen
func NewHandler(gen *gxid.Generator, logger *slog.Logger) *Handler {
	return &Handler{gen: gen, logger: logger}
}

// IDResponse describes one identifier
type IDResponse struct {
	ID      string    `json:"id"`
	Hex     string    `json:"hex"`
	Time    time.Time `json:"time"`
	Machine string    `json:"machine"`
	Pid     uint16    `json:"pid"`
	Counter uint32    `json:"counter"`
}

func newIDResponse(id gxid.ID) IDResponse {
	return IDResponse{
		ID:      id.String(),
		Hex:     id.EncodeToHex(),
		Time:    id.Time().UTC(),
		Machine: hex.EncodeToString(id.Machine()),
		Pid:     id.Pid(),
		Counter: id.Counter(),
	}
}

// GenerateRequest is the optional JSON body of POST /v1/ids
type GenerateRequest struct {
	Count int `json:"count"`
}

// Setup registers the routes on engine
func (h *Handler) Setup(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := engine.Group("/v1")
	{
		v1.POST("/ids", h.Generate)
		v1.GET("/ids/:id", h.Inspect)
	}
}

// Generate handles POST /v1/ids. The body is optional; count defaults to 1.
func (h *Handler) Generate(c *gin.Context) {
	req := GenerateRequest{Count: 1}
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		// chunked requests report ContentLength -1; an empty body reads io.EOF
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if req.Count < 1 || req.Count > maxBatch {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count must be between 1 and 1000"})
		return
	}

	ids := make([]gxid.ID, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		id, err := h.gen.New()
		if err != nil {
			h.logger.Error("clock error", slog.Any("error", err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		ids = append(ids, id)
	}
	c.JSON(http.StatusCreated, gin.H{"ids": ids})
}

// Inspect handles GET /v1/ids/:id
func (h *Handler) Inspect(c *gin.Context) {
	id, err := gxid.Decode(c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, gxid.ErrInvalidID) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, newIDResponse(id))
}

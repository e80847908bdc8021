// Package searchd serves POST /search over a catalog for local development.
package searchd

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"invoicesearch/internal/catalog"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgUnknownTable     = "unknown table"
)

// SearchRequest is the body of POST /search
type SearchRequest struct {
	Table string `json:"table" validate:"required"`
	Field string `json:"field" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// SearchResponse wraps matching rows
type SearchResponse struct {
	Result []catalog.Record `json:"result"`
}

// ErrorResponse is the error body
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Handler handles search requests
type Handler struct {
	catalog *catalog.Catalog
	val     *validator.Validate
}

// New creates a new search handler
func New(c *catalog.Catalog) *Handler {
	return &Handler{catalog: c, val: validator.New()}
}

// Search runs one lookup.
// POST /search
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidRequest, Details: err.Error()})
		return
	}
	if err := h.val.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgValidationFailed, Details: err.Error()})
		return
	}

	rows, err := h.catalog.Search(req.Table, req.Field, req.Value)
	if errors.Is(err, catalog.ErrUnknownTable) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: msgUnknownTable, Details: req.Table})
		return
	}
	if err != nil {
		log.Printf("search %s.%s=%q: %v", req.Table, req.Field, req.Value, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SearchResponse{Result: rows})
}

// NewRouter builds the gin engine with logging and recovery middleware
func NewRouter(c *catalog.Catalog) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	h := New(c)
	r.POST("/search", h.Search)
	return r
}

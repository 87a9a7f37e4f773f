// Package server exposes the optics workbench over HTTP: the material
// catalog, refraction queries, dispersion curve rendering and the element
// registry.
package server

import (
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/df07/go-optics-workbench/pkg/dispersion"
	"github.com/df07/go-optics-workbench/pkg/material"
	"github.com/df07/go-optics-workbench/pkg/plot"
	"github.com/df07/go-optics-workbench/pkg/workbench"
)

// Server handles web requests for the optics workbench
type Server struct {
	bench  *workbench.Workbench
	logger *zap.SugaredLogger
	port   int
}

// New creates a new web server around a workbench
func New(bench *workbench.Workbench, logger *zap.SugaredLogger, port int) *Server {
	return &Server{bench: bench, logger: logger, port: port}
}

// MaterialResponse is one catalog entry as served to clients
type MaterialResponse struct {
	Name         string    `json:"name"`                   // Catalog key
	HasData      bool      `json:"hasData"`                // False for the sentinel entry
	Coefficients []float64 `json:"coefficients,omitempty"` // [B1 B2 B3 C1 C2 C3], C terms in nm²
}

// RefractionResponse is a computed refractive index
type RefractionResponse struct {
	Material     string  `json:"material,omitempty"` // Catalog key, when the query named one
	WavelengthNm float64 `json:"wavelengthNm"`       // Wavelength the index was computed at
	Index        float64 `json:"index"`              // Refractive index
}

// ErrorResponse carries a failure back to the client
type ErrorResponse struct {
	Error string `json:"error"`
}

// Router builds the gin engine with all API routes registered
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestLogger())

	api := router.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/materials", s.handleMaterials)
		api.GET("/materials/:name", s.handleMaterial)
		api.GET("/refraction", s.handleRefraction)
		api.GET("/curve.png", s.handleCurve)
		api.POST("/elements", s.handleCreateElement)
		api.GET("/elements", s.handleListElements)
		api.GET("/elements/:id", s.handleGetElement)
		api.PATCH("/elements/:id/lens", s.handleUpdateLens)
		api.DELETE("/elements/:id", s.handleDeleteElement)
	}
	return router
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Infow("starting optics workbench server", "addr", addr)
	return s.Router().Run(addr)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debugw("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleMaterials serves the ordered catalog, the list a material selector
// presents
func (s *Server) handleMaterials(c *gin.Context) {
	entries := s.bench.Catalog().Entries()
	out := make([]MaterialResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, materialResponse(e))
	}
	c.JSON(http.StatusOK, out)
}

// handleMaterial serves a single catalog entry by name
func (s *Server) handleMaterial(c *gin.Context) {
	name := c.Param("name")
	catalog := s.bench.Catalog()
	if !catalog.Has(name) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf("unknown material %q", name)})
		return
	}
	for _, e := range catalog.Entries() {
		if e.Name == name {
			c.JSON(http.StatusOK, materialResponse(e))
			return
		}
	}
}

func materialResponse(e material.Entry) MaterialResponse {
	resp := MaterialResponse{Name: e.Name, HasData: e.HasData}
	if e.HasData {
		resp.Coefficients = e.Coefficients.Slice()
	}
	return resp
}

// handleRefraction computes a refractive index for either a named catalog
// material or explicit coefficients passed as b1..b3, c1..c3 query params.
// The wavelength defaults to the 580nm reference.
func (s *Server) handleRefraction(c *gin.Context) {
	wavelength := dispersion.ReferenceWavelength
	if raw := c.Query("wavelength"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid wavelength %q", raw)})
			return
		}
		wavelength = parsed
	}

	resp := RefractionResponse{WavelengthNm: wavelength}
	var coeffs dispersion.Coefficients

	if name := c.Query("material"); name != "" {
		found, hasData, err := s.bench.Catalog().Lookup(name)
		if err != nil {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		if !hasData {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("material %q carries no dispersion data", name)})
			return
		}
		coeffs = found
		resp.Material = name
	} else {
		parsed, err := parseCoefficients(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		coeffs = parsed
	}

	index, err := dispersion.RefractiveIndex(wavelength, coeffs)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}
	resp.Index = index
	c.JSON(http.StatusOK, resp)
}

// handleCurve renders a dispersion curve PNG for a named catalog material
func (s *Server) handleCurve(c *gin.Context) {
	name := c.Query("material")
	coeffs, hasData, err := s.bench.Catalog().Lookup(name)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	if !hasData {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("material %q carries no dispersion data", name)})
		return
	}

	opts := plot.Options{Title: name}
	if raw := c.Query("min"); raw != "" {
		opts.MinWavelength, _ = strconv.ParseFloat(raw, 64)
	}
	if raw := c.Query("max"); raw != "" {
		opts.MaxWavelength, _ = strconv.ParseFloat(raw, 64)
	}

	img, err := plot.DispersionCurve(coeffs, opts)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.Header("Content-Type", "image/png")
	c.Status(http.StatusOK)
	if err := png.Encode(c.Writer, img); err != nil {
		s.logger.Errorw("failed to encode curve png", "material", name, "error", err)
	}
}

// parseCoefficients reads explicit b1..b3, c1..c3 query params, C terms in nm²
func parseCoefficients(c *gin.Context) (dispersion.Coefficients, error) {
	values := make([]float64, 6)
	for i, key := range []string{"b1", "b2", "b3", "c1", "c2", "c3"} {
		raw := c.Query(key)
		if raw == "" {
			return dispersion.Coefficients{}, fmt.Errorf("missing query parameter %q (or pass material=)", key)
		}
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return dispersion.Coefficients{}, fmt.Errorf("invalid %s value %q", key, raw)
		}
		values[i] = parsed
	}
	return dispersion.FromSlice(values)
}

// statusForError maps core errors onto HTTP statuses: mathematically
// undefined inputs are unprocessable, unknown names are not found
func statusForError(err error) int {
	var domainErr *dispersion.DomainError
	if errors.As(err, &domainErr) {
		return http.StatusUnprocessableEntity
	}
	var unknownErr *material.UnknownMaterialError
	if errors.As(err, &unknownErr) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

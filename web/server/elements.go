package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/df07/go-optics-workbench/pkg/dispersion"
	"github.com/df07/go-optics-workbench/pkg/element"
)

// CreateElementRequest tags host geometry with an optical role
type CreateElementRequest struct {
	Type        string   `json:"type"`                  // mirror, absorber, lens or lens_theory
	Base        []string `json:"base"`                  // Names of host geometry objects
	Material    string   `json:"material,omitempty"`    // Lens only; empty selects the default material
	FocalLength float64  `json:"focalLength,omitempty"` // Theoretical lens only
}

// UpdateLensRequest is a single field-change notification for a lens
type UpdateLensRequest struct {
	Field           string    `json:"field"`                     // material, sellmeier or refractionIndex
	Material        string    `json:"material,omitempty"`        // New catalog key when field == material
	Sellmeier       []float64 `json:"sellmeier,omitempty"`       // New coefficients when field == sellmeier
	RefractionIndex float64   `json:"refractionIndex,omitempty"` // New index when field == refractionIndex
}

// ElementResponse is one optical element record as served to clients
type ElementResponse struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	Label           string    `json:"label"`
	Base            []string  `json:"base"`
	Material        string    `json:"material,omitempty"`        // Lens only
	Sellmeier       []float64 `json:"sellmeier,omitempty"`       // Lens only, empty in sentinel states
	RefractionIndex *float64  `json:"refractionIndex,omitempty"` // Lens only
	FocalLength     *float64  `json:"focalLength,omitempty"`     // Theoretical lens only
}

func elementResponse(obj element.Object) ElementResponse {
	record := obj.Record()
	resp := ElementResponse{
		ID:    record.ID,
		Type:  record.Type.String(),
		Label: record.Label,
		Base:  record.Base,
	}
	switch e := obj.(type) {
	case *element.Lens:
		resp.Material = e.Material
		resp.RefractionIndex = &e.RefractionIndex
		if e.HasSellmeier {
			resp.Sellmeier = e.Sellmeier.Slice()
		}
	case *element.TheoreticalLens:
		resp.FocalLength = &e.FocalLength
	}
	return resp
}

// handleCreateElement registers a new optical element record
func (s *Server) handleCreateElement(c *gin.Context) {
	var req CreateElementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}

	elementType, err := element.ParseType(req.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	var obj element.Object
	switch elementType {
	case element.TypeMirror:
		obj = s.bench.MakeMirror(req.Base)
	case element.TypeAbsorber:
		obj = s.bench.MakeAbsorber(req.Base)
	case element.TypeLens:
		lens, err := s.bench.MakeLens(req.Base, req.Material)
		if err != nil {
			c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
			return
		}
		obj = lens
	case element.TypeTheoreticalLens:
		obj = s.bench.MakeTheoreticalLens(req.Base, req.FocalLength)
	}

	c.JSON(http.StatusCreated, elementResponse(obj))
}

// handleListElements serves all records in creation order
func (s *Server) handleListElements(c *gin.Context) {
	records := s.bench.List()
	out := make([]ElementResponse, 0, len(records))
	for _, obj := range records {
		out = append(out, elementResponse(obj))
	}
	c.JSON(http.StatusOK, out)
}

// handleGetElement serves a single record by ID
func (s *Server) handleGetElement(c *gin.Context) {
	obj, ok := s.bench.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no such element"})
		return
	}
	c.JSON(http.StatusOK, elementResponse(obj))
}

// handleUpdateLens applies a field change to a lens through the reconciler
func (s *Server) handleUpdateLens(c *gin.Context) {
	var req UpdateLensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}

	var change element.Change
	switch req.Field {
	case "material":
		change = element.MaterialChanged{Name: req.Material}
	case "sellmeier":
		coeffs, err := dispersion.FromSlice(req.Sellmeier)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		change = element.SellmeierChanged{Coefficients: coeffs}
	case "refractionIndex":
		change = element.RefractionIndexChanged{Value: req.RefractionIndex}
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("unknown field %q", req.Field)})
		return
	}

	id := c.Param("id")
	if err := s.bench.UpdateLens(id, change); err != nil {
		if _, ok := s.bench.Get(id); !ok {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	obj, _ := s.bench.Get(id)
	c.JSON(http.StatusOK, elementResponse(obj))
}

// handleDeleteElement removes a record from the registry
func (s *Server) handleDeleteElement(c *gin.Context) {
	if !s.bench.Remove(c.Param("id")) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no such element"})
		return
	}
	c.Status(http.StatusNoContent)
}

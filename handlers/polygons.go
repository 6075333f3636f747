// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"errors"
	"image"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/gogpu/gg"
	geojson "github.com/paulmach/go.geojson"

	"github.com/danielhkuo/polycanvas/canvas"
	"github.com/danielhkuo/polycanvas/cliparse"
	"github.com/danielhkuo/polycanvas/editor"
	"github.com/danielhkuo/polycanvas/geometry"
	"github.com/danielhkuo/polycanvas/middleware"
	"github.com/danielhkuo/polycanvas/models"
	"github.com/danielhkuo/polycanvas/service"
)

type PolygonHandler struct {
	svc        *service.PolygonService
	cfg        cliparse.Config
	background image.Image
}

// NewPolygonHandler creates the polygon handler. background may be nil, in
// which case previews use the solid fallback fill.
func NewPolygonHandler(svc *service.PolygonService, cfg cliparse.Config, background image.Image) *PolygonHandler {
	return &PolygonHandler{svc: svc, cfg: cfg, background: background}
}

// ListPolygons handles GET /api/polygons
func (h *PolygonHandler) ListPolygons(w http.ResponseWriter, r *http.Request) {
	polygons, err := h.svc.GetPolygons(r.Context())
	if err != nil {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch polygons")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polygons)
}

// CreatePolygon handles POST /api/polygons
func (h *PolygonHandler) CreatePolygon(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePolygonRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		if errors.Is(err, models.ErrInvalidPoint) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid polygon payload")
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := models.ValidatePolygonInput(req.Name, req.Points); err != nil {
		slog.Debug("rejected polygon payload", "error", err)
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid polygon payload")
		return
	}

	polygon, err := h.svc.CreatePolygon(r.Context(), req.Name, req.Points)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create polygon")
		return
	}

	slog.Info("polygon created", "polygon_id", polygon.ID, "name", polygon.Name, "points", len(polygon.Points))

	middleware.JSONResponse(w, http.StatusCreated, polygon)
}

// DeletePolygon handles DELETE /api/polygons/{id}
func (h *PolygonHandler) DeletePolygon(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	removed, err := h.svc.DeletePolygon(r.Context(), id)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete polygon")
		return
	}
	if !removed {
		middleware.ErrorResponse(w, http.StatusNotFound, "Polygon not found")
		return
	}

	slog.Info("polygon deleted", "polygon_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.DeletePolygonResponse{Success: true})
}

// ExportGeoJSON handles GET /api/polygons/export.geojson
//
// Canvas coordinates are written as-is; each ring is closed by repeating its
// first vertex.
func (h *PolygonHandler) ExportGeoJSON(w http.ResponseWriter, r *http.Request) {
	polygons, err := h.svc.GetPolygons(r.Context())
	if err != nil {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch polygons")
		return
	}

	fc := geojson.NewFeatureCollection()
	for _, p := range polygons {
		fc.AddFeature(polygonFeature(p))
	}

	body, err := fc.MarshalJSON()
	if err != nil {
		slog.Error("failed to encode GeoJSON", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to export polygons")
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func polygonFeature(p models.Polygon) *geojson.Feature {
	ring := make([][]float64, 0, len(p.Points)+1)
	for _, pt := range p.Points {
		ring = append(ring, []float64{pt.X, pt.Y})
	}
	if len(ring) > 0 {
		ring = append(ring, ring[0])
	}

	f := geojson.NewPolygonFeature([][][]float64{ring})
	f.ID = p.ID
	f.SetProperty("id", p.ID)
	f.SetProperty("name", p.Name)
	f.SetProperty("area", geometry.Area(p.Points))
	return f
}

// Preview handles GET /api/polygons/preview.png?selected={id}
func (h *PolygonHandler) Preview(w http.ResponseWriter, r *http.Request) {
	polygons, err := h.svc.GetPolygons(r.Context())
	if err != nil {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch polygons")
		return
	}

	dc := gg.NewContext(canvas.Width, canvas.Height)
	defer dc.Close()

	frame := editor.Frame{
		Polygons: polygons,
		Selected: r.URL.Query().Get("selected"),
	}
	if err := editor.Render(editor.NewGGSurface(dc), frame, h.background); err != nil {
		slog.Error("failed to render preview", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render preview")
		return
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		slog.Error("failed to encode preview", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render preview")
		return
	}

	slog.Debug("preview rendered", "polygons", len(polygons), "size", humanize.Bytes(uint64(buf.Len())))

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"image"
	"net/http"

	"github.com/danielhkuo/polycanvas/cliparse"
	"github.com/danielhkuo/polycanvas/handlers"
	"github.com/danielhkuo/polycanvas/middleware"
	"github.com/danielhkuo/polycanvas/service"
)

func NewRouter(svc *service.PolygonService, cfg cliparse.Config, background image.Image) *http.ServeMux {
	mux := http.NewServeMux()

	polygonHandler := handlers.NewPolygonHandler(svc, cfg, background)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Polygon collection
	mux.HandleFunc("GET /api/polygons", middleware.WithLogging(polygonHandler.ListPolygons))
	mux.HandleFunc("POST /api/polygons", middleware.WithLogging(polygonHandler.CreatePolygon))
	mux.HandleFunc("DELETE /api/polygons/{id}", middleware.WithLogging(polygonHandler.DeletePolygon))

	// Read-only renditions
	mux.HandleFunc("GET /api/polygons/export.geojson", middleware.WithLogging(polygonHandler.ExportGeoJSON))
	mux.HandleFunc("GET /api/polygons/preview.png", middleware.WithLogging(polygonHandler.Preview))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("polycanvas API v1"))
	})

	return mux
}

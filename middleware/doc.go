// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /api/polygons", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms). Completions with a 5xx status are logged at Warn.

# CORS Middleware

Enable cross-origin requests for a browser frontend:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Preflight requests are answered with 204 and never reach the mux.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, polygons)
	middleware.ErrorResponse(w, http.StatusNotFound, "Polygon not found")

Error bodies have the shape {"error": status text, "message": detail}.

	var req models.CreatePolygonRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Honours X-Forwarded-For and X-Real-IP before RemoteAddr.
*/
package middleware

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package client is the HTTP client for the polygon API used by the desktop
// editor. Non-2xx responses become *APIError values carrying the server's
// message; a 404 also matches ErrNotFound.
package client

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePolygonRequest: name, points

# Response Types

Types for JSON responses:

  - DeletePolygonResponse: success
  - ErrorResponse: error, message

# Domain Types

  - Polygon: id, name, ordered points (at least three once committed)
  - Point: an (x, y) pair encoded as a two element array

Points accept string-typed coordinates on ingress and always encode as numbers:

	{"name": "Lot", "points": [["1", "2"], [3, 4], [5, 6]]}

# Validation

	err := models.ValidatePolygonInput(name, points)

Returns an error wrapping ErrInvalidPolygon when the name is blank, fewer than
MinPolygonPoints points are supplied, or a coordinate is not finite.

# Constants

Notification severities:

	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityError   = "error"
*/
package models

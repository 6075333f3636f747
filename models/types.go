package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MinPolygonPoints is the smallest vertex count a committed polygon may have.
const MinPolygonPoints = 3

// Notification severities
const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

var (
	ErrInvalidPolygon = errors.New("invalid polygon payload")
	ErrInvalidPoint   = errors.New("invalid point structure")
)

type Severity string

// Point is an (x, y) pair in logical canvas coordinates.
// On the wire it is a two element array: [x, y].
type Point struct {
	X float64
	Y float64
}

func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

// UnmarshalJSON accepts numbers or numeric strings for each coordinate,
// so string-typed payloads are coerced on ingress.
func (p *Point) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return ErrInvalidPoint
	}
	if len(raw) != 2 {
		return ErrInvalidPoint
	}

	x, err := parseCoordinate(raw[0])
	if err != nil {
		return err
	}
	y, err := parseCoordinate(raw[1])
	if err != nil {
		return err
	}

	p.X, p.Y = x, y
	return nil
}

func parseCoordinate(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, ErrInvalidPoint
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not numeric", ErrInvalidPoint, s)
		}
		return v, nil
	}

	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, ErrInvalidPoint
	}
	return v, nil
}

// Finite reports whether both coordinates are finite numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Request types

type CreatePolygonRequest struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Response types

type DeletePolygonResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Domain types

type Polygon struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// ValidatePolygonInput checks a create payload: a non-blank name and at
// least MinPolygonPoints finite vertices.
func ValidatePolygonInput(name string, points []Point) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPolygon)
	}
	if len(points) < MinPolygonPoints {
		return fmt.Errorf("%w: at least %d points required, got %d", ErrInvalidPolygon, MinPolygonPoints, len(points))
	}
	for i, p := range points {
		if !p.Finite() {
			return fmt.Errorf("%w: point %d is not finite", ErrInvalidPolygon, i)
		}
	}
	return nil
}

// ClonePoints returns a copy of points that shares no backing array.
func ClonePoints(points []Point) []Point {
	if points == nil {
		return nil
	}
	out := make([]Point, len(points))
	copy(out, points)
	return out
}

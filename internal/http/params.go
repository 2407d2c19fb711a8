package http

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
)

const maxSafeInteger = 1<<53 - 1

var errBodyTooLarge = errors.New("request body too large")

// payload is a decoded JSON object body. Numbers stay json.Number so ints and strings can be told apart.
type payload map[string]interface{}

// decodePayload reads a JSON object body; an empty body is an empty payload.
func decodePayload(r *http.Request) (payload, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var p payload
	err := dec.Decode(&p)
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return payload{}, nil
	case errors.As(err, &tooLarge):
		return nil, errBodyTooLarge
	case err != nil:
		return nil, err
	}
	if p == nil {
		p = payload{}
	}
	return p, nil
}

// respondDecodeError writes the 400 or 413 for a body decodePayload rejected.
func respondDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, errBodyTooLarge) {
		respondError(w, http.StatusRequestEntityTooLarge, "request_too_large", "request body too large")
		return
	}
	respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
}

// text returns the field as a string; present is false when the key is missing or null.
func (p payload) text(key string) (value string, present bool) {
	raw, ok := p[key]
	if !ok || raw == nil {
		return "", false
	}
	switch v := raw.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", true
	}
}

func (p payload) textPtr(key string) *string {
	v, ok := p.text(key)
	if !ok {
		return nil
	}
	return &v
}

// number accepts JSON numbers and numeric strings; anything else present is NaN.
func (p payload) number(key string) (value float64, present bool) {
	raw, ok := p[key]
	if !ok || raw == nil {
		return math.NaN(), false
	}
	switch v := raw.(type) {
	case json.Number:
		return parseNumber(v.String()), true
	case string:
		return parseNumber(v), true
	default:
		return math.NaN(), true
	}
}

// count reads a quantity: a missing key yields fallback and an explicit null counts as zero.
func (p payload) count(key string, fallback float64) float64 {
	raw, ok := p[key]
	switch {
	case !ok:
		return fallback
	case raw == nil:
		return 0
	}
	v, _ := p.number(key)
	return v
}

func (p payload) numberPtr(key string) *float64 {
	v, ok := p.number(key)
	if !ok {
		return nil
	}
	return &v
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return math.NaN()
	}
	return f
}

// asInt reports whether f is a whole number small enough to be exact.
func asInt(f float64) (int64, bool) {
	if math.IsNaN(f) || f != math.Trunc(f) || math.Abs(f) > maxSafeInteger {
		return 0, false
	}
	return int64(f), true
}

// parseID parses a path id; ok is false for anything that cannot name an entity.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryPrice reads an optional price bound; empty or non-numeric values impose no bound.
func queryPrice(r *http.Request, key string) *float64 {
	f := parseNumber(r.URL.Query().Get(key))
	if math.IsNaN(f) {
		return nil
	}
	return &f
}

package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	identitydomain "swipe-go/internal/domain/identity"
	"swipe-go/internal/transport/httpserver/middleware"
)

type page struct {
	Limit  int
	Offset int
}

func actor(r *http.Request) identitydomain.Principal {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	return principal
}

func parseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid int")
	}
	return parsed, nil
}

// parsePage reads limit/offset. A zero limit returns every row.
func parsePage(r *http.Request) (page, error) {
	query := r.URL.Query()
	limit, err := parseIntParam(query.Get("limit"), 0)
	if err != nil {
		return page{}, fmt.Errorf("invalid limit")
	}
	offset, err := parseIntParam(query.Get("offset"), 0)
	if err != nil {
		return page{}, fmt.Errorf("invalid offset")
	}
	return page{Limit: limit, Offset: offset}, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

func parseInt64Param(value string) (*int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseBoolParam(value string) (*bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func stringParam(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func isPartial(r *http.Request) bool {
	return r.Method == http.MethodPatch
}

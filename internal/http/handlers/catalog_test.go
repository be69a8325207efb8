package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestProducts_Filter(t *testing.T) {
	a := newApp(t, nil, stubCatalog{}, nil)

	code, body := a.do(t, http.MethodGet, "/api/v1/products?q=BACK", nil)
	if code != http.StatusOK {
		t.Fatalf("code=%d body=%s", code, body)
	}
	var ps []map[string]any
	_ = json.Unmarshal(body, &ps)
	if len(ps) != 1 || ps[0]["title"] != "Fjallraven Backpack" {
		t.Fatalf("products=%s", body)
	}

	_, body = a.do(t, http.MethodGet, "/api/v1/products?category=electronics", nil)
	_ = json.Unmarshal(body, &ps)
	if len(ps) != 1 || ps[0]["category"] != "electronics" {
		t.Fatalf("category filter=%s", body)
	}

	code, body = a.do(t, http.MethodGet, "/api/v1/products?q=%3Cscript%3E", nil)
	if code != http.StatusBadRequest || decode(t, body)["field"] != "q" {
		t.Fatalf("bad q: %d %s", code, body)
	}
}

func TestProducts_CatalogDown(t *testing.T) {
	a := newApp(t, nil, stubCatalog{err: errors.New("dial tcp: connection refused")}, nil)
	code, body := a.do(t, http.MethodGet, "/api/v1/categories", nil)
	if code != http.StatusBadGateway {
		t.Fatalf("code=%d", code)
	}
	if strings.Contains(string(body), "connection refused") {
		t.Fatalf("internal detail leaked: %s", body)
	}
}

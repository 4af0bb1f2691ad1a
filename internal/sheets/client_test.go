package sheets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matthieukhl/expotrack/internal/config"
)

func TestNewClient_NotConfigured(t *testing.T) {
	_, err := NewClient(&config.SheetsConfig{SpreadsheetID: "abc"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}

	_, err = NewClient(&config.SheetsConfig{APIKey: "k"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured for empty spreadsheet id, got %v", err)
	}
}

func TestClient_Values(t *testing.T) {
	var gotPath, gotKey, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotKey = r.URL.Query().Get("key")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"range":"Orders!A1:C3","majorDimension":"ROWS","values":[["Booth #","Exhibitor Name","Item"],["A-245","TechFlow Innovations","Display"]]}`))
	}))
	defer srv.Close()

	c, err := NewClient(&config.SheetsConfig{
		BaseURL:       srv.URL,
		SpreadsheetID: "sheet-123",
		APIKey:        "secret",
		AccessToken:   "token",
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	values, err := c.Values(context.Background(), "Booth Checklist")
	if err != nil {
		t.Fatalf("Values: %v", err)
	}

	if gotPath != "/v4/spreadsheets/sheet-123/values/Booth%20Checklist" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "secret" {
		t.Errorf("key = %q", gotKey)
	}
	if gotAuth != "Bearer token" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if len(values) != 2 || values[1][0] != "A-245" {
		t.Errorf("values = %v", values)
	}
}

func TestClient_ValuesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission","status":"PERMISSION_DENIED"}}`))
	}))
	defer srv.Close()

	c, err := NewClient(&config.SheetsConfig{BaseURL: srv.URL, SpreadsheetID: "x", APIKey: "k"})
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.Values(context.Background(), "Orders")
	if err == nil {
		t.Fatal("expected error on 403")
	}
	if !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "permission") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestClient_ValuesMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c, _ := NewClient(&config.SheetsConfig{BaseURL: srv.URL, SpreadsheetID: "x", APIKey: "k"})
	if _, err := c.Values(context.Background(), "Orders"); err == nil {
		t.Error("expected decode error")
	}
}

package dossier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDealClient_DocumentData(t *testing.T) {
	want := testDocumentData()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/deal/document/st-1/data" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	c := NewDealClient(srv.URL)
	got, err := c.DocumentData(context.Background(), "st-1")
	if err != nil {
		t.Fatalf("DocumentData: %v", err)
	}
	if got.FirstName != "John" || got.Credit.ID != "credit-1" {
		t.Fatalf("decoded data mismatch: %+v", got)
	}
	if len(got.Credit.Schedule) != 2 {
		t.Fatalf("schedule lost: %+v", got.Credit.Schedule)
	}
}

func TestDealClient_MarkDocumentCreated_SendsIdempotencyHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/deal/document/st-1/status" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Errorf("missing X-Request-Id")
		}
		if r.Header.Get("X-Request-At") == "" {
			t.Errorf("missing X-Request-At")
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewDealClient(srv.URL)
	if err := c.MarkDocumentCreated(context.Background(), "st-1"); err != nil {
		t.Fatalf("MarkDocumentCreated: %v", err)
	}
}

func TestDealClient_MarkDocumentCreated_NonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	c := NewDealClient(srv.URL)
	if err := c.MarkDocumentCreated(context.Background(), "st-1"); err == nil {
		t.Fatalf("expected error on 409")
	}
}

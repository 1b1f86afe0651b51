package legalcase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"advoqat/models"

	"go.uber.org/zap"
)

// TestSubmit posts the case with the client ID and pending status attached.
func TestSubmit(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/cases" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(models.LegalCase{ID: "case-1", ClientID: "user-1", Status: "pending"})
	}))
	defer srv.Close()

	svc := NewCoreCaseClient(srv.URL, nil, zap.NewNop())
	created, err := svc.Submit(context.Background(), "user-1", models.CaseSubmission{
		Title:       "Deposit not returned",
		Category:    "property",
		Description: "Landlord kept the deposit without cause.",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if created.ID != "case-1" {
		t.Errorf("id = %q", created.ID)
	}
	if got["clientId"] != "user-1" || got["status"] != "pending" {
		t.Errorf("payload = %v", got)
	}
}

// TestListByClient filters by the clientId query parameter.
func TestListByClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("clientId") != "user-1" {
			t.Errorf("clientId = %q", r.URL.Query().Get("clientId"))
		}
		json.NewEncoder(w).Encode([]models.LegalCase{{ID: "case-1"}, {ID: "case-2"}})
	}))
	defer srv.Close()

	svc := NewCoreCaseClient(srv.URL, nil, zap.NewNop())
	cases, err := svc.ListByClient(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListByClient: %v", err)
	}
	if len(cases) != 2 {
		t.Errorf("got %d cases, want 2", len(cases))
	}
}

// TestSubmit_ServerError surfaces the upstream message.
func TestSubmit_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "unknown category"})
	}))
	defer srv.Close()

	svc := NewCoreCaseClient(srv.URL, nil, zap.NewNop())
	_, err := svc.Submit(context.Background(), "user-1", models.CaseSubmission{
		Title: "x", Category: "alien-law", Description: "y",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if want := "unknown category"; !strings.Contains(err.Error(), want) {
		t.Errorf("err = %v, want it to mention %q", err, want)
	}
}

package lawyer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"advoqat/models"

	"go.uber.org/zap"
)

func directoryServer(t *testing.T, lawyers []models.Lawyer) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lawyers" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(lawyers)
	}))
}

// TestSearch_SpecialtyFilterForwarded verifies the specialty filter is sent
// upstream.
func TestSearch_SpecialtyFilterForwarded(t *testing.T) {
	var gotSpecialty string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSpecialty = r.URL.Query().Get("specialty")
		json.NewEncoder(w).Encode([]models.Lawyer{})
	}))
	defer srv.Close()

	svc := NewDefaultLawyerService(srv.URL, nil, zap.NewNop())
	if _, err := svc.Search(context.Background(), models.LawyerSearchQuery{Specialty: "family"}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotSpecialty != "family" {
		t.Errorf("specialty = %q, want family", gotSpecialty)
	}
}

// TestSearch_MinRatingAppliedLocally verifies the rating filter trims the
// fetched directory page.
func TestSearch_MinRatingAppliedLocally(t *testing.T) {
	srv := directoryServer(t, []models.Lawyer{
		{ID: "a", Name: "A", Rating: 4.8},
		{ID: "b", Name: "B", Rating: 3.2},
		{ID: "c", Name: "C", Rating: 4.1},
	})
	defer srv.Close()

	svc := NewDefaultLawyerService(srv.URL, nil, zap.NewNop())
	lawyers, err := svc.Search(context.Background(), models.LawyerSearchQuery{MinRating: 4.0})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(lawyers) != 2 {
		t.Fatalf("got %d lawyers, want 2", len(lawyers))
	}
	for _, l := range lawyers {
		if l.Rating < 4.0 {
			t.Errorf("lawyer %s below rating threshold: %v", l.ID, l.Rating)
		}
	}
}

// TestGetByID verifies single-profile fetch.
func TestGetByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lawyers/lw-1" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(models.Lawyer{ID: "lw-1", Name: "Dr. Smith", Specialty: "Family Law"})
	}))
	defer srv.Close()

	svc := NewDefaultLawyerService(srv.URL, nil, zap.NewNop())
	lawyer, err := svc.GetByID(context.Background(), "lw-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if lawyer.Name != "Dr. Smith" {
		t.Errorf("name = %q", lawyer.Name)
	}
}

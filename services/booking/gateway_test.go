package booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func bookingReq() CreateBookingRequest {
	return CreateBookingRequest{
		LawyerID: "lw-1",
		ClientID: "client-1",
		Datetime: time.Date(2030, 3, 1, 14, 0, 0, 0, time.UTC),
		Method:   "voice",
		Notes:    "custody question",
		Status:   "scheduled",
	}
}

func newGateway(serverURL string) *RemoteBookingGateway {
	return NewRemoteBookingGateway(serverURL, "https://app.example/consultations", "https://app.example/consultations", zap.NewNop())
}

// TestCreateBooking_Success verifies the posted payload and response parsing.
func TestCreateBooking_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/consultations" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["lawyerId"] != "lw-1" || body["clientId"] != "client-1" || body["method"] != "voice" {
			t.Errorf("unexpected payload: %v", body)
		}
		if body["status"] != "scheduled" {
			t.Errorf("status hint = %v, want scheduled", body["status"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status":         "confirmed",
			"consultationId": "cons-42",
			"fee":            map[string]any{"total": 60.0},
		})
	}))
	defer srv.Close()

	result, err := newGateway(srv.URL).CreateBooking(context.Background(), bookingReq())
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if result.ConsultationID != "cons-42" {
		t.Errorf("consultation id = %q, want cons-42", result.ConsultationID)
	}
	if result.Fee != 60 {
		t.Errorf("fee = %v, want 60", result.Fee)
	}
}

// TestCreateBooking_MissingLawyer verifies the pre-flight check: no request
// is sent without a lawyer id.
func TestCreateBooking_MissingLawyer(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	req := bookingReq()
	req.LawyerID = ""
	_, err := newGateway(srv.URL).CreateBooking(context.Background(), req)
	if !errors.Is(err, ErrMissingLawyer) {
		t.Fatalf("err = %v, want ErrMissingLawyer", err)
	}
	if called {
		t.Error("request was sent despite missing lawyer")
	}
}

// TestCreateBooking_MissingConsultationID verifies a 2xx response without a
// consultation id raises the distinct error.
func TestCreateBooking_MissingConsultationID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"fee":     map[string]any{"total": 60.0},
		})
	}))
	defer srv.Close()

	_, err := newGateway(srv.URL).CreateBooking(context.Background(), bookingReq())
	if !errors.Is(err, ErrMissingConsultationID) {
		t.Fatalf("err = %v, want ErrMissingConsultationID", err)
	}
}

// TestCreateBooking_InvalidFee verifies zero and negative fees are rejected.
func TestCreateBooking_InvalidFee(t *testing.T) {
	for _, fee := range []float64{0, -5} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"success":        true,
				"consultationId": "cons-1",
				"fee":            map[string]any{"total": fee},
			})
		}))

		_, err := newGateway(srv.URL).CreateBooking(context.Background(), bookingReq())
		srv.Close()
		if !errors.Is(err, ErrInvalidFee) {
			t.Errorf("fee %v: err = %v, want ErrInvalidFee", fee, err)
		}
	}
}

// TestCreateBooking_ServerError verifies non-2xx handling: the parsed message
// and status code are surfaced.
func TestCreateBooking_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]any{"message": "scheduling backend unavailable"})
	}))
	defer srv.Close()

	_, err := newGateway(srv.URL).CreateBooking(context.Background(), bookingReq())
	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("err = %T %v, want *GatewayError", err, err)
	}
	if gwErr.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", gwErr.StatusCode)
	}
	if gwErr.Message != "scheduling backend unavailable" {
		t.Errorf("message = %q", gwErr.Message)
	}
}

// TestCreateBooking_NonJSONError verifies the raw-text fallback when the
// error body is not JSON.
func TestCreateBooking_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream timeout"))
	}))
	defer srv.Close()

	_, err := newGateway(srv.URL).CreateBooking(context.Background(), bookingReq())
	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("err = %T %v, want *GatewayError", err, err)
	}
	if gwErr.Message != "upstream timeout" {
		t.Errorf("message = %q, want raw body text", gwErr.Message)
	}
}

package booking

import (
	"context"
	"reflect"
	"testing"
	"time"

	"advoqat/models"
)

func testJourney(clientID string) *models.BookingJourney {
	return &models.BookingJourney{
		ClientID: clientID,
		Step:     models.StepReview,
		SelectedLawyer: &models.LawyerRef{
			ID:        "lw-1",
			Name:      "Dr. Smith",
			Specialty: "Family Law",
		},
		BookingDate:   "2030-03-01",
		BookingTime:   "14:00",
		BookingMethod: models.MethodVoice,
		BookingNotes:  "custody question",
		Fees:          QuoteFees(models.MethodVoice),
		TotalFee:      60,
	}
}

// TestMemoryStore_RoundTrip verifies that a load immediately after save
// returns an object equal to the saved one. The timestamps are compared with
// time.Time.Equal: Save stamps them from the wall clock, and the JSON round
// trip drops the monotonic reading, so a struct-level DeepEqual would report
// a mismatch on semantically equal times.
func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryJourneyStore()
	ctx := context.Background()

	saved := testJourney("client-1")
	if err := store.Save(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(ctx, "client-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected a journey, got nil")
	}
	if !loaded.Timestamp.Equal(saved.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", loaded.Timestamp, saved.Timestamp)
	}
	if !loaded.ExpiresAt.Equal(saved.ExpiresAt) {
		t.Errorf("ExpiresAt = %v, want %v", loaded.ExpiresAt, saved.ExpiresAt)
	}
	savedRest, loadedRest := *saved, *loaded
	savedRest.Timestamp, loadedRest.Timestamp = time.Time{}, time.Time{}
	savedRest.ExpiresAt, loadedRest.ExpiresAt = time.Time{}, time.Time{}
	if !reflect.DeepEqual(&savedRest, &loadedRest) {
		t.Errorf("round trip mismatch:\nsaved:  %+v\nloaded: %+v", savedRest, loadedRest)
	}
}

// TestMemoryStore_SaveStampsExpiry verifies that Save sets the 24h expiry
// window from the current time.
func TestMemoryStore_SaveStampsExpiry(t *testing.T) {
	store := NewMemoryJourneyStore()
	ctx := context.Background()

	before := time.Now()
	j := testJourney("client-1")
	if err := store.Save(ctx, j); err != nil {
		t.Fatalf("save: %v", err)
	}

	want := before.Add(JourneyTTL)
	if j.ExpiresAt.Before(want) || j.ExpiresAt.After(want.Add(time.Minute)) {
		t.Errorf("ExpiresAt = %v, want roughly %v", j.ExpiresAt, want)
	}
}

// TestMemoryStore_ExpiredLoad verifies that loading an expired journey
// returns nothing and empties the slot afterwards.
func TestMemoryStore_ExpiredLoad(t *testing.T) {
	store := NewMemoryJourneyStore()
	ctx := context.Background()

	// Save under a clock far enough in the past that the record is already
	// expired when loaded under the real clock.
	past := time.Now().Add(-JourneyTTL - time.Millisecond)
	store.SetClock(func() time.Time { return past })
	if err := store.Save(ctx, testJourney("client-1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	store.SetClock(time.Now)

	loaded, err := store.Load(ctx, "client-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != nil {
		t.Errorf("expected expired journey to be discarded, got %+v", loaded)
	}
	if store.Len() != 0 {
		t.Errorf("expected empty slot after expiry, got %d entries", store.Len())
	}

	// A second load must behave identically (expiry is idempotent).
	loaded, err = store.Load(ctx, "client-1")
	if err != nil || loaded != nil {
		t.Errorf("second load after expiry: journey=%v err=%v", loaded, err)
	}
}

// TestMemoryStore_SingleSlot verifies that saving twice overwrites rather
// than appends.
func TestMemoryStore_SingleSlot(t *testing.T) {
	store := NewMemoryJourneyStore()
	ctx := context.Background()

	first := testJourney("client-1")
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := testJourney("client-1")
	second.BookingMethod = models.MethodChat
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("save: %v", err)
	}

	if store.Len() != 1 {
		t.Fatalf("expected a single slot, got %d", store.Len())
	}
	loaded, err := store.Load(ctx, "client-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.BookingMethod != models.MethodChat {
		t.Errorf("expected overwritten journey, got method %q", loaded.BookingMethod)
	}
}

// TestMemoryStore_Clear verifies unconditional deletion.
func TestMemoryStore_Clear(t *testing.T) {
	store := NewMemoryJourneyStore()
	ctx := context.Background()

	if err := store.Save(ctx, testJourney("client-1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clear(ctx, "client-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	loaded, err := store.Load(ctx, "client-1")
	if err != nil || loaded != nil {
		t.Errorf("expected empty slot after clear, got journey=%v err=%v", loaded, err)
	}

	// Clearing an empty slot is fine.
	if err := store.Clear(ctx, "client-1"); err != nil {
		t.Errorf("clear on empty slot: %v", err)
	}
}

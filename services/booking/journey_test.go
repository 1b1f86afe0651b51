package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"advoqat/models"

	"go.uber.org/zap"
)

// fakeGateway scripts gateway behavior for journey tests.
type fakeGateway struct {
	bookingResult  *BookingResult
	bookingErr     error
	checkout       *models.CheckoutSession
	checkoutErr    error
	bookingCalls   int
	checkoutCalls  int
	bookingStarted chan struct{} // closed when CreateBooking is entered, if set
	bookingRelease chan struct{} // CreateBooking blocks on this, if set
}

func (f *fakeGateway) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingResult, error) {
	f.bookingCalls++
	if f.bookingStarted != nil {
		close(f.bookingStarted)
		f.bookingStarted = nil
	}
	if f.bookingRelease != nil {
		<-f.bookingRelease
	}
	if f.bookingErr != nil {
		return nil, f.bookingErr
	}
	return f.bookingResult, nil
}

func (f *fakeGateway) CreatePaymentSession(ctx context.Context, req models.PaymentSessionRequest) (*models.CheckoutSession, error) {
	f.checkoutCalls++
	if f.checkoutErr != nil {
		return nil, f.checkoutErr
	}
	return f.checkout, nil
}

type fakeConsultations struct {
	consultation *models.Consultation
	err          error
}

func (f *fakeConsultations) GetConsultation(ctx context.Context, id string) (*models.Consultation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.consultation, nil
}

func newTestService(gw BookingGateway) (*DefaultJourneyService, *MemoryJourneyStore) {
	store := NewMemoryJourneyStore()
	svc := NewDefaultJourneyService(store, gw, &fakeConsultations{
		consultation: &models.Consultation{ID: "cons-1", Status: models.ConsultationConfirmed},
	}, zap.NewNop())
	return svc, store
}

func futureDate() string {
	return time.Now().Add(72 * time.Hour).Format("2006-01-02")
}

func voiceDetails() DetailsInput {
	return DetailsInput{
		Lawyer: &models.LawyerRef{ID: "lw-1", Name: "Dr. Smith", Specialty: "Family Law"},
		Date:   futureDate(),
		Time:   "14:00",
		Method: models.MethodVoice,
	}
}

// TestSubmitDetails_RequiresAllFields verifies the controller never advances
// from details to review unless lawyer, date and time are all present.
func TestSubmitDetails_RequiresAllFields(t *testing.T) {
	svc, _ := newTestService(&fakeGateway{})
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*DetailsInput)
		field  string
	}{
		{"missing lawyer", func(d *DetailsInput) { d.Lawyer = nil }, "selectedLawyer"},
		{"empty lawyer id", func(d *DetailsInput) { d.Lawyer = &models.LawyerRef{} }, "selectedLawyer"},
		{"missing date", func(d *DetailsInput) { d.Date = "" }, "bookingDate"},
		{"missing time", func(d *DetailsInput) { d.Time = "" }, "bookingTime"},
		{"bad method", func(d *DetailsInput) { d.Method = "telepathy" }, "bookingMethod"},
		{"unparseable date", func(d *DetailsInput) { d.Date = "not-a-date" }, "bookingDate"},
		{"past datetime", func(d *DetailsInput) { d.Date = "2001-01-01" }, "bookingDate"},
	}

	for _, tc := range cases {
		input := voiceDetails()
		tc.mutate(&input)

		_, err := svc.SubmitDetails(ctx, "client-1", input)
		if err == nil {
			t.Errorf("%s: expected validation error, got none", tc.name)
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected *ValidationError, got %T: %v", tc.name, err, err)
			continue
		}
		if verr.Field != tc.field {
			t.Errorf("%s: error field = %q, want %q", tc.name, verr.Field, tc.field)
		}
	}
}

// TestSubmitDetails_VoiceQuote verifies the review payload for a voice
// consultation: base 50 + surcharge 10 = total 60, with the documented
// display strings.
func TestSubmitDetails_VoiceQuote(t *testing.T) {
	svc, _ := newTestService(&fakeGateway{})

	summary, err := svc.SubmitDetails(context.Background(), "client-1", voiceDetails())
	if err != nil {
		t.Fatalf("SubmitDetails: %v", err)
	}

	j := summary.Journey
	if j.Step != models.StepReview {
		t.Errorf("step = %v, want review", j.Step)
	}
	if j.Fees.BaseFee != 50 || j.Fees.AdditionalFee != 10 || j.Fees.TotalFee != 60 {
		t.Errorf("fees = %+v, want 50/10/60", j.Fees)
	}
	if summary.TotalDisplay != "$60.00" {
		t.Errorf("TotalDisplay = %q, want \"$60.00\"", summary.TotalDisplay)
	}
	if summary.SurchargeDisplay != "$10.00" {
		t.Errorf("SurchargeDisplay = %q, want \"$10.00\"", summary.SurchargeDisplay)
	}
}

// TestSubmitDetails_NoSurchargeLineForVideo verifies the surcharge line is
// omitted when there is nothing to surcharge.
func TestSubmitDetails_NoSurchargeLineForVideo(t *testing.T) {
	svc, _ := newTestService(&fakeGateway{})

	input := voiceDetails()
	input.Method = models.MethodVideo
	summary, err := svc.SubmitDetails(context.Background(), "client-1", input)
	if err != nil {
		t.Fatalf("SubmitDetails: %v", err)
	}
	if summary.SurchargeDisplay != "" {
		t.Errorf("SurchargeDisplay = %q, want empty", summary.SurchargeDisplay)
	}
	if summary.TotalDisplay != "$50.00" {
		t.Errorf("TotalDisplay = %q, want \"$50.00\"", summary.TotalDisplay)
	}
}

// TestProceedToPayment_Success verifies the happy path: both gateway calls
// run once, the journey records the consultation and session ids, and the
// slot is persisted for recovery.
func TestProceedToPayment_Success(t *testing.T) {
	gw := &fakeGateway{
		bookingResult: &BookingResult{ConsultationID: "cons-1", Fee: 60},
		checkout:      &models.CheckoutSession{ID: "cs_123", URL: "https://checkout.example/cs_123"},
	}
	svc, store := newTestService(gw)
	ctx := context.Background()

	summary, err := svc.SubmitDetails(ctx, "client-1", voiceDetails())
	if err != nil {
		t.Fatalf("SubmitDetails: %v", err)
	}

	checkout, err := svc.ProceedToPayment(ctx, summary.Journey)
	if err != nil {
		t.Fatalf("ProceedToPayment: %v", err)
	}
	if checkout.URL != "https://checkout.example/cs_123" {
		t.Errorf("checkout URL = %q", checkout.URL)
	}
	if gw.bookingCalls != 1 || gw.checkoutCalls != 1 {
		t.Errorf("gateway calls = %d/%d, want 1/1", gw.bookingCalls, gw.checkoutCalls)
	}

	saved, err := store.Load(ctx, "client-1")
	if err != nil || saved == nil {
		t.Fatalf("expected persisted journey, got %v err=%v", saved, err)
	}
	if saved.ConsultationID != "cons-1" || saved.CheckoutSession != "cs_123" {
		t.Errorf("persisted journey ids = %q/%q", saved.ConsultationID, saved.CheckoutSession)
	}
	if saved.Step != models.StepPayment {
		t.Errorf("persisted step = %v, want payment", saved.Step)
	}
}

// TestProceedToPayment_BookingFailureSkipsCheckout verifies that a failed
// create-booking call never triggers the payment-session call and the journey
// stays retryable at review.
func TestProceedToPayment_BookingFailureSkipsCheckout(t *testing.T) {
	gw := &fakeGateway{bookingErr: ErrMissingConsultationID}
	svc, _ := newTestService(gw)
	ctx := context.Background()

	summary, err := svc.SubmitDetails(ctx, "client-1", voiceDetails())
	if err != nil {
		t.Fatalf("SubmitDetails: %v", err)
	}

	_, err = svc.ProceedToPayment(ctx, summary.Journey)
	if !errors.Is(err, ErrMissingConsultationID) {
		t.Fatalf("err = %v, want ErrMissingConsultationID", err)
	}
	if gw.checkoutCalls != 0 {
		t.Errorf("payment-session call made after booking failure")
	}
	if summary.Journey.Step != models.StepReview {
		t.Errorf("journey step = %v, want review (retryable)", summary.Journey.Step)
	}

	// The user may retry manually; the guard must have been released.
	gw.bookingErr = nil
	gw.bookingResult = &BookingResult{ConsultationID: "cons-2", Fee: 60}
	gw.checkout = &models.CheckoutSession{ID: "cs_9", URL: "https://checkout.example/cs_9"}
	if _, err := svc.ProceedToPayment(ctx, summary.Journey); err != nil {
		t.Errorf("retry after failure: %v", err)
	}
}

// TestProceedToPayment_MissingCheckoutURL verifies the distinct failure when
// the payment session comes back without a URL: no redirect happens and the
// journey remains retryable.
func TestProceedToPayment_MissingCheckoutURL(t *testing.T) {
	gw := &fakeGateway{
		bookingResult: &BookingResult{ConsultationID: "cons-1", Fee: 60},
		checkoutErr:   ErrMissingCheckoutURL,
	}
	svc, _ := newTestService(gw)
	ctx := context.Background()

	summary, err := svc.SubmitDetails(ctx, "client-1", voiceDetails())
	if err != nil {
		t.Fatalf("SubmitDetails: %v", err)
	}

	checkout, err := svc.ProceedToPayment(ctx, summary.Journey)
	if !errors.Is(err, ErrMissingCheckoutURL) {
		t.Fatalf("err = %v, want ErrMissingCheckoutURL", err)
	}
	if checkout != nil {
		t.Errorf("expected no checkout session, got %+v", checkout)
	}
	if summary.Journey.Step != models.StepReview {
		t.Errorf("journey step = %v, want review (retryable)", summary.Journey.Step)
	}
}

// TestProceedToPayment_SingleFlight verifies that a second submit while a
// request is outstanding is rejected instead of double-booking.
func TestProceedToPayment_SingleFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	gw := &fakeGateway{
		bookingResult:  &BookingResult{ConsultationID: "cons-1", Fee: 60},
		checkout:       &models.CheckoutSession{ID: "cs_1", URL: "https://checkout.example/cs_1"},
		bookingStarted: started,
		bookingRelease: release,
	}
	svc, _ := newTestService(gw)
	ctx := context.Background()

	summary, err := svc.SubmitDetails(ctx, "client-1", voiceDetails())
	if err != nil {
		t.Fatalf("SubmitDetails: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := svc.ProceedToPayment(ctx, summary.Journey)
		done <- err
	}()

	<-started // first request is now inside the gateway

	if _, err := svc.ProceedToPayment(ctx, summary.Journey); !errors.Is(err, ErrRequestInFlight) {
		t.Errorf("concurrent submit: err = %v, want ErrRequestInFlight", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	if gw.bookingCalls != 1 {
		t.Errorf("booking calls = %d, want 1", gw.bookingCalls)
	}
}

// TestResume verifies that continuing a saved journey jumps straight to
// review and empties the storage slot.
func TestResume(t *testing.T) {
	svc, store := newTestService(&fakeGateway{})
	ctx := context.Background()

	j := testJourney("client-1")
	j.Step = models.StepPayment
	if err := store.Save(ctx, j); err != nil {
		t.Fatalf("save: %v", err)
	}

	summary, err := svc.Resume(ctx, "client-1")
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if summary.Journey.Step != models.StepReview {
		t.Errorf("resumed step = %v, want review", summary.Journey.Step)
	}
	if summary.Journey.SelectedLawyer == nil || summary.Journey.SelectedLawyer.Name != "Dr. Smith" {
		t.Errorf("resumed journey lost its lawyer snapshot: %+v", summary.Journey.SelectedLawyer)
	}
	if store.Len() != 0 {
		t.Errorf("storage slot not cleared on resume")
	}
}

// TestResume_NoJourney verifies the banner is not offered when nothing is
// saved.
func TestResume_NoJourney(t *testing.T) {
	svc, _ := newTestService(&fakeGateway{})

	if _, err := svc.Resume(context.Background(), "client-1"); !errors.Is(err, ErrNoSavedJourney) {
		t.Errorf("err = %v, want ErrNoSavedJourney", err)
	}
}

// TestResume_ExpiredJourney verifies an expired slot yields no banner and an
// empty slot.
func TestResume_ExpiredJourney(t *testing.T) {
	svc, store := newTestService(&fakeGateway{})
	ctx := context.Background()

	past := time.Now().Add(-JourneyTTL - time.Millisecond)
	store.SetClock(func() time.Time { return past })
	if err := store.Save(ctx, testJourney("client-1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	store.SetClock(time.Now)

	if has, _ := svc.HasSavedJourney(ctx, "client-1"); has {
		t.Error("HasSavedJourney = true for an expired journey")
	}
	if _, err := svc.Resume(ctx, "client-1"); !errors.Is(err, ErrNoSavedJourney) {
		t.Errorf("err = %v, want ErrNoSavedJourney", err)
	}
	if store.Len() != 0 {
		t.Errorf("expired slot not emptied")
	}
}

// TestDismiss verifies dismissal clears without restoring.
func TestDismiss(t *testing.T) {
	svc, store := newTestService(&fakeGateway{})
	ctx := context.Background()

	if err := store.Save(ctx, testJourney("client-1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.Dismiss(ctx, "client-1"); err != nil {
		t.Fatalf("Dismiss: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("slot not cleared on dismiss")
	}
}

// TestCancel verifies cancel always routes through explicit confirmation.
func TestCancel(t *testing.T) {
	svc, store := newTestService(&fakeGateway{})
	ctx := context.Background()

	if err := store.Save(ctx, testJourney("client-1")); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := svc.Cancel(ctx, "client-1", false); !errors.Is(err, ErrCancelNotConfirmed) {
		t.Errorf("unconfirmed cancel: err = %v, want ErrCancelNotConfirmed", err)
	}
	if store.Len() != 1 {
		t.Errorf("unconfirmed cancel must not discard state")
	}

	if err := svc.Cancel(ctx, "client-1", true); err != nil {
		t.Fatalf("confirmed cancel: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("confirmed cancel left the slot populated")
	}
}

// TestBackToDetails verifies the backward transition.
func TestBackToDetails(t *testing.T) {
	svc, _ := newTestService(&fakeGateway{})

	j := testJourney("client-1")
	if err := svc.BackToDetails(j); err != nil {
		t.Fatalf("BackToDetails: %v", err)
	}
	if j.Step != models.StepDetails {
		t.Errorf("step = %v, want details", j.Step)
	}

	// Going back twice is not a legal transition.
	if err := svc.BackToDetails(j); err == nil {
		t.Error("expected error going back from details")
	}
}

// TestPaymentReturn_Success verifies the success path clears the slot and
// reports the refreshed consultation state.
func TestPaymentReturn_Success(t *testing.T) {
	svc, store := newTestService(&fakeGateway{})
	ctx := context.Background()

	j := testJourney("client-1")
	j.ConsultationID = "cons-1"
	j.CheckoutSession = "cs_123"
	if err := store.Save(ctx, j); err != nil {
		t.Fatalf("save: %v", err)
	}

	notif, err := svc.PaymentReturn(ctx, "client-1", "success", "cs_123")
	if err != nil {
		t.Fatalf("PaymentReturn: %v", err)
	}
	if notif.Type != "payment_success" {
		t.Errorf("notification type = %q, want payment_success", notif.Type)
	}
	if notif.Data["status"] != models.ConsultationConfirmed {
		t.Errorf("notification status = %v, want confirmed", notif.Data["status"])
	}
	if store.Len() != 0 {
		t.Errorf("journey slot not cleared after successful payment")
	}
}

// TestPaymentReturn_Cancelled verifies the cancelled path yields a distinct
// notification and keeps the saved journey resumable.
func TestPaymentReturn_Cancelled(t *testing.T) {
	svc, store := newTestService(&fakeGateway{})
	ctx := context.Background()

	if err := store.Save(ctx, testJourney("client-1")); err != nil {
		t.Fatalf("save: %v", err)
	}

	notif, err := svc.PaymentReturn(ctx, "client-1", "cancelled", "cs_123")
	if err != nil {
		t.Fatalf("PaymentReturn: %v", err)
	}
	if notif.Type != "payment_cancelled" {
		t.Errorf("notification type = %q, want payment_cancelled", notif.Type)
	}
	if store.Len() != 1 {
		t.Errorf("cancelled payment must keep the journey resumable")
	}
}

type pushCall struct {
	userID string
	title  string
	data   map[string]string
}

type fakePush struct {
	calls []pushCall
}

func (f *fakePush) SendPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	f.calls = append(f.calls, pushCall{userID: userID, title: title, data: data})
	return nil
}

type fakeReminders struct {
	payloads []models.ReminderPayload
}

func (f *fakeReminders) ScheduleConsultationReminder(p models.ReminderPayload) error {
	f.payloads = append(f.payloads, p)
	return nil
}

// TestPaymentReturn_SuccessNotifiesAndSchedulesReminder verifies the success
// path pushes the confirmation and enqueues a reminder for the consultation.
func TestPaymentReturn_SuccessNotifiesAndSchedulesReminder(t *testing.T) {
	svc, store := newTestService(&fakeGateway{})
	push := &fakePush{}
	reminders := &fakeReminders{}
	svc.Push = push
	svc.Reminders = reminders
	ctx := context.Background()

	j := testJourney("client-1")
	j.ConsultationID = "cons-1"
	j.CheckoutSession = "cs_123"
	if err := store.Save(ctx, j); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := svc.PaymentReturn(ctx, "client-1", "success", "cs_123"); err != nil {
		t.Fatalf("PaymentReturn: %v", err)
	}

	if len(push.calls) != 1 {
		t.Fatalf("sent %d pushes, want 1", len(push.calls))
	}
	if push.calls[0].userID != "client-1" {
		t.Errorf("push user = %q, want client-1", push.calls[0].userID)
	}
	if push.calls[0].data["consultationId"] != "cons-1" {
		t.Errorf("push data consultationId = %q, want cons-1", push.calls[0].data["consultationId"])
	}

	if len(reminders.payloads) != 1 {
		t.Fatalf("scheduled %d reminders, want 1", len(reminders.payloads))
	}
	p := reminders.payloads[0]
	if p.ConsultationID != "cons-1" || p.UserID != "client-1" {
		t.Errorf("reminder payload = %+v", p)
	}
	if p.LawyerName != "Dr. Smith" {
		t.Errorf("reminder lawyer = %q, want Dr. Smith", p.LawyerName)
	}
	if p.Method != models.MethodVoice {
		t.Errorf("reminder method = %q, want %q", p.Method, models.MethodVoice)
	}
	want, err := j.Datetime()
	if err != nil {
		t.Fatalf("journey datetime: %v", err)
	}
	if !p.Datetime.Equal(want) {
		t.Errorf("reminder datetime = %v, want %v", p.Datetime, want)
	}
}

// TestPaymentReturn_SessionMismatchSkipsReminder verifies a success return for
// an unrecognized checkout session never schedules a reminder.
func TestPaymentReturn_SessionMismatchSkipsReminder(t *testing.T) {
	svc, store := newTestService(&fakeGateway{})
	push := &fakePush{}
	reminders := &fakeReminders{}
	svc.Push = push
	svc.Reminders = reminders
	ctx := context.Background()

	j := testJourney("client-1")
	j.ConsultationID = "cons-1"
	j.CheckoutSession = "cs_123"
	if err := store.Save(ctx, j); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := svc.PaymentReturn(ctx, "client-1", "success", "cs_other"); err != nil {
		t.Fatalf("PaymentReturn: %v", err)
	}
	if len(push.calls) != 0 || len(reminders.payloads) != 0 {
		t.Errorf("mismatched session must not notify: pushes=%d reminders=%d",
			len(push.calls), len(reminders.payloads))
	}
}

// TestPaymentReturn_CancelledDoesNotNotify verifies the cancelled path sends
// no confirmation push and schedules nothing.
func TestPaymentReturn_CancelledDoesNotNotify(t *testing.T) {
	svc, store := newTestService(&fakeGateway{})
	push := &fakePush{}
	reminders := &fakeReminders{}
	svc.Push = push
	svc.Reminders = reminders
	ctx := context.Background()

	if err := store.Save(ctx, testJourney("client-1")); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := svc.PaymentReturn(ctx, "client-1", "cancelled", "cs_123"); err != nil {
		t.Fatalf("PaymentReturn: %v", err)
	}
	if len(push.calls) != 0 || len(reminders.payloads) != 0 {
		t.Errorf("cancelled payment must not notify: pushes=%d reminders=%d",
			len(push.calls), len(reminders.payloads))
	}
}

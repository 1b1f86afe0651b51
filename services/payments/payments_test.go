package payments

import (
	"errors"
	"fmt"
	"testing"

	"advoqat/models"

	"go.uber.org/zap"
)

type memoryPaymentRepo struct {
	records map[string]*models.PaymentRecord
}

func newMemoryPaymentRepo() *memoryPaymentRepo {
	return &memoryPaymentRepo{records: make(map[string]*models.PaymentRecord)}
}

func (r *memoryPaymentRepo) Create(rec *models.PaymentRecord) error {
	cp := *rec
	r.records[rec.SessionID] = &cp
	return nil
}

func (r *memoryPaymentRepo) GetBySessionID(sessionID string) (*models.PaymentRecord, error) {
	rec, ok := r.records[sessionID]
	if !ok {
		return nil, fmt.Errorf("payment record for session %s not found", sessionID)
	}
	cp := *rec
	return &cp, nil
}

func (r *memoryPaymentRepo) ListByUser(userID string) ([]models.PaymentRecord, error) {
	var out []models.PaymentRecord
	for _, rec := range r.records {
		if rec.UserID == userID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *memoryPaymentRepo) UpdateStatus(sessionID, status string) error {
	rec, ok := r.records[sessionID]
	if !ok {
		return fmt.Errorf("payment record for session %s not found", sessionID)
	}
	rec.Status = status
	return nil
}

type fakeDocumentGate struct {
	unlocked []string
}

func (f *fakeDocumentGate) Get(userID, documentID string) (*models.GeneratedDocument, error) {
	return &models.GeneratedDocument{ID: documentID, UserID: userID, Status: models.DocumentLocked, Price: 10}, nil
}

func (f *fakeDocumentGate) AttachCheckout(userID, documentID, sessionID string) (*models.GeneratedDocument, error) {
	return &models.GeneratedDocument{ID: documentID, UserID: userID, CheckoutID: sessionID}, nil
}

func (f *fakeDocumentGate) Unlock(checkoutID string) (*models.GeneratedDocument, error) {
	f.unlocked = append(f.unlocked, checkoutID)
	return &models.GeneratedDocument{Status: models.DocumentPaid, CheckoutID: checkoutID}, nil
}

func newTestService() (*DefaultPaymentService, *memoryPaymentRepo, *fakeDocumentGate) {
	repo := newMemoryPaymentRepo()
	gate := &fakeDocumentGate{}
	svc := &DefaultPaymentService{
		Repo:      repo,
		Documents: gate,
		Logger:    zap.NewNop(),
	}
	return svc, repo, gate
}

// TestRecordConsultationCheckout archives a pending record for the booking
// flow's checkout.
func TestRecordConsultationCheckout(t *testing.T) {
	svc, repo, _ := newTestService()

	err := svc.RecordConsultationCheckout(models.PaymentSessionRequest{
		ConsultationID: "cons-1",
		LawyerName:     "Dr. Smith",
		Method:         "voice",
		Fee:            60,
		UserID:         "user-1",
	}, &models.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.com/cs_1"})
	if err != nil {
		t.Fatalf("RecordConsultationCheckout: %v", err)
	}

	rec, err := repo.GetBySessionID("cs_1")
	if err != nil {
		t.Fatalf("GetBySessionID: %v", err)
	}
	if rec.Status != "pending" || rec.Kind != "consultation" || rec.ReferenceID != "cons-1" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.Amount != 60 {
		t.Errorf("amount = %v, want 60", rec.Amount)
	}
}

// TestConfirmReturn_SuccessUnlocksDocument marks the record paid and unlocks
// the gated document.
func TestConfirmReturn_SuccessUnlocksDocument(t *testing.T) {
	svc, repo, gate := newTestService()
	repo.Create(&models.PaymentRecord{
		ID: "p1", UserID: "user-1", SessionID: "cs_doc", Kind: "document",
		ReferenceID: "doc-1", Amount: 10, Currency: "usd", Status: "pending",
	})

	rec, err := svc.ConfirmReturn("cs_doc", OutcomeSuccess)
	if err != nil {
		t.Fatalf("ConfirmReturn: %v", err)
	}
	if rec.Status != "paid" {
		t.Errorf("status = %q, want paid", rec.Status)
	}
	if len(gate.unlocked) != 1 || gate.unlocked[0] != "cs_doc" {
		t.Errorf("unlocked = %v, want [cs_doc]", gate.unlocked)
	}
}

// TestConfirmReturn_SuccessIsIdempotent replays of a paid session do not fail.
func TestConfirmReturn_SuccessIsIdempotent(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.Create(&models.PaymentRecord{
		ID: "p1", UserID: "user-1", SessionID: "cs_1", Kind: "consultation",
		ReferenceID: "cons-1", Amount: 60, Currency: "usd", Status: "pending",
	})

	if _, err := svc.ConfirmReturn("cs_1", OutcomeSuccess); err != nil {
		t.Fatalf("first ConfirmReturn: %v", err)
	}
	rec, err := svc.ConfirmReturn("cs_1", OutcomeSuccess)
	if err != nil {
		t.Fatalf("second ConfirmReturn: %v", err)
	}
	if rec.Status != "paid" {
		t.Errorf("status = %q, want paid", rec.Status)
	}
}

// TestConfirmReturn_Cancelled only marks a pending record cancelled; a paid
// record is left alone.
func TestConfirmReturn_Cancelled(t *testing.T) {
	svc, repo, gate := newTestService()
	repo.Create(&models.PaymentRecord{
		ID: "p1", UserID: "user-1", SessionID: "cs_1", Kind: "consultation",
		ReferenceID: "cons-1", Amount: 60, Currency: "usd", Status: "pending",
	})

	rec, err := svc.ConfirmReturn("cs_1", OutcomeCancelled)
	if err != nil {
		t.Fatalf("ConfirmReturn: %v", err)
	}
	if rec.Status != "cancelled" {
		t.Errorf("status = %q, want cancelled", rec.Status)
	}
	if len(gate.unlocked) != 0 {
		t.Errorf("cancel must not unlock documents")
	}

	repo.records["cs_1"].Status = "paid"
	rec, err = svc.ConfirmReturn("cs_1", OutcomeCancelled)
	if err != nil {
		t.Fatalf("ConfirmReturn on paid: %v", err)
	}
	if rec.Status != "paid" {
		t.Errorf("paid record was downgraded to %q", rec.Status)
	}
}

// TestConfirmReturn_UnknownSession surfaces a distinct error.
func TestConfirmReturn_UnknownSession(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.ConfirmReturn("cs_missing", OutcomeSuccess); !errors.Is(err, ErrUnknownSession) {
		t.Fatalf("err = %v, want ErrUnknownSession", err)
	}
}

// TestConfirmReturn_UnknownOutcome rejects outcomes other than success and
// cancelled.
func TestConfirmReturn_UnknownOutcome(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.Create(&models.PaymentRecord{
		ID: "p1", UserID: "user-1", SessionID: "cs_1", Kind: "consultation",
		ReferenceID: "cons-1", Amount: 60, Currency: "usd", Status: "pending",
	})
	if _, err := svc.ConfirmReturn("cs_1", "maybe"); err == nil {
		t.Fatal("expected error for unknown outcome")
	}
}

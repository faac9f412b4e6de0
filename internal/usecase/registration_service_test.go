package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/northcourt/club-api/internal/domain/program"
	"github.com/northcourt/club-api/internal/domain/registration"
	"github.com/northcourt/club-api/internal/domain/team"
	"github.com/northcourt/club-api/internal/infrastructure/repository/memory"
	"github.com/northcourt/club-api/internal/notify"
)

type seqIDGenerator struct {
	counter atomic.Int64
	prefix  string
}

func (g *seqIDGenerator) NewID() (string, error) {
	return fmt.Sprintf("%s-%d", g.prefix, g.counter.Add(1)), nil
}

type recordingDispatcher struct {
	mu   sync.Mutex
	msgs []notify.Message
}

func (d *recordingDispatcher) Dispatch(msgs ...notify.Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.msgs = append(d.msgs, msgs...)
}

func (d *recordingDispatcher) sent() []notify.Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]notify.Message(nil), d.msgs...)
}

type fakeUploader struct {
	url   string
	err   error
	calls int
}

func (u *fakeUploader) Upload(_ context.Context, key, _ string, _ []byte) (string, error) {
	u.calls++
	if u.err != nil {
		return "", u.err
	}
	return u.url + "/" + key, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type registrationFixture struct {
	service     *RegistrationService
	regRepo     *memory.RegistrationRepository
	paymentRepo *memory.PaymentRepository
	dispatcher  *recordingDispatcher
	uploader    *fakeUploader
}

func newRegistrationFixture(t *testing.T) registrationFixture {
	t.Helper()

	teamRepo := memory.NewTeamRepository()
	programRepo := memory.NewProgramRepository()
	if err := teamRepo.Create(t.Context(), team.Team{
		ID:        "team-u13-boys",
		Gender:    "boys",
		AgeGroup:  "u13",
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed team: %v", err)
	}
	if err := programRepo.Create(t.Context(), program.Program{
		ID:         "program-spring",
		Name:       "Spring Development",
		Season:     "Spring 2026",
		PriceCents: 25000,
		CreatedAt:  time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed program: %v", err)
	}

	regRepo := memory.NewRegistrationRepository()
	paymentRepo := memory.NewPaymentRepository()
	dispatcher := &recordingDispatcher{}
	uploader := &fakeUploader{url: "https://blobs.example.com"}

	service := NewRegistrationService(
		regRepo,
		teamRepo,
		programRepo,
		paymentRepo,
		uploader,
		dispatcher,
		&seqIDGenerator{prefix: "id"},
		"club@example.com",
		"CAD",
		discardLogger(),
	)

	return registrationFixture{
		service:     service,
		regRepo:     regRepo,
		paymentRepo: paymentRepo,
		dispatcher:  dispatcher,
		uploader:    uploader,
	}
}

func validSubmitInput() SubmitRegistrationInput {
	return SubmitRegistrationInput{
		PlayerName:     "Jordan Doe",
		ParentName:     "Jane Doe",
		Email:          "jane@example.com",
		Phone:          "604-555-0101",
		TeamID:         "team-u13-boys",
		ProgramID:      "program-spring",
		WaiverAccepted: true,
		ETransferNote:  "will send friday",
	}
}

func TestRegistrationService_Submit(t *testing.T) {
	fx := newRegistrationFixture(t)

	item, err := fx.service.Submit(t.Context(), validSubmitInput())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if item.ID == "" {
		t.Fatal("expected a generated registration id")
	}
	if item.PaymentStatus != registration.PaymentStatusUnpaid {
		t.Fatalf("expected unpaid status, got %s", item.PaymentStatus)
	}
	if item.WaiverURL != "" {
		t.Fatalf("expected empty waiver url, got %s", item.WaiverURL)
	}

	stored, exists, err := fx.regRepo.GetByID(t.Context(), item.ID)
	if err != nil || !exists {
		t.Fatalf("expected stored registration, exists=%t err=%v", exists, err)
	}
	if stored.PlayerName != "Jordan Doe" {
		t.Fatalf("unexpected stored player name: %s", stored.PlayerName)
	}

	msgs := fx.dispatcher.sent()
	if len(msgs) != 2 {
		t.Fatalf("expected confirmation and admin alert, got %d messages", len(msgs))
	}
	if msgs[0].To != "jane@example.com" {
		t.Fatalf("confirmation went to %s", msgs[0].To)
	}
	if msgs[1].To != "club@example.com" {
		t.Fatalf("admin alert went to %s", msgs[1].To)
	}
}

func TestRegistrationService_SubmitMissingField(t *testing.T) {
	fx := newRegistrationFixture(t)

	input := validSubmitInput()
	input.Phone = "   "

	_, err := fx.service.Submit(t.Context(), input)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	items, err := fx.regRepo.List(t.Context())
	if err != nil {
		t.Fatalf("list registrations: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("rejected submit must not persist, found %d rows", len(items))
	}
	if len(fx.dispatcher.sent()) != 0 {
		t.Fatal("rejected submit must not dispatch notifications")
	}
}

func TestRegistrationService_SubmitUnknownTeam(t *testing.T) {
	fx := newRegistrationFixture(t)

	input := validSubmitInput()
	input.TeamID = "team-missing"

	_, err := fx.service.Submit(t.Context(), input)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRegistrationService_AttachWaiver(t *testing.T) {
	fx := newRegistrationFixture(t)

	item, err := fx.service.Submit(t.Context(), validSubmitInput())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	updated, err := fx.service.AttachWaiver(t.Context(), item.ID, WaiverFile{
		Name:        "waiver signed.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4"),
	})
	if err != nil {
		t.Fatalf("attach waiver failed: %v", err)
	}
	if updated.WaiverURL == "" {
		t.Fatal("expected waiver url to be linked")
	}

	stored, _, err := fx.regRepo.GetByID(t.Context(), item.ID)
	if err != nil {
		t.Fatalf("get registration: %v", err)
	}
	if stored.WaiverURL != updated.WaiverURL {
		t.Fatalf("stored waiver url %q != returned %q", stored.WaiverURL, updated.WaiverURL)
	}
}

func TestRegistrationService_AttachWaiverUploadFailure(t *testing.T) {
	fx := newRegistrationFixture(t)
	fx.uploader.err = errors.New("bucket unreachable")

	item, err := fx.service.Submit(t.Context(), validSubmitInput())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	_, err = fx.service.AttachWaiver(t.Context(), item.ID, WaiverFile{
		Name: "waiver.pdf",
		Data: []byte("%PDF-1.4"),
	})
	if !errors.Is(err, ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}

	stored, _, err := fx.regRepo.GetByID(t.Context(), item.ID)
	if err != nil {
		t.Fatalf("get registration: %v", err)
	}
	if stored.WaiverURL != "" {
		t.Fatalf("failed upload must not link a url, got %s", stored.WaiverURL)
	}
}

func TestRegistrationService_ConfirmPayment(t *testing.T) {
	fx := newRegistrationFixture(t)

	item, err := fx.service.Submit(t.Context(), validSubmitInput())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	confirmed, err := fx.service.ConfirmPayment(t.Context(), item.ID, "txn-001", 0, nil)
	if err != nil {
		t.Fatalf("confirm payment failed: %v", err)
	}
	if confirmed.PaymentStatus != registration.PaymentStatusPaid {
		t.Fatalf("expected paid status, got %s", confirmed.PaymentStatus)
	}

	payments, err := fx.paymentRepo.List(t.Context())
	if err != nil {
		t.Fatalf("list payments: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("expected one payment row, got %d", len(payments))
	}
	// Zero amount falls back to the program price.
	if payments[0].AmountCents != 25000 {
		t.Fatalf("expected program price 25000, got %d", payments[0].AmountCents)
	}
	if payments[0].RegistrationID != item.ID {
		t.Fatalf("payment links wrong registration: %s", payments[0].RegistrationID)
	}

	// Confirming again is a no-op success, never a second payment.
	again, err := fx.service.ConfirmPayment(t.Context(), item.ID, "txn-002", 0, nil)
	if err != nil {
		t.Fatalf("repeat confirm failed: %v", err)
	}
	if again.PaymentStatus != registration.PaymentStatusPaid {
		t.Fatalf("expected paid status on repeat, got %s", again.PaymentStatus)
	}

	payments, err = fx.paymentRepo.List(t.Context())
	if err != nil {
		t.Fatalf("list payments: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("repeat confirm created extra payments: %d", len(payments))
	}
	if payments[0].TransactionRef != "txn-001" {
		t.Fatalf("repeat confirm replaced the original reference: %s", payments[0].TransactionRef)
	}
}

func TestRegistrationService_ConfirmPaymentConcurrent(t *testing.T) {
	fx := newRegistrationFixture(t)

	item, err := fx.service.Submit(t.Context(), validSubmitInput())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = fx.service.ConfirmPayment(context.Background(), item.ID, fmt.Sprintf("txn-%d", i), 0, nil)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("attempt %d failed: %v", i, err)
		}
	}

	payments, err := fx.paymentRepo.List(t.Context())
	if err != nil {
		t.Fatalf("list payments: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("concurrent confirms created %d payment rows, want 1", len(payments))
	}

	stored, _, err := fx.regRepo.GetByID(t.Context(), item.ID)
	if err != nil {
		t.Fatalf("get registration: %v", err)
	}
	if stored.PaymentStatus != registration.PaymentStatusPaid {
		t.Fatalf("expected paid status, got %s", stored.PaymentStatus)
	}
}

func TestRegistrationService_UpdateUnknownTeam(t *testing.T) {
	fx := newRegistrationFixture(t)

	item, err := fx.service.Submit(t.Context(), validSubmitInput())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	missing := "team-missing"
	_, err = fx.service.Update(t.Context(), item.ID, registration.Patch{TeamID: &missing})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRegistrationService_Delete(t *testing.T) {
	fx := newRegistrationFixture(t)

	item, err := fx.service.Submit(t.Context(), validSubmitInput())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if err := fx.service.Delete(t.Context(), item.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := fx.service.Delete(t.Context(), item.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

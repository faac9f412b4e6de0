package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/northcourt/club-api/internal/domain/payment"
	"github.com/northcourt/club-api/internal/domain/program"
	"github.com/northcourt/club-api/internal/domain/registration"
	"github.com/northcourt/club-api/internal/domain/team"
	"github.com/northcourt/club-api/internal/notify"
	idgen "github.com/northcourt/club-api/internal/platform/id"
)

// WaiverUploader stores a waiver blob and returns its public URL.
type WaiverUploader interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// NotificationDispatcher enqueues best-effort notifications.
type NotificationDispatcher interface {
	Dispatch(msgs ...notify.Message)
}

type SubmitRegistrationInput struct {
	PlayerName     string
	ParentName     string
	Email          string
	Phone          string
	TeamID         string
	ProgramID      string
	WaiverAccepted bool
	ETransferNote  string
}

type WaiverFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type RegistrationService struct {
	regRepo     registration.Repository
	teamRepo    team.Repository
	programRepo program.Repository
	paymentRepo payment.Repository
	uploader    WaiverUploader
	dispatcher  NotificationDispatcher
	idGen       idgen.Generator
	logger      *slog.Logger
	adminEmail  string
	currency    string
	now         func() time.Time
}

func NewRegistrationService(
	regRepo registration.Repository,
	teamRepo team.Repository,
	programRepo program.Repository,
	paymentRepo payment.Repository,
	uploader WaiverUploader,
	dispatcher NotificationDispatcher,
	idGen idgen.Generator,
	adminEmail string,
	currency string,
	logger *slog.Logger,
) *RegistrationService {
	if logger == nil {
		logger = slog.Default()
	}
	if currency == "" {
		currency = "CAD"
	}

	return &RegistrationService{
		regRepo:     regRepo,
		teamRepo:    teamRepo,
		programRepo: programRepo,
		paymentRepo: paymentRepo,
		uploader:    uploader,
		dispatcher:  dispatcher,
		idGen:       idGen,
		logger:      logger,
		adminEmail:  strings.TrimSpace(adminEmail),
		currency:    currency,
		now:         time.Now,
	}
}

// Submit validates the intake, persists a new unpaid registration, then
// fires the confirmation and admin alert. The registration is returned
// whenever persistence succeeds, regardless of notification outcome.
func (s *RegistrationService) Submit(ctx context.Context, input SubmitRegistrationInput) (registration.Registration, error) {
	ctx, span := startSpan(ctx, "usecase.RegistrationService.Submit")
	defer span.End()

	input.PlayerName = strings.TrimSpace(input.PlayerName)
	input.ParentName = strings.TrimSpace(input.ParentName)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.TeamID = strings.TrimSpace(input.TeamID)
	input.ProgramID = strings.TrimSpace(input.ProgramID)

	if input.PlayerName == "" {
		return registration.Registration{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	if input.ParentName == "" {
		return registration.Registration{}, fmt.Errorf("%w: parent name is required", ErrInvalidInput)
	}
	if input.Email == "" {
		return registration.Registration{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if input.Phone == "" {
		return registration.Registration{}, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if input.TeamID == "" {
		return registration.Registration{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if input.ProgramID == "" {
		return registration.Registration{}, fmt.Errorf("%w: program id is required", ErrInvalidInput)
	}

	selectedTeam, exists, err := s.teamRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		return registration.Registration{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return registration.Registration{}, fmt.Errorf("%w: team=%s", ErrNotFound, input.TeamID)
	}

	selectedProgram, exists, err := s.programRepo.GetByID(ctx, input.ProgramID)
	if err != nil {
		return registration.Registration{}, fmt.Errorf("get program by id: %w", err)
	}
	if !exists {
		return registration.Registration{}, fmt.Errorf("%w: program=%s", ErrNotFound, input.ProgramID)
	}

	regID, err := s.idGen.NewID()
	if err != nil {
		return registration.Registration{}, fmt.Errorf("generate registration id: %w", err)
	}

	now := s.now().UTC()
	item := registration.Registration{
		ID:             regID,
		PlayerName:     input.PlayerName,
		ParentName:     input.ParentName,
		Email:          input.Email,
		Phone:          input.Phone,
		WaiverAccepted: input.WaiverAccepted,
		ETransferNote:  strings.TrimSpace(input.ETransferNote),
		PaymentStatus:  registration.PaymentStatusUnpaid,
		TeamID:         input.TeamID,
		ProgramID:      input.ProgramID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := item.Validate(); err != nil {
		return registration.Registration{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.regRepo.Create(ctx, item); err != nil {
		return registration.Registration{}, fmt.Errorf("create registration: %w", err)
	}

	s.logger.InfoContext(ctx, "registration created",
		"registration_id", item.ID,
		"team_id", item.TeamID,
		"program_id", item.ProgramID,
	)

	// Row is durable; notifications are fire-and-forget from here.
	msgs := []notify.Message{
		notify.RegistrationConfirmation(item, selectedProgram.Name, selectedProgram.PriceCents),
	}
	if s.adminEmail != "" {
		msgs = append(msgs, notify.AdminRegistrationAlert(s.adminEmail, item, selectedTeam.Label()))
	}
	if s.dispatcher != nil {
		s.dispatcher.Dispatch(msgs...)
	}

	return item, nil
}

// AttachWaiver uploads the waiver document and links its URL to the
// registration. If the upload fails nothing is linked; a repeated
// upload replaces the previous URL.
func (s *RegistrationService) AttachWaiver(ctx context.Context, registrationID string, file WaiverFile) (registration.Registration, error) {
	ctx, span := startSpan(ctx, "usecase.RegistrationService.AttachWaiver")
	defer span.End()

	registrationID = strings.TrimSpace(registrationID)
	if registrationID == "" {
		return registration.Registration{}, fmt.Errorf("%w: registration id is required", ErrInvalidInput)
	}
	if len(file.Data) == 0 {
		return registration.Registration{}, fmt.Errorf("%w: waiver file is empty", ErrInvalidInput)
	}
	if s.uploader == nil {
		return registration.Registration{}, fmt.Errorf("%w: waiver storage is not configured", ErrUploadFailed)
	}

	item, exists, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		return registration.Registration{}, fmt.Errorf("get registration: %w", err)
	}
	if !exists {
		return registration.Registration{}, fmt.Errorf("%w: registration=%s", ErrNotFound, registrationID)
	}

	suffix, err := idgen.NewSuffix()
	if err != nil {
		return registration.Registration{}, fmt.Errorf("generate upload suffix: %w", err)
	}
	key := fmt.Sprintf("waivers/%s/%s-%s", registrationID, suffix, sanitizeFileName(file.Name))

	url, err := s.uploader.Upload(ctx, key, file.ContentType, file.Data)
	if err != nil {
		return registration.Registration{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	updated, err := s.regRepo.SetWaiverURL(ctx, registrationID, url)
	if err != nil {
		return registration.Registration{}, fmt.Errorf("link waiver url: %w", err)
	}
	if !updated {
		return registration.Registration{}, fmt.Errorf("%w: registration=%s", ErrNotFound, registrationID)
	}

	s.logger.InfoContext(ctx, "waiver attached", "registration_id", registrationID, "key", key)

	item.WaiverURL = url
	return item, nil
}

// ConfirmPayment reconciles a completed charge against the
// registration. Confirming an already-paid registration is a no-op
// success so retried client requests never double-process; the
// conditional update plus the unique payment constraint guarantee at
// most one Payment row per registration.
func (s *RegistrationService) ConfirmPayment(ctx context.Context, registrationID, transactionRef string, amountCents int64, metadata []byte) (registration.Registration, error) {
	ctx, span := startSpan(ctx, "usecase.RegistrationService.ConfirmPayment")
	defer span.End()

	registrationID = strings.TrimSpace(registrationID)
	if registrationID == "" {
		return registration.Registration{}, fmt.Errorf("%w: registration id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(transactionRef) == "" {
		return registration.Registration{}, fmt.Errorf("%w: payment reference is required", ErrInvalidInput)
	}

	item, exists, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		return registration.Registration{}, fmt.Errorf("get registration: %w", err)
	}
	if !exists {
		return registration.Registration{}, fmt.Errorf("%w: registration=%s", ErrNotFound, registrationID)
	}
	if item.PaymentStatus == registration.PaymentStatusPaid {
		return item, nil
	}

	won, err := s.regRepo.MarkPaid(ctx, registrationID)
	if err != nil {
		return registration.Registration{}, fmt.Errorf("mark registration paid: %w", err)
	}
	if !won {
		// A concurrent confirmation got there first; observe its result.
		return s.reload(ctx, registrationID)
	}

	if amountCents <= 0 {
		selectedProgram, exists, err := s.programRepo.GetByID(ctx, item.ProgramID)
		if err != nil {
			return registration.Registration{}, fmt.Errorf("get program for payment amount: %w", err)
		}
		if !exists {
			return registration.Registration{}, fmt.Errorf("%w: program=%s", ErrNotFound, item.ProgramID)
		}
		amountCents = selectedProgram.PriceCents
	}

	paymentID, err := s.idGen.NewID()
	if err != nil {
		return registration.Registration{}, fmt.Errorf("generate payment id: %w", err)
	}

	record := payment.Payment{
		ID:             paymentID,
		AmountCents:    amountCents,
		Currency:       s.currency,
		Status:         "completed",
		Type:           payment.TypeRegistration,
		CustomerEmail:  item.Email,
		CustomerName:   item.ParentName,
		TransactionRef: strings.TrimSpace(transactionRef),
		Metadata:       metadata,
		RegistrationID: registrationID,
		CreatedAt:      s.now().UTC(),
	}
	if err := record.Validate(); err != nil {
		return registration.Registration{}, fmt.Errorf("validate payment: %w", err)
	}

	if err := s.paymentRepo.Create(ctx, record); err != nil {
		if errors.Is(err, payment.ErrRegistrationAlreadyPaid) {
			return s.reload(ctx, registrationID)
		}
		return registration.Registration{}, fmt.Errorf("create payment: %w", err)
	}

	s.logger.InfoContext(ctx, "payment confirmed",
		"registration_id", registrationID,
		"payment_id", paymentID,
		"amount_cents", amountCents,
	)

	return s.reload(ctx, registrationID)
}

func (s *RegistrationService) Get(ctx context.Context, id string) (registration.Registration, error) {
	item, exists, err := s.regRepo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return registration.Registration{}, fmt.Errorf("get registration: %w", err)
	}
	if !exists {
		return registration.Registration{}, fmt.Errorf("%w: registration=%s", ErrNotFound, id)
	}

	return item, nil
}

func (s *RegistrationService) List(ctx context.Context) ([]registration.Registration, error) {
	items, err := s.regRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	return items, nil
}

// Update applies admin edits to any field except the id.
func (s *RegistrationService) Update(ctx context.Context, id string, patch registration.Patch) (registration.Registration, error) {
	ctx, span := startSpan(ctx, "usecase.RegistrationService.Update")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return registration.Registration{}, fmt.Errorf("%w: registration id is required", ErrInvalidInput)
	}

	if patch.TeamID != nil {
		_, exists, err := s.teamRepo.GetByID(ctx, *patch.TeamID)
		if err != nil {
			return registration.Registration{}, fmt.Errorf("get team by id: %w", err)
		}
		if !exists {
			return registration.Registration{}, fmt.Errorf("%w: team=%s", ErrNotFound, *patch.TeamID)
		}
	}
	if patch.ProgramID != nil {
		_, exists, err := s.programRepo.GetByID(ctx, *patch.ProgramID)
		if err != nil {
			return registration.Registration{}, fmt.Errorf("get program by id: %w", err)
		}
		if !exists {
			return registration.Registration{}, fmt.Errorf("%w: program=%s", ErrNotFound, *patch.ProgramID)
		}
	}

	item, updated, err := s.regRepo.Update(ctx, id, patch)
	if err != nil {
		return registration.Registration{}, fmt.Errorf("update registration: %w", err)
	}
	if !updated {
		return registration.Registration{}, fmt.Errorf("%w: registration=%s", ErrNotFound, id)
	}

	return item, nil
}

func (s *RegistrationService) Delete(ctx context.Context, id string) error {
	deleted, err := s.regRepo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: registration=%s", ErrNotFound, id)
	}

	return nil
}

func (s *RegistrationService) reload(ctx context.Context, id string) (registration.Registration, error) {
	item, exists, err := s.regRepo.GetByID(ctx, id)
	if err != nil {
		return registration.Registration{}, fmt.Errorf("reload registration: %w", err)
	}
	if !exists {
		return registration.Registration{}, fmt.Errorf("%w: registration=%s", ErrNotFound, id)
	}

	return item, nil
}

func sanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "waiver"
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}

	return b.String()
}

package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/northcourt/club-api/internal/domain/payment"
	"github.com/northcourt/club-api/internal/domain/registration"
	"github.com/northcourt/club-api/internal/domain/team"
)

func TestRegistrationRepository_MarkPaidOnce(t *testing.T) {
	t.Parallel()

	repo := NewRegistrationRepository()
	item := registration.Registration{
		ID:            "reg-1",
		PlayerName:    "Jordan Doe",
		ParentName:    "Jane Doe",
		Email:         "jane@example.com",
		Phone:         "604-555-0101",
		PaymentStatus: registration.PaymentStatusUnpaid,
		TeamID:        "team-1",
		ProgramID:     "program-1",
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, repo.Create(t.Context(), item))

	won, err := repo.MarkPaid(t.Context(), "reg-1")
	require.NoError(t, err)
	require.True(t, won)

	// Second winner is impossible.
	won, err = repo.MarkPaid(t.Context(), "reg-1")
	require.NoError(t, err)
	require.False(t, won)

	stored, exists, err := repo.GetByID(t.Context(), "reg-1")
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, registration.PaymentStatusPaid, stored.PaymentStatus)
}

func TestRegistrationRepository_UpdatePatch(t *testing.T) {
	t.Parallel()

	repo := NewRegistrationRepository()
	require.NoError(t, repo.Create(t.Context(), registration.Registration{
		ID:            "reg-1",
		PlayerName:    "Jordan Doe",
		ParentName:    "Jane Doe",
		Email:         "jane@example.com",
		Phone:         "604-555-0101",
		PaymentStatus: registration.PaymentStatusUnpaid,
		TeamID:        "team-1",
		ProgramID:     "program-1",
	}))

	phone := "604-555-0202"
	updated, ok, err := repo.Update(t.Context(), "reg-1", registration.Patch{Phone: &phone})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "604-555-0202", updated.Phone)
	require.Equal(t, "Jordan Doe", updated.PlayerName)

	_, ok, err = repo.Update(t.Context(), "missing", registration.Patch{Phone: &phone})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPaymentRepository_UniqueRegistration(t *testing.T) {
	t.Parallel()

	repo := NewPaymentRepository()
	first := payment.Payment{
		ID:             "pay-1",
		AmountCents:    25000,
		Currency:       "CAD",
		Status:         "completed",
		Type:           payment.TypeRegistration,
		RegistrationID: "reg-1",
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, repo.Create(t.Context(), first))

	second := first
	second.ID = "pay-2"
	err := repo.Create(t.Context(), second)
	require.ErrorIs(t, err, payment.ErrRegistrationAlreadyPaid)

	items, err := repo.List(t.Context())
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestTeamRepository_PairUniqueness(t *testing.T) {
	t.Parallel()

	repo := NewTeamRepository()
	require.NoError(t, repo.Create(t.Context(), team.Team{ID: "t1", Gender: "boys", AgeGroup: "u13"}))

	err := repo.Create(t.Context(), team.Team{ID: "t2", Gender: "Boys", AgeGroup: "U13"})
	require.ErrorIs(t, err, team.ErrDuplicate)

	// Updating a team onto another team's pair is also a collision.
	require.NoError(t, repo.Create(t.Context(), team.Team{ID: "t3", Gender: "girls", AgeGroup: "u13"}))
	_, err = repo.Update(t.Context(), team.Team{ID: "t3", Gender: "boys", AgeGroup: "u13"})
	require.ErrorIs(t, err, team.ErrDuplicate)

	// A team may keep its own pair on update.
	ok, err := repo.Update(t.Context(), team.Team{ID: "t1", Gender: "boys", AgeGroup: "u13"})
	require.NoError(t, err)
	require.True(t, ok)
}

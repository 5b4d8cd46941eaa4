package admin

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/tripslot/internal/domain"
	"github.com/kirinyoku/tripslot/internal/repository"
	"github.com/kirinyoku/tripslot/internal/repository/memory"
	"github.com/kirinyoku/tripslot/internal/service/changes"
	"github.com/kirinyoku/tripslot/internal/uow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type changeRecorder struct{ ids []uuid.UUID }

func (r *changeRecorder) InvalidateExperience(_ context.Context, id uuid.UUID) error {
	r.ids = append(r.ids, id)
	return nil
}

func ptr[T any](v T) *T { return &v }

func newService(t *testing.T) (*Service, repository.Repositories, *changeRecorder) {
	t.Helper()

	store := memory.NewStore()
	rec := &changeRecorder{}
	svc := New(store.Repositories(), uow.NewUoW(store), changes.NewAnnouncer(rec, nil, nil), nil)

	return svc, store.Repositories(), rec
}

func experienceInput() ExperienceInput {
	return ExperienceInput{
		Title:       "Kayaking",
		Description: "Paddle the backwaters",
		Location:    "Udupi",
		ImageURL:    "https://img.example/kayak.jpg",
		Price:       999,
		About:       "Two hours on the water",
		Schedule: []DateInput{
			{Date: "2025-12-01", Slots: []SlotInput{
				{Time: "10:00", Available: 10},
				{Time: "14:00", Available: 4},
			}},
		},
	}
}

func promoInput(code string) PromoInput {
	return PromoInput{
		Code:          code,
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: 10,
		ExpiryDate:    time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateExperience(t *testing.T) {
	svc, repos, rec := newService(t)
	ctx := context.Background()

	e, err := svc.CreateExperience(ctx, experienceInput())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, domain.DefaultIncludesText, e.IncludesText)
	require.Len(t, e.AvailableDates, 1)
	assert.Equal(t, 0, e.AvailableDates[0].Slots[0].Booked)

	got, err := repos.Experiences.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kayaking", got.Title)
	assert.Equal(t, []uuid.UUID{e.ID}, rec.ids)
}

func TestCreateExperienceAcceptsZeroBooked(t *testing.T) {
	svc, repos, _ := newService(t)
	ctx := context.Background()

	in := experienceInput()
	in.Schedule[0].Slots[0].Booked = ptr(0)

	e, err := svc.CreateExperience(ctx, in)
	require.NoError(t, err)

	got, err := repos.Experiences.Get(ctx, e.ID)
	require.NoError(t, err)
	for _, s := range got.AvailableDates[0].Slots {
		assert.Zero(t, s.Booked, s.Time)
	}
}

func TestCreateExperienceValidation(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*ExperienceInput)
		field string
	}{
		{"missing title", func(in *ExperienceInput) { in.Title = " " }, "title"},
		{"missing image", func(in *ExperienceInput) { in.ImageURL = "" }, "imageUrl"},
		{"negative price", func(in *ExperienceInput) { in.Price = -1 }, "price"},
		{"bad date", func(in *ExperienceInput) { in.Schedule[0].Date = "01/12/2025" }, "availableDates.date"},
		{"bad time", func(in *ExperienceInput) { in.Schedule[0].Slots[0].Time = "10am" }, "availableDates.slots.time"},
		{"booked over capacity", func(in *ExperienceInput) {
			in.Schedule[0].Slots[0].Booked = ptr(11)
		}, "availableDates.slots.available"},
		{"booked on create", func(in *ExperienceInput) {
			in.Schedule[0].Slots[1].Booked = ptr(3)
		}, "availableDates.slots.booked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repos, _ := newService(t)
			in := experienceInput()
			tt.mut(&in)

			_, err := svc.CreateExperience(context.Background(), in)
			require.ErrorIs(t, err, ErrValidation)

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)

			list, err := repos.Experiences.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestUpdateExperiencePartial(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	e, err := svc.CreateExperience(ctx, experienceInput())
	require.NoError(t, err)

	updated, err := svc.UpdateExperience(ctx, e.ID, ExperiencePatch{
		Title: ptr("Sunset Kayaking"),
		Price: ptr(0),
	})
	require.NoError(t, err)

	assert.Equal(t, "Sunset Kayaking", updated.Title)
	assert.Equal(t, 0, updated.Price)
	assert.Equal(t, "Udupi", updated.Location)
	assert.Equal(t, e.AvailableDates, updated.AvailableDates)
}

func TestUpdateExperienceKeepsBookedCounters(t *testing.T) {
	svc, repos, _ := newService(t)
	ctx := context.Background()

	e, err := svc.CreateExperience(ctx, experienceInput())
	require.NoError(t, err)
	require.NoError(t, repos.Experiences.IncrementBooked(ctx, e.ID, "2025-12-01", "10:00", 6))

	updated, err := svc.UpdateExperience(ctx, e.ID, ExperiencePatch{
		Schedule: &[]DateInput{
			{Date: "2025-12-01", Slots: []SlotInput{
				{Time: "10:00", Available: 12},
				{Time: "14:00", Available: 4, Booked: ptr(1)},
			}},
			{Date: "2025-12-02", Slots: []SlotInput{{Time: "10:00", Available: 5}}},
		},
	})
	require.NoError(t, err)

	s, err := updated.LocateSlot("2025-12-01", "10:00")
	require.NoError(t, err)
	assert.Equal(t, 6, s.Booked)
	assert.Equal(t, 12, s.Available)

	s, err = updated.LocateSlot("2025-12-01", "14:00")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Booked)

	s, err = updated.LocateSlot("2025-12-02", "10:00")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Booked)
}

func TestUpdateExperienceCapacityBelowBooked(t *testing.T) {
	svc, repos, _ := newService(t)
	ctx := context.Background()

	e, err := svc.CreateExperience(ctx, experienceInput())
	require.NoError(t, err)
	require.NoError(t, repos.Experiences.IncrementBooked(ctx, e.ID, "2025-12-01", "10:00", 6))

	_, err = svc.UpdateExperience(ctx, e.ID, ExperiencePatch{
		Schedule: &[]DateInput{
			{Date: "2025-12-01", Slots: []SlotInput{{Time: "10:00", Available: 5}}},
		},
	})
	assert.ErrorIs(t, err, ErrValidation)

	got, err := repos.Experiences.Get(ctx, e.ID)
	require.NoError(t, err)
	s, err := got.LocateSlot("2025-12-01", "10:00")
	require.NoError(t, err)
	assert.Equal(t, 10, s.Available)
}

func TestExperienceNotFound(t *testing.T) {
	svc, _, rec := newService(t)
	ctx := context.Background()

	_, err := svc.UpdateExperience(ctx, uuid.New(), ExperiencePatch{Title: ptr("x")})
	assert.ErrorIs(t, err, ErrExperienceNotFound)

	err = svc.DeleteExperience(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrExperienceNotFound)

	assert.Empty(t, rec.ids)
}

func TestDeleteExperience(t *testing.T) {
	svc, repos, rec := newService(t)
	ctx := context.Background()

	e, err := svc.CreateExperience(ctx, experienceInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteExperience(ctx, e.ID))

	_, err = repos.Experiences.Get(ctx, e.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, []uuid.UUID{e.ID, e.ID}, rec.ids)
}

func TestCreatePromoCode(t *testing.T) {
	svc, _, _ := newService(t)

	in := promoInput(" save10 ")
	in.MaxDiscount = ptr(0)
	in.UsageLimit = ptr(5)

	p, err := svc.CreatePromoCode(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "SAVE10", p.Code)
	assert.True(t, p.IsActive)
	assert.Equal(t, 0, p.UsageCount)
	assert.Equal(t, 0, p.MinPurchaseAmount)
	assert.Nil(t, p.MaxDiscount, "zero cap means no cap")
	require.NotNil(t, p.UsageLimit)
	assert.Equal(t, 5, *p.UsageLimit)
}

func TestCreatePromoCodeDuplicateIgnoresCase(t *testing.T) {
	svc, repos, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreatePromoCode(ctx, promoInput("SAVE10"))
	require.NoError(t, err)

	_, err = svc.CreatePromoCode(ctx, promoInput("save10"))
	assert.ErrorIs(t, err, ErrPromoConflict)

	list, err := repos.PromoCodes.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreatePromoCodeValidation(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*PromoInput)
		field string
	}{
		{"empty code", func(in *PromoInput) { in.Code = "  " }, "code"},
		{"unknown type", func(in *PromoInput) { in.DiscountType = "bogo" }, "discountType"},
		{"zero value", func(in *PromoInput) { in.DiscountValue = 0 }, "discountValue"},
		{"over 100 percent", func(in *PromoInput) { in.DiscountValue = 101 }, "discountValue"},
		{"no expiry", func(in *PromoInput) { in.ExpiryDate = time.Time{} }, "expiryDate"},
		{"negative minimum", func(in *PromoInput) { in.MinPurchaseAmount = -5 }, "minPurchaseAmount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newService(t)
			in := promoInput("SAVE10")
			tt.mut(&in)

			_, err := svc.CreatePromoCode(context.Background(), in)
			require.ErrorIs(t, err, ErrValidation)

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestUpdatePromoCode(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	p, err := svc.CreatePromoCode(ctx, promoInput("SAVE10"))
	require.NoError(t, err)
	other, err := svc.CreatePromoCode(ctx, promoInput("FLAT100"))
	require.NoError(t, err)

	updated, err := svc.UpdatePromoCode(ctx, p.ID, PromoPatch{
		DiscountValue: ptr(15),
		IsActive:      ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", updated.Code)
	assert.Equal(t, 15, updated.DiscountValue)
	assert.False(t, updated.IsActive)

	_, err = svc.UpdatePromoCode(ctx, other.ID, PromoPatch{Code: ptr("save10")})
	assert.ErrorIs(t, err, ErrPromoConflict)

	_, err = svc.UpdatePromoCode(ctx, uuid.New(), PromoPatch{DiscountValue: ptr(5)})
	assert.ErrorIs(t, err, ErrPromoNotFound)

	got, err := svc.GetPromoCode(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "FLAT100", got.Code)
}

func TestDeletePromoCode(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	p, err := svc.CreatePromoCode(ctx, promoInput("SAVE10"))
	require.NoError(t, err)

	require.NoError(t, svc.DeletePromoCode(ctx, p.ID))
	assert.ErrorIs(t, svc.DeletePromoCode(ctx, p.ID), ErrPromoNotFound)

	_, err = svc.GetPromoCode(ctx, p.ID)
	assert.ErrorIs(t, err, ErrPromoNotFound)

	list, err := svc.ListPromoCodes(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

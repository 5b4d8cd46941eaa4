package httpgin

import (
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/kirinyoku/tripslot/internal/domain"
	"github.com/kirinyoku/tripslot/internal/service/admin"
)

type SlotRequest struct {
	Time      string `json:"time" binding:"required,clock"`
	Available int    `json:"available" binding:"gte=0"`
	Booked    *int   `json:"booked" binding:"omitempty,gte=0"`
}

type DateRequest struct {
	Date  string        `json:"date" binding:"required,isodate"`
	Slots []SlotRequest `json:"slots" binding:"dive"`
}

type CreateExperienceRequest struct {
	Title          string        `json:"title" binding:"required"`
	Description    string        `json:"description" binding:"required"`
	Location       string        `json:"location" binding:"required"`
	ImageURL       string        `json:"imageUrl" binding:"required"`
	Price          *int          `json:"price" binding:"required,gte=0"`
	About          string        `json:"about" binding:"required"`
	IncludesText   string        `json:"includesText"`
	AvailableDates []DateRequest `json:"availableDates" binding:"dive"`
}

// UpdateExperienceRequest is a partial update: absent fields keep their
// value. Sending availableDates replaces the whole schedule.
type UpdateExperienceRequest struct {
	Title          *string       `json:"title"`
	Description    *string       `json:"description"`
	Location       *string       `json:"location"`
	ImageURL       *string       `json:"imageUrl"`
	Price          *int          `json:"price" binding:"omitempty,gte=0"`
	About          *string       `json:"about"`
	IncludesText   *string       `json:"includesText"`
	AvailableDates []DateRequest `json:"availableDates" binding:"dive"`
}

type CreatePromoCodeRequest struct {
	Code              string `json:"code" binding:"required"`
	DiscountType      string `json:"discountType" binding:"required,discounttype"`
	DiscountValue     int    `json:"discountValue" binding:"required,gt=0"`
	MaxDiscount       *int   `json:"maxDiscount" binding:"omitempty,gte=0"`
	MinPurchaseAmount int    `json:"minPurchaseAmount" binding:"gte=0"`
	ExpiryDate        string `json:"expiryDate" binding:"required,expiry"`
	UsageLimit        *int   `json:"usageLimit" binding:"omitempty,gte=0"`
	IsActive          *bool  `json:"isActive"`
}

type UpdatePromoCodeRequest struct {
	Code              *string `json:"code"`
	DiscountType      *string `json:"discountType" binding:"omitempty,discounttype"`
	DiscountValue     *int    `json:"discountValue" binding:"omitempty,gt=0"`
	MaxDiscount       *int    `json:"maxDiscount" binding:"omitempty,gte=0"`
	MinPurchaseAmount *int    `json:"minPurchaseAmount" binding:"omitempty,gte=0"`
	ExpiryDate        *string `json:"expiryDate" binding:"omitempty,expiry"`
	UsageLimit        *int    `json:"usageLimit" binding:"omitempty,gte=0"`
	IsActive          *bool   `json:"isActive"`
}

type ValidatePromoRequest struct {
	Code        string `json:"code" binding:"required"`
	TotalAmount *int   `json:"totalAmount" binding:"required,gte=0"`
}

type CreateBookingRequest struct {
	ExperienceID   string `json:"experienceId" binding:"required,uuid"`
	Date           string `json:"date" binding:"required,isodate"`
	Time           string `json:"time" binding:"required,clock"`
	Quantity       int    `json:"quantity" binding:"required,gte=1"`
	FullName       string `json:"fullName" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Subtotal       int    `json:"subtotal" binding:"gte=0"`
	Taxes          int    `json:"taxes" binding:"gte=0"`
	PromoCode      string `json:"promoCode"`
	DiscountAmount int    `json:"discountAmount" binding:"gte=0"`
	Total          int    `json:"total"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func (r CreateExperienceRequest) toInput() (admin.ExperienceInput, error) {
	var in admin.ExperienceInput
	if err := copier.Copy(&in, &r); err != nil {
		return in, err
	}
	if err := copier.Copy(&in.Schedule, &r.AvailableDates); err != nil {
		return in, err
	}
	return in, nil
}

func (r UpdateExperienceRequest) toPatch() (admin.ExperiencePatch, error) {
	var p admin.ExperiencePatch
	if err := copier.Copy(&p, &r); err != nil {
		return p, err
	}
	if r.AvailableDates != nil {
		schedule := make([]admin.DateInput, 0, len(r.AvailableDates))
		if err := copier.Copy(&schedule, &r.AvailableDates); err != nil {
			return p, err
		}
		p.Schedule = &schedule
	}
	return p, nil
}

func (r CreatePromoCodeRequest) toInput() admin.PromoInput {
	// expiry is checked by binding
	expiry, _ := parseExpiry(r.ExpiryDate)

	return admin.PromoInput{
		Code:              r.Code,
		DiscountType:      domain.DiscountType(r.DiscountType),
		DiscountValue:     r.DiscountValue,
		MaxDiscount:       r.MaxDiscount,
		MinPurchaseAmount: r.MinPurchaseAmount,
		ExpiryDate:        expiry,
		UsageLimit:        r.UsageLimit,
		IsActive:          r.IsActive,
	}
}

func (r UpdatePromoCodeRequest) toPatch() admin.PromoPatch {
	p := admin.PromoPatch{
		Code:              r.Code,
		DiscountValue:     r.DiscountValue,
		MaxDiscount:       r.MaxDiscount,
		MinPurchaseAmount: r.MinPurchaseAmount,
		UsageLimit:        r.UsageLimit,
		IsActive:          r.IsActive,
	}
	if r.DiscountType != nil {
		dt := domain.DiscountType(*r.DiscountType)
		p.DiscountType = &dt
	}
	if r.ExpiryDate != nil {
		if t, err := parseExpiry(*r.ExpiryDate); err == nil {
			p.ExpiryDate = &t
		}
	}
	return p
}

func (r CreateBookingRequest) toDomain(id uuid.UUID) domain.BookingRequest {
	return domain.BookingRequest{
		ExperienceID:   id,
		Date:           r.Date,
		Time:           r.Time,
		Quantity:       r.Quantity,
		FullName:       r.FullName,
		Email:          r.Email,
		Subtotal:       r.Subtotal,
		Taxes:          r.Taxes,
		PromoCode:      r.PromoCode,
		DiscountAmount: r.DiscountAmount,
		Total:          r.Total,
	}
}

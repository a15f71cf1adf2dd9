package models

import "time"

// CarDraft is the in-progress editable representation of a vehicle. It is a
// plain value updated field by field; validation happens at submission time
// (see the carform package, which registers the modelyear rule).
type CarDraft struct {
	BrandID      string          `validate:"required"`
	Model        string          `validate:"required"`
	Year         int             `validate:"modelyear"`
	Price        int64           `validate:"min=0"`
	Mileage      *int64          `validate:"omitempty,min=0"`
	Description  *string         `validate:"-"`
	Status       CarStatus       `validate:"omitempty,oneof=AVAILABLE SOLD"`
	Fuel         *string         `validate:"-"`
	Color        *string         `validate:"-"`
	Transmission *string         `validate:"-"`
	LicensePlate *string         `validate:"-"`
	Financeable  bool            `validate:"-"`
	Options      map[string]bool `validate:"-"`
}

// NewCarDraft returns an empty draft with the defaults the create form starts
// from: current year, zero price, status AVAILABLE.
func NewCarDraft() CarDraft {
	return CarDraft{
		Year:    time.Now().Year(),
		Status:  CarStatusAvailable,
		Options: map[string]bool{},
	}
}

// DraftFromCar hydrates a draft from a fetched car record for edit mode.
func DraftFromCar(c Car) CarDraft {
	opts := make(map[string]bool, len(c.Options))
	for k, v := range c.Options {
		opts[k] = v
	}
	return CarDraft{
		BrandID:      c.BrandID,
		Model:        c.Model,
		Year:         c.Year,
		Price:        c.Price,
		Mileage:      c.Mileage,
		Description:  c.Description,
		Status:       c.Status,
		Fuel:         c.Fuel,
		Color:        c.Color,
		Transmission: c.Transmission,
		LicensePlate: c.LicensePlate,
		Financeable:  c.Financeable,
		Options:      opts,
	}
}

package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/models"
)

// ListCarsParams is the normalized request-parameter set for car listings.
// Zero values mean "no filter" and are omitted from the query string.
type ListCarsParams struct {
	Page        int
	Limit       int
	Search      string
	BrandID     string
	Year        int
	OrderBy     models.SortOrder
	MinPrice    *int64
	MaxPrice    *int64
	Financeable *bool
}

// Values encodes the params, leaving out every no-filter field.
func (p ListCarsParams) Values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.BrandID != "" {
		v.Set("brandId", p.BrandID)
	}
	if p.Year > 0 {
		v.Set("year", strconv.Itoa(p.Year))
	}
	if p.OrderBy != "" {
		v.Set("orderBy", string(p.OrderBy))
	}
	if p.MinPrice != nil {
		v.Set("minPrice", strconv.FormatInt(*p.MinPrice, 10))
	}
	if p.MaxPrice != nil {
		v.Set("maxPrice", strconv.FormatInt(*p.MaxPrice, 10))
	}
	if p.Financeable != nil {
		v.Set("financeable", strconv.FormatBool(*p.Financeable))
	}
	return v
}

// Key is the canonical identity of a parameter set. Two params with equal
// keys are the same logical query.
func (p ListCarsParams) Key() string {
	return p.Values().Encode()
}

// Upload is a pending image file referenced by path; it is opened and
// streamed when the multipart request is built.
type Upload struct {
	Name string
	Path string
}

// CreateCarData is the payload for creating a vehicle.
type CreateCarData struct {
	BrandID      string
	Model        string
	Year         int
	Price        int64
	Mileage      *int64
	Description  *string
	Fuel         *string
	Color        *string
	Transmission *string
	LicensePlate *string
	Financeable  *bool
	Options      map[string]bool
	Images       []Upload
}

// UpdateCarData is the payload for updating a vehicle. ImagesToKeep lists the
// existing image URLs to retain, in display order; nil omits the field (the
// backend then keeps everything), an empty non-nil slice drops every existing
// image.
type UpdateCarData struct {
	BrandID      string
	Model        string
	Year         int
	Price        int64
	Mileage      *int64
	Description  *string
	Status       models.CarStatus
	Fuel         *string
	Color        *string
	Transmission *string
	LicensePlate *string
	Financeable  *bool
	Options      map[string]bool
	Images       []Upload
	ImagesToKeep []string
}

// UpdateSettingsData is the payload for the dealership settings form. Nil
// pointer fields are omitted. Logo uploads a new file; when Logo is nil and
// LogoURL is non-nil, the URL value is sent instead (empty string removes the
// current logo).
type UpdateSettingsData struct {
	Name           *string
	PrimaryColor   *string
	SecondaryColor *string
	Whatsapp       *string
	Active         *bool
	Logo           *Upload
	LogoURL        *string
}

// Client is the REST surface of the dealership backend that this application
// consumes. Admin operations require a logged-in session and fail with
// ErrUnauthorized once the backend rejects the token.
type Client interface {
	// Public endpoints.
	GetGarage(ctx context.Context) (*models.Garage, error)
	ListCars(ctx context.Context, params ListCarsParams) (*models.CarPage, error)
	GetCar(ctx context.Context, id string) (*models.Car, error)
	ListBrands(ctx context.Context) ([]models.Brand, error)

	// Auth.
	Login(ctx context.Context, email, password string) (*models.User, error)

	// Admin endpoints.
	ListAdminCars(ctx context.Context, params ListCarsParams) (*models.CarPage, error)
	GetAdminCar(ctx context.Context, id string) (*models.Car, error)
	CreateCar(ctx context.Context, data CreateCarData) (*models.Car, error)
	UpdateCar(ctx context.Context, id string, data UpdateCarData) (*models.Car, error)
	DeleteCar(ctx context.Context, id string) error
	ListAdminBrands(ctx context.Context) ([]models.Brand, error)
	GetSettings(ctx context.Context) (*models.Garage, error)
	UpdateSettings(ctx context.Context, data UpdateSettingsData) (*models.Garage, error)
}

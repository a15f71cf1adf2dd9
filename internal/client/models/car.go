// Package models defines the dealership data types exchanged with the backend.
package models

import "time"

// CarStatus is the sale status of a vehicle.
type CarStatus string

const (
	CarStatusAvailable CarStatus = "AVAILABLE"
	CarStatusSold      CarStatus = "SOLD"
)

// SortOrder enumerates the catalog sort options as the backend spells them.
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortOldest    SortOrder = "oldest"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

// Brand is read-only reference data used to resolve a displayed brand name
// back to the identifier the backend filters by.
type Brand struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Garage is the dealership profile, also returned by the settings endpoints.
type Garage struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Domain         string  `json:"domain"`
	LogoURL        *string `json:"logoUrl,omitempty"`
	PrimaryColor   *string `json:"primaryColor,omitempty"`
	SecondaryColor *string `json:"secondaryColor,omitempty"`
	Whatsapp       *string `json:"whatsapp,omitempty"`
	Active         bool    `json:"active"`
}

// Car is a vehicle record as served by the backend. Price and mileage are in
// the smallest currency unit and kilometers respectively.
type Car struct {
	ID           string          `json:"id"`
	BrandID      string          `json:"brandId"`
	Brand        Brand           `json:"brand"`
	Model        string          `json:"model"`
	Year         int             `json:"year"`
	Price        int64           `json:"price"`
	Mileage      *int64          `json:"mileage,omitempty"`
	Description  *string         `json:"description,omitempty"`
	Status       CarStatus       `json:"status"`
	Images       []string        `json:"images"`
	Fuel         *string         `json:"fuel,omitempty"`
	Color        *string         `json:"color,omitempty"`
	Transmission *string         `json:"transmission,omitempty"`
	LicensePlate *string         `json:"licensePlate,omitempty"`
	Financeable  bool            `json:"financeable"`
	Options      map[string]bool `json:"options,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// CarPage is one page of a paginated car listing.
type CarPage struct {
	Cars       []Car `json:"cars"`
	Total      int   `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// User is the authenticated admin identity returned by login.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

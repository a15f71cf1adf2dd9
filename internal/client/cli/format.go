package cli

import (
	"fmt"
	"strings"

	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/models"
)

const (
	placeholderCarImage = "/placeholder-car.jpg"
	placeholderLogo     = "/placeholder-logo.png"
)

// FormatPrice renders an amount in the smallest currency unit as Brazilian
// currency, e.g. 12345678 -> "R$ 123.456,78".
func FormatPrice(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, groupDigits(amount/100), amount%100)
}

// FormatMileage renders kilometers for display: unknown or negative mileage
// is "N/A", zero is "Novo", everything else is grouped with a km suffix.
func FormatMileage(km *int64) string {
	switch {
	case km == nil, *km < 0:
		return "N/A"
	case *km == 0:
		return "Novo"
	default:
		return groupDigits(*km) + " km"
	}
}

// CarImageURL is the cover image of a listing row: the first stored image, or
// a placeholder when the record has none.
func CarImageURL(car models.Car) string {
	if len(car.Images) > 0 {
		return normalizeURL(car.Images[0])
	}
	return placeholderCarImage
}

// LogoURL is the dealership logo with a placeholder fallback.
func LogoURL(g *models.Garage) string {
	if g != nil && g.LogoURL != nil && *g.LogoURL != "" {
		return normalizeURL(*g.LogoURL)
	}
	return placeholderLogo
}

// normalizeURL makes a stored image reference loadable: absolute URLs and
// local paths pass through, a bare host gets an https scheme.
func normalizeURL(u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") || strings.HasPrefix(u, "/") {
		return u
	}
	return "https://" + u
}

// StatusLabel translates a sale status for display.
func StatusLabel(s models.CarStatus) string {
	switch s {
	case models.CarStatusSold:
		return "Vendido"
	default:
		return "Disponível"
	}
}

// groupDigits renders n with dots as thousands separators, pt-BR style.
func groupDigits(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

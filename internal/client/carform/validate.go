package carform

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/models"
)

// validate carries the CarDraft schema rules. The modelyear rule bounds the
// year to [1900, next year], matching what the backend accepts.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("modelyear", func(fl validator.FieldLevel) bool {
		year := int(fl.Field().Int())
		return year >= 1900 && year <= time.Now().Year()+1
	})
	return v
}

// FieldError is a single field-scoped validation failure with user-facing
// copy.
type FieldError struct {
	Field   string
	Message string
}

// ValidateDraft checks the draft against the schema and returns one error per
// failing field, nil when the draft is valid. Validation is local: nothing
// here touches the network.
func ValidateDraft(d models.CarDraft) []FieldError {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Field() {
	case "BrandID":
		return "Marca é obrigatória"
	case "Model":
		return "Modelo é obrigatório"
	case "Year":
		return "Ano inválido"
	case "Price":
		return "Preço deve ser maior ou igual a zero"
	case "Mileage":
		return "Quilometragem deve ser maior ou igual a zero"
	case "Status":
		return "Status inválido"
	default:
		return fmt.Sprintf("Campo %s inválido", fe.Field())
	}
}

// Package carform drives the car create/edit form: a plain CarDraft value
// updated field by field, the gallery model for images, and the submission
// pipeline that validates, builds the wire payload, dispatches exactly one
// create or update call and reconciles caches afterwards.
package carform

import (
	"context"
	"errors"
	"sync"

	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/api"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/gallery"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/models"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/logging"
)

// Mode selects the submission branch.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Phase is the submission state machine. Succeeded is terminal: the pipeline
// has already invalidated caches and triggered navigation.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSucceeded
)

var (
	// ErrSubmitInFlight means a submission is already running (or already
	// succeeded); the call was ignored and no network request was made.
	ErrSubmitInFlight = errors.New("submission already in flight")

	// ErrValidation means the draft failed schema validation; the field
	// errors are available on the form and nothing reached the network.
	ErrValidation = errors.New("validation failed")
)

const (
	fallbackCreateMessage = "Não foi possível criar o veículo. Tente novamente."
	fallbackUpdateMessage = "Não foi possível atualizar o veículo. Tente novamente."
)

// CarWriter is the slice of the API client the pipeline dispatches to.
type CarWriter interface {
	CreateCar(ctx context.Context, data api.CreateCarData) (*models.Car, error)
	UpdateCar(ctx context.Context, id string, data api.UpdateCarData) (*models.Car, error)
}

// Hooks are the caller-supplied side effects of a successful submission.
// Any of them may be nil.
type Hooks struct {
	// InvalidateLists drops the catalog and admin list caches.
	InvalidateLists func()
	// InvalidateCar drops the cached detail record; called in edit mode.
	InvalidateCar func(id string)
	// Navigate moves the UI away from the form.
	Navigate func(car *models.Car)
}

// Form is one car form instance. Field setters and Submit are safe to call
// from the UI loop; only one submission can be in flight at a time.
type Form struct {
	mu      sync.Mutex
	mode    Mode
	carID   string
	draft   models.CarDraft
	gallery *gallery.Model
	writer  CarWriter
	log     logging.Logger
	hooks   Hooks

	phase       Phase
	fieldErrors []FieldError
	errMessage  string
}

// NewCreateForm starts an empty form for a new vehicle.
func NewCreateForm(writer CarWriter, log logging.Logger, hooks Hooks) *Form {
	return &Form{
		mode:    ModeCreate,
		draft:   models.NewCarDraft(),
		gallery: gallery.NewModel(gallery.ModeCreate),
		writer:  writer,
		log:     log,
		hooks:   hooks,
	}
}

// NewEditForm hydrates a form from a fetched car record. The car's stored
// images seed the gallery; a record with duplicate image URLs is rejected.
func NewEditForm(car models.Car, writer CarWriter, log logging.Logger, hooks Hooks) (*Form, error) {
	g := gallery.NewModel(gallery.ModeEdit)
	if err := g.SeedExisting(car.Images); err != nil {
		return nil, err
	}
	return &Form{
		mode:    ModeEdit,
		carID:   car.ID,
		draft:   models.DraftFromCar(car),
		gallery: g,
		writer:  writer,
		log:     log,
		hooks:   hooks,
	}, nil
}

func (f *Form) Mode() Mode { return f.mode }

// Gallery exposes the image model for add/remove/reorder operations.
func (f *Form) Gallery() *gallery.Model { return f.gallery }

func (f *Form) Draft() models.CarDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *Form) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// FieldErrors returns the validation failures of the last Submit attempt.
func (f *Form) FieldErrors() []FieldError {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fieldErrors
}

// ErrorMessage returns the user-visible message of the last failed
// submission: the server's own wording when it provided one, a generic
// fallback otherwise.
func (f *Form) ErrorMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMessage
}

func (f *Form) SetBrandID(v string)      { f.setField(func(d *models.CarDraft) { d.BrandID = v }) }
func (f *Form) SetModel(v string)        { f.setField(func(d *models.CarDraft) { d.Model = v }) }
func (f *Form) SetYear(v int)            { f.setField(func(d *models.CarDraft) { d.Year = v }) }
func (f *Form) SetPrice(v int64)         { f.setField(func(d *models.CarDraft) { d.Price = v }) }
func (f *Form) SetMileage(v *int64)      { f.setField(func(d *models.CarDraft) { d.Mileage = v }) }
func (f *Form) SetDescription(v *string) { f.setField(func(d *models.CarDraft) { d.Description = v }) }
func (f *Form) SetStatus(v models.CarStatus) {
	f.setField(func(d *models.CarDraft) { d.Status = v })
}
func (f *Form) SetFuel(v *string)         { f.setField(func(d *models.CarDraft) { d.Fuel = v }) }
func (f *Form) SetColor(v *string)        { f.setField(func(d *models.CarDraft) { d.Color = v }) }
func (f *Form) SetTransmission(v *string) { f.setField(func(d *models.CarDraft) { d.Transmission = v }) }
func (f *Form) SetLicensePlate(v *string) { f.setField(func(d *models.CarDraft) { d.LicensePlate = v }) }
func (f *Form) SetFinanceable(v bool)     { f.setField(func(d *models.CarDraft) { d.Financeable = v }) }

// SetOption toggles a named equipment option on the draft.
func (f *Form) SetOption(name string, enabled bool) {
	f.setField(func(d *models.CarDraft) {
		if d.Options == nil {
			d.Options = map[string]bool{}
		}
		d.Options[name] = enabled
	})
}

func (f *Form) setField(apply func(*models.CarDraft)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	apply(&f.draft)
}

// Submit runs the pipeline: validate locally, dispatch exactly one create or
// update call, then on success invalidate stale caches and navigate away. On
// failure the draft and the gallery stay intact so the user can retry. A
// Submit while another is in flight is ignored and causes no network call.
func (f *Form) Submit(ctx context.Context) (*models.Car, error) {
	f.mu.Lock()
	if f.phase != PhaseIdle {
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	}

	f.fieldErrors = ValidateDraft(f.draft)
	if len(f.fieldErrors) > 0 {
		f.mu.Unlock()
		return nil, ErrValidation
	}

	f.phase = PhaseSubmitting
	f.errMessage = ""
	draft := f.draft
	f.mu.Unlock()

	keep, files := f.gallery.Payload()
	uploads := make([]api.Upload, len(files))
	for i, file := range files {
		uploads[i] = api.Upload{Name: file.Name, Path: file.Path}
	}
	financeable := draft.Financeable

	var car *models.Car
	var err error
	if f.mode == ModeEdit {
		car, err = f.writer.UpdateCar(ctx, f.carID, api.UpdateCarData{
			BrandID:      draft.BrandID,
			Model:        draft.Model,
			Year:         draft.Year,
			Price:        draft.Price,
			Mileage:      draft.Mileage,
			Description:  draft.Description,
			Status:       draft.Status,
			Fuel:         draft.Fuel,
			Color:        draft.Color,
			Transmission: draft.Transmission,
			LicensePlate: draft.LicensePlate,
			Financeable:  &financeable,
			Options:      draft.Options,
			Images:       uploads,
			ImagesToKeep: keep,
		})
	} else {
		car, err = f.writer.CreateCar(ctx, api.CreateCarData{
			BrandID:      draft.BrandID,
			Model:        draft.Model,
			Year:         draft.Year,
			Price:        draft.Price,
			Mileage:      draft.Mileage,
			Description:  draft.Description,
			Fuel:         draft.Fuel,
			Color:        draft.Color,
			Transmission: draft.Transmission,
			LicensePlate: draft.LicensePlate,
			Financeable:  &financeable,
			Options:      draft.Options,
			Images:       uploads,
		})
	}

	f.mu.Lock()
	if err != nil {
		f.phase = PhaseIdle
		f.errMessage = f.submitErrorMessage(err)
		f.mu.Unlock()
		f.log.Warn(ctx, "car submission failed", "mode", f.mode, "error", err)
		return nil, err
	}
	f.phase = PhaseSucceeded
	f.mu.Unlock()

	f.log.Info(ctx, "car submitted", "mode", f.mode, "id", car.ID)
	if f.hooks.InvalidateLists != nil {
		f.hooks.InvalidateLists()
	}
	if f.mode == ModeEdit && f.hooks.InvalidateCar != nil {
		f.hooks.InvalidateCar(f.carID)
	}
	if f.hooks.Navigate != nil {
		f.hooks.Navigate(car)
	}
	return car, nil
}

func (f *Form) submitErrorMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if f.mode == ModeEdit {
		return fallbackUpdateMessage
	}
	return fallbackCreateMessage
}

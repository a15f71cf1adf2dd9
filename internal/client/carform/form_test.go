package carform

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/api"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/gallery"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/models"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/logging"
)

type fakeWriter struct {
	mu      sync.Mutex
	creates []api.CreateCarData
	updates []api.UpdateCarData
	updated []string
	err     error
	block   chan struct{} // when set, calls wait here
}

func (w *fakeWriter) CreateCar(ctx context.Context, data api.CreateCarData) (*models.Car, error) {
	w.mu.Lock()
	w.creates = append(w.creates, data)
	block := w.block
	w.mu.Unlock()
	if block != nil {
		<-block
	}
	if w.err != nil {
		return nil, w.err
	}
	return &models.Car{ID: "created-1"}, nil
}

func (w *fakeWriter) UpdateCar(ctx context.Context, id string, data api.UpdateCarData) (*models.Car, error) {
	w.mu.Lock()
	w.updates = append(w.updates, data)
	w.updated = append(w.updated, id)
	w.mu.Unlock()
	if w.err != nil {
		return nil, w.err
	}
	return &models.Car{ID: id}, nil
}

func (w *fakeWriter) createCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.creates)
}

func fillValid(f *Form) {
	f.SetBrandID("b1")
	f.SetModel("Corolla")
	f.SetPrice(9800000)
}

func TestSubmit_ValidationFailureSkipsNetwork(t *testing.T) {
	writer := &fakeWriter{}
	f := NewCreateForm(writer, logging.NewNop(), Hooks{})

	_, err := f.Submit(context.Background())
	require.ErrorIs(t, err, ErrValidation)
	require.NotEmpty(t, f.FieldErrors())
	require.Zero(t, writer.createCount(), "validation errors never reach the network")
	require.Equal(t, PhaseIdle, f.Phase())
}

func TestSubmit_CreateBranch(t *testing.T) {
	writer := &fakeWriter{}
	var listsInvalidated, carInvalidated bool
	var navigatedTo *models.Car

	f := NewCreateForm(writer, logging.NewNop(), Hooks{
		InvalidateLists: func() { listsInvalidated = true },
		InvalidateCar:   func(string) { carInvalidated = true },
		Navigate:        func(c *models.Car) { navigatedTo = c },
	})
	fillValid(f)
	f.SetOption("ar condicionado", true)
	f.Gallery().AddFiles(gallery.NewFile("a.jpg", "/tmp/a.jpg"))

	car, err := f.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, "created-1", car.ID)
	require.Equal(t, PhaseSucceeded, f.Phase())

	require.Len(t, writer.creates, 1)
	require.Empty(t, writer.updates, "exactly one of create/update, never both")
	require.Len(t, writer.creates[0].Images, 1)
	require.Equal(t, "a.jpg", writer.creates[0].Images[0].Name)
	require.True(t, writer.creates[0].Options["ar condicionado"])

	require.True(t, listsInvalidated)
	require.False(t, carInvalidated, "no detail cache exists for a new car")
	require.Equal(t, car, navigatedTo)
}

func TestSubmit_EditBranch(t *testing.T) {
	writer := &fakeWriter{}
	var invalidatedCar string
	car := models.Car{
		ID:      "c1",
		BrandID: "b1",
		Model:   "Corolla",
		Year:    2021,
		Price:   9800000,
		Status:  models.CarStatusAvailable,
		Images:  []string{"u1", "u2", "u3"},
	}

	f, err := NewEditForm(car, writer, logging.NewNop(), Hooks{
		InvalidateCar: func(id string) { invalidatedCar = id },
	})
	require.NoError(t, err)

	// remove u2, add f1, move it to the front
	require.NoError(t, f.Gallery().RemoveAt(1))
	f.Gallery().AddFiles(gallery.NewFile("f1.jpg", "/tmp/f1.jpg"))
	require.NoError(t, f.Gallery().Reorder(2, 0))
	f.SetStatus(models.CarStatusSold)

	_, err = f.Submit(context.Background())
	require.NoError(t, err)

	require.Empty(t, writer.creates)
	require.Len(t, writer.updates, 1)
	require.Equal(t, []string{"c1"}, writer.updated)
	require.Equal(t, models.CarStatusSold, writer.updates[0].Status)
	require.Equal(t, []string{"u1", "u3"}, writer.updates[0].ImagesToKeep)
	require.Len(t, writer.updates[0].Images, 1)
	require.Equal(t, "c1", invalidatedCar)
}

func TestSubmit_EditAlwaysSendsKeepList(t *testing.T) {
	writer := &fakeWriter{}
	car := models.Car{ID: "c1", BrandID: "b1", Model: "Corolla", Year: 2021, Price: 1, Images: []string{"u1"}}
	f, err := NewEditForm(car, writer, logging.NewNop(), Hooks{})
	require.NoError(t, err)

	// user removes every image; the explicit empty list must still be sent
	require.NoError(t, f.Gallery().RemoveAt(0))
	_, err = f.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, writer.updates[0].ImagesToKeep)
	require.Empty(t, writer.updates[0].ImagesToKeep)
}

func TestSubmit_SingleFlight(t *testing.T) {
	writer := &fakeWriter{block: make(chan struct{})}
	f := NewCreateForm(writer, logging.NewNop(), Hooks{})
	fillValid(f)

	done := make(chan struct{})
	go func() {
		_, _ = f.Submit(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool { return writer.createCount() == 1 }, time.Second, 5*time.Millisecond)

	_, err := f.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmitInFlight)
	require.Equal(t, 1, writer.createCount(), "second submit makes no network call")

	close(writer.block)
	<-done
	require.Equal(t, PhaseSucceeded, f.Phase())
}

func TestSubmit_FailurePreservesDraftAndSurfacesServerMessage(t *testing.T) {
	writer := &fakeWriter{err: &api.Error{StatusCode: 409, Message: "Placa já cadastrada"}}
	f := NewCreateForm(writer, logging.NewNop(), Hooks{})
	fillValid(f)
	f.Gallery().AddFiles(gallery.NewFile("a.jpg", "/tmp/a.jpg"))

	_, err := f.Submit(context.Background())
	require.Error(t, err)
	require.Equal(t, "Placa já cadastrada", f.ErrorMessage())
	require.Equal(t, PhaseIdle, f.Phase(), "failure returns to idle for retry")
	require.Equal(t, "Corolla", f.Draft().Model, "draft survives the failure")
	require.Equal(t, 1, f.Gallery().Len(), "gallery survives the failure")

	// retry goes back to the network
	writer.err = nil
	_, err = f.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, writer.createCount())
}

func TestSubmit_FailureWithoutServerMessageUsesFallback(t *testing.T) {
	writer := &fakeWriter{err: errors.New("connection reset")}
	f := NewCreateForm(writer, logging.NewNop(), Hooks{})
	fillValid(f)

	_, err := f.Submit(context.Background())
	require.Error(t, err)
	require.Equal(t, "Não foi possível criar o veículo. Tente novamente.", f.ErrorMessage())
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/api"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/carform"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/catalog"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/gallery"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/models"
)

// Inventory renders the admin vehicle listing. The optional argument moves
// the page cursor: "next", "prev" or an absolute page number.
func (a *App) Inventory(ctx context.Context, arg string) error {
	if arg != "" {
		a.updateInvQuery(func(q catalog.QueryState) catalog.QueryState {
			switch arg {
			case "next":
				return q.WithPage(q.Page + 1)
			case "prev":
				return q.WithPage(q.Page - 1)
			default:
				n, err := strconv.Atoi(arg)
				if err != nil {
					return q
				}
				return q.WithPage(n)
			}
		})
	}
	a.refreshInventory(ctx)
	state := a.inventory.State()
	if state.Phase == catalog.PhaseFailed && errors.Is(state.Err, api.ErrUnauthorized) {
		fmt.Println("Faça login para acessar o inventário.")
		return state.Err
	}
	a.renderPage(state)
	return nil
}

// NewCar runs the create form: prompt every field, collect images, submit.
func (a *App) NewCar(ctx context.Context) error {
	form := carform.NewCreateForm(a.api, a.log, a.formHooks())
	if err := a.fillDraft(ctx, form, nil); err != nil {
		return err
	}
	if err := a.galleryLoop(form.Gallery()); err != nil {
		return err
	}
	return a.submitForm(ctx, form)
}

// EditCar fetches a vehicle and runs the edit form. Empty replies keep the
// stored value; the gallery starts from the stored images.
func (a *App) EditCar(ctx context.Context, id string) error {
	car, err := a.api.GetAdminCar(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			fmt.Println("Veículo não encontrado.")
		} else {
			fmt.Printf("error: %v\n", err)
		}
		return err
	}

	form, err := carform.NewEditForm(*car, a.api, a.log, a.formHooks())
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if err := a.fillDraft(ctx, form, car); err != nil {
		return err
	}
	if err := a.galleryLoop(form.Gallery()); err != nil {
		return err
	}
	return a.submitForm(ctx, form)
}

// DeleteCar removes a vehicle after confirmation and drops the list caches.
func (a *App) DeleteCar(ctx context.Context, id string) error {
	answer, err := GetSimpleText(a.reader, fmt.Sprintf("Delete vehicle %s? (y/N)", id), os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		fmt.Println("Cancelled")
		return nil
	}

	if err := a.api.DeleteCar(ctx, id); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			fmt.Println("Veículo não encontrado.")
		} else {
			fmt.Printf("error: %v\n", err)
		}
		return err
	}
	a.catalog.Invalidate()
	a.inventory.Invalidate()
	fmt.Println("Vehicle deleted")
	return nil
}

func (a *App) formHooks() carform.Hooks {
	return carform.Hooks{
		InvalidateLists: func() {
			a.catalog.Invalidate()
			a.inventory.Invalidate()
		},
		InvalidateCar: func(id string) {
			a.log.Debug(context.Background(), "car cache invalidated", "id", id)
		},
		Navigate: func(car *models.Car) {
			fmt.Printf("Saved: %s %s (%s)\n", car.Brand.Name, car.Model, car.ID)
		},
	}
}

// fillDraft prompts for every draft field. In edit mode (car non-nil) the
// stored values are the defaults and an empty reply keeps them.
func (a *App) fillDraft(ctx context.Context, form *carform.Form, car *models.Car) error {
	brands, err := a.api.ListAdminBrands(ctx)
	if err != nil {
		// The public directory still lets the user pick a brand.
		brands = a.brands
	}
	for _, b := range brands {
		fmt.Printf("  %s  %s\n", b.ID, b.Name)
	}

	draft := form.Draft()

	brand, err := GetTextDefault(a.reader, "Brand (id or name)", draft.BrandID, os.Stdout)
	if err != nil {
		return err
	}
	form.SetBrandID(resolveBrandID(brand, brands))

	model, err := GetTextDefault(a.reader, "Model", draft.Model, os.Stdout)
	if err != nil {
		return err
	}
	form.SetModel(model)

	yearText, err := GetTextDefault(a.reader, "Year", strconv.Itoa(draft.Year), os.Stdout)
	if err != nil {
		return err
	}
	if year, err := strconv.Atoi(yearText); err == nil {
		form.SetYear(year)
	}

	priceText, err := GetTextDefault(a.reader, "Price (whole currency units)", strconv.FormatInt(draft.Price/100, 10), os.Stdout)
	if err != nil {
		return err
	}
	if units, err := strconv.ParseInt(priceText, 10, 64); err == nil {
		form.SetPrice(units * 100)
	}

	mileageText, err := GetSimpleText(a.reader, "Mileage in km (empty to skip)", os.Stdout)
	if err != nil {
		return err
	}
	if mileageText != "" {
		if km, err := strconv.ParseInt(mileageText, 10, 64); err == nil {
			form.SetMileage(&km)
		}
	}

	description, err := GetMultiline(a.reader, "Description (empty to skip):", os.Stdout)
	if err != nil {
		return err
	}
	if description != "" {
		form.SetDescription(&description)
	}

	if car != nil {
		statusText, err := GetTextDefault(a.reader, "Status (AVAILABLE|SOLD)", string(draft.Status), os.Stdout)
		if err != nil {
			return err
		}
		form.SetStatus(models.CarStatus(strings.ToUpper(statusText)))
	}

	finText, err := GetSimpleText(a.reader, "Financeable? (y/N)", os.Stdout)
	if err != nil {
		return err
	}
	form.SetFinanceable(strings.EqualFold(finText, "y"))

	optionLines, err := GetOptions(a.reader)
	if err != nil {
		return err
	}
	for _, line := range optionLines {
		name, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		form.SetOption(strings.TrimSpace(name), strings.TrimSpace(value) == "on")
	}
	return nil
}

func resolveBrandID(input string, brands []models.Brand) string {
	for _, b := range brands {
		if b.ID == input || strings.EqualFold(b.Name, input) {
			return b.ID
		}
	}
	return input
}

// galleryLoop edits the ordered image list until the user types "done".
// Positions shown and accepted are 1-based display indexes.
func (a *App) galleryLoop(g *gallery.Model) error {
	for {
		a.printGallery(g)
		line, err := GetSimpleText(a.reader, "Images (add <path> | rm <n> | mv <from> <to> | done)", os.Stdout)
		if err != nil {
			return err
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "add":
			if len(parts) < 2 {
				fmt.Println("Usage: add <path> [path...]")
				continue
			}
			for _, path := range parts[1:] {
				g.AddFiles(gallery.NewFile(filepath.Base(path), path))
			}

		case "rm":
			if len(parts) < 2 {
				fmt.Println("Usage: rm <n>")
				continue
			}
			n, convErr := strconv.Atoi(parts[1])
			if convErr != nil {
				fmt.Println("Usage: rm <n>")
				continue
			}
			if err := g.RemoveAt(n - 1); err != nil {
				fmt.Println(err)
			}

		case "mv":
			if len(parts) < 3 {
				fmt.Println("Usage: mv <from> <to>")
				continue
			}
			from, fromErr := strconv.Atoi(parts[1])
			to, toErr := strconv.Atoi(parts[2])
			if fromErr != nil || toErr != nil {
				fmt.Println("Usage: mv <from> <to>")
				continue
			}
			if err := g.Reorder(from-1, to-1); err != nil {
				fmt.Println(err)
			}

		case "done":
			return nil

		default:
			fmt.Println("Unknown gallery command:", parts[0])
		}
	}
}

func (a *App) printGallery(g *gallery.Model) {
	items := g.Items()
	if len(items) == 0 {
		fmt.Println("(no images)")
		return
	}
	for i, it := range items {
		if it.Kind == gallery.KindExisting {
			fmt.Printf("  %d. %s\n", i+1, it.URL)
		} else {
			fmt.Printf("  %d. %s (pending upload)\n", i+1, it.File.Name)
		}
	}
}

func (a *App) submitForm(ctx context.Context, form *carform.Form) error {
	_, err := form.Submit(ctx)
	if err == nil {
		return nil
	}
	if errors.Is(err, carform.ErrValidation) {
		for _, fe := range form.FieldErrors() {
			fmt.Println(fe.Message)
		}
		return err
	}
	fmt.Println(form.ErrorMessage())
	return err
}

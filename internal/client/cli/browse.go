package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/api"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/catalog"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/models"
)

// Search feeds the text into the debouncer. The refresh fires after the quiet
// period, so rapid repeated searches collapse into one request for the final
// value.
func (a *App) Search(ctx context.Context, text string) error {
	a.search.Input(text)
	return nil
}

// List brings the catalog up to date for the applied query and renders it.
func (a *App) List(ctx context.Context) error {
	a.refreshCatalog(ctx)
	a.renderCatalog()
	return nil
}

// Page moves the page cursor: "next", "prev" or an absolute page number.
func (a *App) Page(ctx context.Context, arg string) error {
	q := a.updateQuery(func(q catalog.QueryState) catalog.QueryState {
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
	fmt.Printf("page %d\n", q.Page)
	return a.List(ctx)
}

// Show fetches and displays a single car by ID.
func (a *App) Show(ctx context.Context, id string) error {
	car, err := a.api.GetCar(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			fmt.Println("Veículo não encontrado.")
			return err
		}
		fmt.Printf("error: %v\n", err)
		return err
	}
	a.renderCar(car)
	return nil
}

// Filters drives the staged filter drawer. Without arguments it prints the
// staged and applied sets. Subcommands:
//
//	open                          snapshot applied into staged
//	brand <name|all>              stage a brand filter
//	year <yyyy|all>               stage a year filter
//	fin <yes|no|all>              stage the financeable filter
//	price <min|-> <max|->         stage a price range (whole currency units)
//	sort <newest|oldest|price_asc|price_desc>
//	apply                         commit staged atomically, refresh
//	cancel                        discard staged edits
//	clear                         reset everything to defaults
//	rm <brand|year|fin|price|sort> remove one applied chip
func (a *App) Filters(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printFilters()
		return nil
	}

	switch args[0] {
	case "open":
		a.drawer.Open()
		a.printFilters()

	case "brand":
		if len(args) < 2 {
			fmt.Println("Usage: filters brand <name|all>")
			return nil
		}
		a.drawer.Open()
		a.drawer.SetBrand(strings.Join(args[1:], " "))

	case "year":
		if len(args) < 2 {
			fmt.Println("Usage: filters year <yyyy|all>")
			return nil
		}
		a.drawer.Open()
		a.drawer.SetYear(args[1])

	case "fin":
		if len(args) < 2 {
			fmt.Println("Usage: filters fin <yes|no|all>")
			return nil
		}
		a.drawer.Open()
		switch args[1] {
		case "yes":
			a.drawer.SetFinanceable(catalog.TriYes)
		case "no":
			a.drawer.SetFinanceable(catalog.TriNo)
		default:
			a.drawer.SetFinanceable(catalog.TriAll)
		}

	case "price":
		if len(args) < 3 {
			fmt.Println("Usage: filters price <min|-> <max|->")
			return nil
		}
		min, err := parsePriceBound(args[1])
		if err != nil {
			fmt.Println(err)
			return nil
		}
		max, err := parsePriceBound(args[2])
		if err != nil {
			fmt.Println(err)
			return nil
		}
		a.drawer.Open()
		a.drawer.SetPriceRange(min, max)

	case "sort":
		if len(args) < 2 {
			fmt.Println("Usage: filters sort <newest|oldest|price_asc|price_desc>")
			return nil
		}
		order, ok := parseSort(args[1])
		if !ok {
			fmt.Println("Unknown sort order:", args[1])
			return nil
		}
		a.drawer.Open()
		a.drawer.SetSort(order)

	case "apply":
		if err := a.drawer.Apply(); err != nil {
			fmt.Println("Preço mínimo maior que o preço máximo.")
			return err
		}

	case "cancel":
		a.drawer.Cancel()

	case "clear":
		a.drawer.ClearAll()

	case "rm":
		if len(args) < 2 {
			fmt.Println("Usage: filters rm <brand|year|fin|price|sort>")
			return nil
		}
		switch args[1] {
		case "brand":
			a.drawer.RemoveChip(catalog.ChipBrand)
		case "year":
			a.drawer.RemoveChip(catalog.ChipYear)
		case "fin":
			a.drawer.RemoveChip(catalog.ChipFinanceable)
		case "price":
			a.drawer.RemoveChip(catalog.ChipPrice)
		case "sort":
			a.drawer.RemoveChip(catalog.ChipSort)
		default:
			fmt.Println("Unknown filter:", args[1])
		}

	default:
		fmt.Println("Unknown filters subcommand:", args[0])
	}
	return nil
}

func parsePriceBound(s string) (*int64, error) {
	if s == "-" {
		return nil, nil
	}
	units, err := strconv.ParseInt(s, 10, 64)
	if err != nil || units < 0 {
		return nil, fmt.Errorf("invalid price bound: %s", s)
	}
	cents := units * 100
	return &cents, nil
}

func parseSort(s string) (models.SortOrder, bool) {
	switch models.SortOrder(s) {
	case models.SortNewest, models.SortOldest, models.SortPriceAsc, models.SortPriceDesc:
		return models.SortOrder(s), true
	}
	return "", false
}

func (a *App) printFilters() {
	applied := a.drawer.Applied()
	fmt.Printf("applied: %s", describeFilters(applied))
	if n := applied.ActiveCount(); n > 0 {
		fmt.Printf(" [%d active]", n)
	}
	fmt.Println()
	if a.drawer.IsOpen() {
		fmt.Printf("staged:  %s\n", describeFilters(a.drawer.Staged()))
	}
}

func describeFilters(f catalog.Filters) string {
	var parts []string
	parts = append(parts, "brand="+f.Brand, "year="+f.Year, "fin="+string(f.Financeable))
	price := "-"
	if f.MinPrice != nil || f.MaxPrice != nil {
		lo, hi := "-", "-"
		if f.MinPrice != nil {
			lo = FormatPrice(*f.MinPrice)
		}
		if f.MaxPrice != nil {
			hi = FormatPrice(*f.MaxPrice)
		}
		price = lo + ".." + hi
	}
	parts = append(parts, "price="+price, "sort="+string(f.Sort))
	return strings.Join(parts, " ")
}

func (a *App) renderCatalog() {
	a.renderPage(a.catalog.State())
}

func (a *App) renderPage(s catalog.State) {
	switch s.Phase {
	case catalog.PhaseLoading:
		fmt.Println("Loading...")
	case catalog.PhaseFailed:
		fmt.Println("Não foi possível carregar os veículos. Tente novamente.")
	case catalog.PhaseReady:
		if s.Empty {
			fmt.Println("Nenhum veículo encontrado.")
			return
		}
		for _, car := range s.Page.Cars {
			fmt.Printf("%-12s %-24s %d  %-14s %-10s %s\n",
				car.ID, car.Brand.Name+" "+car.Model, car.Year,
				FormatPrice(car.Price), FormatMileage(car.Mileage), StatusLabel(car.Status))
		}
		fmt.Printf("page %d/%d, %d vehicles\n", s.Page.Page, s.Page.TotalPages, s.Page.Total)
	}
}

func (a *App) renderCar(car *models.Car) {
	fmt.Printf("%s %s (%d)\n", car.Brand.Name, car.Model, car.Year)
	fmt.Printf("Price: %s\n", FormatPrice(car.Price))
	fmt.Printf("Mileage: %s\n", FormatMileage(car.Mileage))
	fmt.Printf("Status: %s\n", StatusLabel(car.Status))
	if car.Financeable {
		fmt.Println("Financeable: yes")
	}
	if car.Fuel != nil {
		fmt.Printf("Fuel: %s\n", *car.Fuel)
	}
	if car.Color != nil {
		fmt.Printf("Color: %s\n", *car.Color)
	}
	if car.Transmission != nil {
		fmt.Printf("Transmission: %s\n", *car.Transmission)
	}
	if car.Description != nil {
		fmt.Println(*car.Description)
	}
	for i, url := range car.Images {
		fmt.Printf("image %d: %s\n", i+1, url)
	}
	if len(car.Images) == 0 {
		fmt.Printf("image: %s\n", CarImageURL(*car))
	}
	var enabled []string
	for name, on := range car.Options {
		if on {
			enabled = append(enabled, name)
		}
	}
	if len(enabled) > 0 {
		fmt.Printf("Options: %s\n", strings.Join(enabled, ", "))
	}
}

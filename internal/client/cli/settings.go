package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/api"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/models"
)

// Settings shows the dealership profile; "settings edit" walks through the
// update form. Empty replies keep the stored value; a logo reply is a local
// file to upload, or "-" to remove the current logo.
func (a *App) Settings(ctx context.Context, args []string) error {
	if len(args) == 0 {
		garage, err := a.api.GetSettings(ctx)
		if err != nil {
			if errors.Is(err, api.ErrUnauthorized) {
				fmt.Println("Faça login para acessar as configurações.")
			} else {
				fmt.Printf("error: %v\n", err)
			}
			return err
		}
		a.renderGarage(garage)
		return nil
	}
	if args[0] != "edit" {
		fmt.Println("Usage: settings [edit]")
		return nil
	}

	garage, err := a.api.GetSettings(ctx)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return err
	}

	data := api.UpdateSettingsData{}

	name, err := GetTextDefault(a.reader, "Name", garage.Name, os.Stdout)
	if err != nil {
		return err
	}
	if name != garage.Name {
		data.Name = &name
	}

	primary, err := GetTextDefault(a.reader, "Primary color", deref(garage.PrimaryColor), os.Stdout)
	if err != nil {
		return err
	}
	if primary != deref(garage.PrimaryColor) {
		data.PrimaryColor = &primary
	}

	secondary, err := GetTextDefault(a.reader, "Secondary color", deref(garage.SecondaryColor), os.Stdout)
	if err != nil {
		return err
	}
	if secondary != deref(garage.SecondaryColor) {
		data.SecondaryColor = &secondary
	}

	whatsapp, err := GetTextDefault(a.reader, "Whatsapp", deref(garage.Whatsapp), os.Stdout)
	if err != nil {
		return err
	}
	if whatsapp != deref(garage.Whatsapp) {
		data.Whatsapp = &whatsapp
	}

	logo, err := GetSimpleText(a.reader, "Logo file (empty keeps, '-' removes)", os.Stdout)
	if err != nil {
		return err
	}
	switch logo {
	case "":
	case "-":
		empty := ""
		data.LogoURL = &empty
	default:
		data.Logo = &api.Upload{Name: filepath.Base(logo), Path: logo}
	}

	updated, err := a.api.UpdateSettings(ctx, data)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			fmt.Println(apiErr.Message)
		} else {
			fmt.Println("Não foi possível salvar as configurações. Tente novamente.")
		}
		return err
	}
	fmt.Println("Settings saved")
	a.garage = updated
	a.renderGarage(updated)
	return nil
}

func (a *App) renderGarage(g *models.Garage) {
	fmt.Printf("%s (%s)\n", g.Name, g.Domain)
	fmt.Printf("Logo: %s\n", LogoURL(g))
	if g.PrimaryColor != nil {
		fmt.Printf("Primary color: %s\n", *g.PrimaryColor)
	}
	if g.SecondaryColor != nil {
		fmt.Printf("Secondary color: %s\n", *g.SecondaryColor)
	}
	if g.Whatsapp != nil {
		fmt.Printf("Whatsapp: %s\n", *g.Whatsapp)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

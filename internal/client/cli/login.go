package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/api"
)

// Login prompts for credentials and authenticates against the backend. On
// success the session holds the bearer token and admin commands unlock.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	user, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			fmt.Println(apiErr.Message)
		} else if errors.Is(err, api.ErrUnavailable) {
			fmt.Println("Servidor indisponível. Tente novamente.")
		} else {
			fmt.Println("Credenciais inválidas.")
		}
		return err
	}

	fmt.Printf("Logged in as %s\n", user.Name)
	return nil
}

// Logout drops the session credentials and the admin list cache.
func (a *App) Logout(ctx context.Context) error {
	a.session.Clear()
	a.inventory.Invalidate()
	fmt.Println("Logged out")
	return nil
}

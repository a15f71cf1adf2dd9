package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/models"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/session"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*HTTPClient, *session.Session) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	sess := session.New()
	return NewHTTPClient(srv.URL, sess, opts...), sess
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestListCars_ParamEncoding(t *testing.T) {
	var gotQuery url.Values
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/public/cars", r.URL.Path)
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(models.CarPage{Page: 1, Limit: 8})
	}))

	minPrice := int64(1000000)
	financeable := true
	_, err := client.ListCars(context.Background(), ListCarsParams{
		Page:        1,
		Limit:       8,
		Search:      "camry",
		BrandID:     "b1",
		OrderBy:     models.SortNewest,
		MinPrice:    &minPrice,
		Financeable: &financeable,
	})
	require.NoError(t, err)

	require.Equal(t, "camry", gotQuery.Get("search"))
	require.Equal(t, "b1", gotQuery.Get("brandId"))
	require.Equal(t, "1", gotQuery.Get("page"))
	require.Equal(t, "8", gotQuery.Get("limit"))
	require.Equal(t, "newest", gotQuery.Get("orderBy"))
	require.Equal(t, "1000000", gotQuery.Get("minPrice"))
	require.Equal(t, "true", gotQuery.Get("financeable"))

	// no-filter fields stay out of the query string
	require.False(t, gotQuery.Has("year"))
	require.False(t, gotQuery.Has("maxPrice"))
}

func TestGetCar_NotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"car not found"}`, http.StatusNotFound)
	}))

	_, err := client.GetCar(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLogin_StoresCredentials(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "admin@garage.dev", body["email"])
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-123",
			"user":  models.User{ID: "u1", Email: "admin@garage.dev"},
		})
	}))

	user, err := client.Login(context.Background(), "admin@garage.dev", "s3cret")
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
	require.Equal(t, "tok-123", sess.Token())
}

func TestLogin_ServerMessageVerbatim(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Invalid credentials"}`))
	}))

	_, err := client.Login(context.Background(), "x@y.z", "bad")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestAdminRequest_WithoutToken(t *testing.T) {
	hit := false
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
	}))

	_, err := client.ListAdminCars(context.Background(), ListCarsParams{})
	require.ErrorIs(t, err, ErrUnauthorized)
	require.False(t, hit, "request must not reach the network without a token")
}

func TestAdminRequest_401ClearsSession(t *testing.T) {
	hookFired := false
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer stale-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
	}), WithUnauthorizedHook(func() { hookFired = true }))

	sess.SetCredentials("stale-token", models.User{})
	_, err := client.GetAdminCar(context.Background(), "c1")
	require.ErrorIs(t, err, ErrUnauthorized)
	require.False(t, sess.Authenticated())
	require.True(t, hookFired)
}

func TestCreateCar_MultipartPayload(t *testing.T) {
	imgPath := writeTempFile(t, "front.jpg", "jpeg-bytes")

	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/admin/cars", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		require.Equal(t, "b1", r.FormValue("brandId"))
		require.Equal(t, "Camry", r.FormValue("model"))
		require.Equal(t, "2022", r.FormValue("year"))
		require.Equal(t, "9800000", r.FormValue("price"))
		require.Equal(t, "true", r.FormValue("financeable"))
		require.JSONEq(t, `{"ar condicionado":true}`, r.FormValue("options"))
		require.Empty(t, r.FormValue("status"), "create must not send status")
		require.Empty(t, r.FormValue("imagesToKeep"))

		files := r.MultipartForm.File["images"]
		require.Len(t, files, 1)
		require.Equal(t, "front.jpg", files[0].Filename)

		_ = json.NewEncoder(w).Encode(models.Car{ID: "c9"})
	}))
	sess.SetCredentials("tok", models.User{})

	financeable := true
	car, err := client.CreateCar(context.Background(), CreateCarData{
		BrandID:     "b1",
		Model:       "Camry",
		Year:        2022,
		Price:       9800000,
		Financeable: &financeable,
		Options:     map[string]bool{"ar condicionado": true},
		Images:      []Upload{{Name: "front.jpg", Path: imgPath}},
	})
	require.NoError(t, err)
	require.Equal(t, "c9", car.ID)
}

func TestUpdateCar_SendsOrderedImagesToKeep(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/admin/cars/c1", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		require.Equal(t, "SOLD", r.FormValue("status"))

		var keep []string
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("imagesToKeep")), &keep))
		require.Equal(t, []string{"u1", "u3"}, keep)

		_ = json.NewEncoder(w).Encode(models.Car{ID: "c1"})
	}))
	sess.SetCredentials("tok", models.User{})

	_, err := client.UpdateCar(context.Background(), "c1", UpdateCarData{
		BrandID:      "b1",
		Model:        "Camry",
		Year:         2022,
		Price:        9800000,
		Status:       models.CarStatusSold,
		ImagesToKeep: []string{"u1", "u3"},
	})
	require.NoError(t, err)
}

func TestUpdateCar_NilImagesToKeepOmitsField(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, present := r.MultipartForm.Value["imagesToKeep"]
		require.False(t, present)
		_ = json.NewEncoder(w).Encode(models.Car{ID: "c1"})
	}))
	sess.SetCredentials("tok", models.User{})

	_, err := client.UpdateCar(context.Background(), "c1", UpdateCarData{
		BrandID: "b1", Model: "Camry", Year: 2022, Price: 1,
	})
	require.NoError(t, err)
}

func TestDeleteCar(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/admin/cars/c1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	sess.SetCredentials("tok", models.User{})

	require.NoError(t, client.DeleteCar(context.Background(), "c1"))
}

func TestUpdateSettings_LogoUpload(t *testing.T) {
	logoPath := writeTempFile(t, "logo.png", "png-bytes")

	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "Garagem Central", r.FormValue("name"))
		files := r.MultipartForm.File["logo"]
		require.Len(t, files, 1)
		_, present := r.MultipartForm.Value["logoUrl"]
		require.False(t, present, "logoUrl must be omitted when a file is uploaded")
		_ = json.NewEncoder(w).Encode(models.Garage{ID: "g1"})
	}))
	sess.SetCredentials("tok", models.User{})

	name := "Garagem Central"
	logoURL := "should-not-be-sent"
	_, err := client.UpdateSettings(context.Background(), UpdateSettingsData{
		Name:    &name,
		Logo:    &Upload{Name: "logo.png", Path: logoPath},
		LogoURL: &logoURL,
	})
	require.NoError(t, err)
}

func TestRequest_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewHTTPClient(srv.URL, session.New())
	_, err := client.ListBrands(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	require.False(t, errors.Is(err, ErrUnauthorized))
}

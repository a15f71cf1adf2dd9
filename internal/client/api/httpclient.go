package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/models"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/client/session"
)

// HTTPClient implements Client against the REST backend. Admin requests carry
// the session's bearer token; any 401 clears the session and invokes the
// configured unauthorized hook before ErrUnauthorized is returned.
type HTTPClient struct {
	baseURL        string
	http           *http.Client
	session        *session.Session
	onUnauthorized func()
}

type Option func(*HTTPClient)

// WithTimeout sets the underlying http.Client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

// WithUnauthorizedHook registers a callback fired whenever the backend
// answers 401. The session is already cleared when the hook runs.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *HTTPClient) { c.onUnauthorized = fn }
}

func NewHTTPClient(baseURL string, sess *session.Session, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		session: sess,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Client = (*HTTPClient)(nil)

func (c *HTTPClient) GetGarage(ctx context.Context) (*models.Garage, error) {
	var g models.Garage
	if err := c.getJSON(ctx, "/public/garage-by-domain", false, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *HTTPClient) ListCars(ctx context.Context, params ListCarsParams) (*models.CarPage, error) {
	return c.listCars(ctx, "/public/cars", false, params)
}

func (c *HTTPClient) GetCar(ctx context.Context, id string) (*models.Car, error) {
	var car models.Car
	if err := c.getJSON(ctx, "/public/cars/"+id, false, &car); err != nil {
		return nil, err
	}
	return &car, nil
}

func (c *HTTPClient) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := c.getJSON(ctx, "/public/brands", false, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.User, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	if err := c.send(req, false, &out); err != nil {
		return nil, err
	}

	c.session.SetCredentials(out.Token, out.User)
	return &out.User, nil
}

func (c *HTTPClient) ListAdminCars(ctx context.Context, params ListCarsParams) (*models.CarPage, error) {
	return c.listCars(ctx, "/admin/cars", true, params)
}

func (c *HTTPClient) GetAdminCar(ctx context.Context, id string) (*models.Car, error) {
	var car models.Car
	if err := c.getJSON(ctx, "/admin/cars/"+id, true, &car); err != nil {
		return nil, err
	}
	return &car, nil
}

func (c *HTTPClient) CreateCar(ctx context.Context, data CreateCarData) (*models.Car, error) {
	body, contentType, err := encodeCarForm(carFormFields{
		BrandID:      data.BrandID,
		Model:        data.Model,
		Year:         data.Year,
		Price:        data.Price,
		Mileage:      data.Mileage,
		Description:  data.Description,
		Fuel:         data.Fuel,
		Color:        data.Color,
		Transmission: data.Transmission,
		LicensePlate: data.LicensePlate,
		Financeable:  data.Financeable,
		Options:      data.Options,
		Images:       data.Images,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/admin/cars", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	var car models.Car
	if err := c.send(req, true, &car); err != nil {
		return nil, err
	}
	return &car, nil
}

func (c *HTTPClient) UpdateCar(ctx context.Context, id string, data UpdateCarData) (*models.Car, error) {
	body, contentType, err := encodeCarForm(carFormFields{
		BrandID:      data.BrandID,
		Model:        data.Model,
		Year:         data.Year,
		Price:        data.Price,
		Mileage:      data.Mileage,
		Description:  data.Description,
		Status:       data.Status,
		Fuel:         data.Fuel,
		Color:        data.Color,
		Transmission: data.Transmission,
		LicensePlate: data.LicensePlate,
		Financeable:  data.Financeable,
		Options:      data.Options,
		Images:       data.Images,
		ImagesToKeep: data.ImagesToKeep,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/admin/cars/"+id, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	var car models.Car
	if err := c.send(req, true, &car); err != nil {
		return nil, err
	}
	return &car, nil
}

func (c *HTTPClient) DeleteCar(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/admin/cars/"+id, nil)
	if err != nil {
		return err
	}
	return c.send(req, true, nil)
}

func (c *HTTPClient) ListAdminBrands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := c.getJSON(ctx, "/admin/brands", true, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

func (c *HTTPClient) GetSettings(ctx context.Context) (*models.Garage, error) {
	var g models.Garage
	if err := c.getJSON(ctx, "/admin/settings", true, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *HTTPClient) UpdateSettings(ctx context.Context, data UpdateSettingsData) (*models.Garage, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if data.Name != nil {
		if err := w.WriteField("name", *data.Name); err != nil {
			return nil, err
		}
	}
	if data.PrimaryColor != nil {
		if err := w.WriteField("primaryColor", *data.PrimaryColor); err != nil {
			return nil, err
		}
	}
	if data.SecondaryColor != nil {
		if err := w.WriteField("secondaryColor", *data.SecondaryColor); err != nil {
			return nil, err
		}
	}
	if data.Whatsapp != nil {
		if err := w.WriteField("whatsapp", *data.Whatsapp); err != nil {
			return nil, err
		}
	}
	if data.Active != nil {
		if err := w.WriteField("active", strconv.FormatBool(*data.Active)); err != nil {
			return nil, err
		}
	}
	if data.Logo != nil {
		if err := writeUpload(w, "logo", *data.Logo); err != nil {
			return nil, err
		}
	} else if data.LogoURL != nil {
		if err := w.WriteField("logoUrl", *data.LogoURL); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/admin/settings", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var g models.Garage
	if err := c.send(req, true, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *HTTPClient) listCars(ctx context.Context, path string, authed bool, params ListCarsParams) (*models.CarPage, error) {
	endpoint := path
	if qs := params.Values().Encode(); qs != "" {
		endpoint += "?" + qs
	}
	var page models.CarPage
	if err := c.getJSON(ctx, endpoint, authed, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, endpoint string, authed bool, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.send(req, authed, out)
}

// send executes the request, applies the shared status-code policy and
// decodes the JSON response into out (skipped when out is nil).
func (c *HTTPClient) send(req *http.Request, authed bool, out any) error {
	if authed {
		token := c.session.Token()
		if token == "" {
			return ErrUnauthorized
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.session.Clear()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Error != "" {
			apiErr.Message = body.Error
		} else {
			apiErr.Message = body.Message
		}
	}
	return apiErr
}

// carFormFields is the union of create and update multipart fields. Status
// and ImagesToKeep are only ever set on update.
type carFormFields struct {
	BrandID      string
	Model        string
	Year         int
	Price        int64
	Mileage      *int64
	Description  *string
	Status       models.CarStatus
	Fuel         *string
	Color        *string
	Transmission *string
	LicensePlate *string
	Financeable  *bool
	Options      map[string]bool
	Images       []Upload
	ImagesToKeep []string
}

// encodeCarForm builds the multipart body the backend expects: scalar fields
// by name, options and imagesToKeep as JSON-encoded strings, every new image
// in an "images" part.
func encodeCarForm(f carFormFields) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"brandId": f.BrandID,
		"model":   f.Model,
		"year":    strconv.Itoa(f.Year),
		"price":   strconv.FormatInt(f.Price, 10),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	if f.Mileage != nil {
		if err := w.WriteField("mileage", strconv.FormatInt(*f.Mileage, 10)); err != nil {
			return nil, "", err
		}
	}
	if f.Description != nil {
		if err := w.WriteField("description", *f.Description); err != nil {
			return nil, "", err
		}
	}
	if f.Status != "" {
		if err := w.WriteField("status", string(f.Status)); err != nil {
			return nil, "", err
		}
	}
	for name, value := range map[string]*string{
		"fuel":         f.Fuel,
		"color":        f.Color,
		"transmission": f.Transmission,
		"licensePlate": f.LicensePlate,
	} {
		if value == nil {
			continue
		}
		if err := w.WriteField(name, *value); err != nil {
			return nil, "", err
		}
	}
	if f.Financeable != nil {
		if err := w.WriteField("financeable", strconv.FormatBool(*f.Financeable)); err != nil {
			return nil, "", err
		}
	}
	if f.Options != nil {
		encoded, err := json.Marshal(f.Options)
		if err != nil {
			return nil, "", err
		}
		if err := w.WriteField("options", string(encoded)); err != nil {
			return nil, "", err
		}
	}
	if f.ImagesToKeep != nil {
		encoded, err := json.Marshal(f.ImagesToKeep)
		if err != nil {
			return nil, "", err
		}
		if err := w.WriteField("imagesToKeep", string(encoded)); err != nil {
			return nil, "", err
		}
	}

	for _, img := range f.Images {
		if err := writeUpload(w, "images", img); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func writeUpload(w *multipart.Writer, field string, u Upload) error {
	file, err := os.Open(u.Path)
	if err != nil {
		return fmt.Errorf("opening upload %s: %w", u.Name, err)
	}
	defer file.Close()

	part, err := w.CreateFormFile(field, u.Name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("reading upload %s: %w", u.Name, err)
	}
	return nil
}

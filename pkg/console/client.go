// Package console es el cliente tipado de la consola administrativa. Cada
// página de la consola es una instancia del mismo contrato: cargar en
// paralelo la colección primaria y las auxiliares, filtrar con búsqueda por
// substring, resolver referencias contra las colecciones hermanas y, tras
// cada mutación, recargar la colección completa en lugar de parchar el
// estado local ("reload-after-mutate").
package console

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrCancelled lo devuelve Delete cuando el usuario no confirma el aviso.
var ErrCancelled = errors.New("console: operación cancelada por el usuario")

// APIError error remoto con el código estable y el mensaje que el API
// devuelve en el cuerpo {code, message}.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("console: %s (%d): %s", e.Code, e.Status, e.Message)
}

// IsNotFound informa si err es un 404 del API. Las colecciones vacías no
// pasan por aquí: un listado sin resultados es un slice vacío, no un error.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client cliente HTTP de la consola contra el API administrativo.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client

	// Confirm se consulta antes de cada borrado; devuelve false para
	// cancelar. Por defecto confirma siempre (la consola gráfica lo
	// reemplaza por su diálogo bloqueante).
	Confirm func(prompt string) bool
}

// Option ajusta el cliente al construirlo.
type Option func(*Client)

// WithTimeout fija el timeout de cada petición.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

// WithHTTPClient reemplaza el *http.Client subyacente.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithToken fija el token Bearer; útil cuando ya se tiene una sesión.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New construye un cliente para baseURL (por ejemplo "http://localhost:3000").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
		Confirm: func(string) bool { return true },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login autentica contra el API y guarda el token para las peticiones
// siguientes.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	var out struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &out); err != nil {
		return User{}, err
	}
	c.token = out.Token
	return out.User, nil
}

// do ejecuta una petición JSON y decodifica la respuesta en out (si no es
// nil). Las respuestas no 2xx se traducen a *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("console: codificar body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("console: armar petición: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("console: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Code: "UNKNOWN"}
		var wire struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&wire); decodeErr == nil && wire.Code != "" {
			apiErr.Code = wire.Code
			apiErr.Message = wire.Message
		}
		return apiErr
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("console: decodificar respuesta de %s: %w", path, err)
	}
	return nil
}

// LoadAll carga en paralelo la colección primaria y las auxiliares de una
// página (por ejemplo estanterías + bodegas). El primer error aborta las
// cargas restantes.
func LoadAll(ctx context.Context, loaders ...func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, load := range loaders {
		load := load
		g.Go(func() error { return load(gctx) })
	}
	return g.Wait()
}

package api

import (
	"context"
	"encoding/json"
	"net/http"

	"saborify/models"
)

// --- Users ---

func (c *Client) CurrentUser(ctx context.Context) (models.User, error) {
	var raw json.RawMessage
	err := c.do(ctx, call{method: http.MethodGet, path: "/user", auth: true, op: "Error al obtener el usuario"}, &raw)
	if err != nil {
		return models.User{}, err
	}
	u, _, err := decodeOne[models.User](raw)
	return u, err
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var raw json.RawMessage
	if err := c.do(ctx, call{method: http.MethodGet, path: "/usuarios", op: "Error al obtener los usuarios"}, &raw); err != nil {
		return nil, err
	}
	return decodeList[models.User](raw)
}

func (c *Client) UpdateUser(ctx context.Context, upd models.UserUpdate) (models.UserUpdateResponse, error) {
	var out models.UserUpdateResponse
	err := c.do(ctx, call{method: http.MethodPut, path: "/actualizar", body: upd, auth: true, op: "Error al actualizar el usuario"}, &out)
	return out, err
}

// --- Auth ---

func (c *Client) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.do(ctx, call{method: http.MethodPost, path: "/login", body: creds, op: "Error al iniciar sesión"}, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, reg models.Registration) (models.AuthResponse, error) {
	if reg.Role == "" {
		reg.Role = models.RoleUser
	}
	var out models.AuthResponse
	err := c.do(ctx, call{method: http.MethodPost, path: "/registro", body: reg, op: "Error al registrar el usuario"}, &out)
	return out, err
}

// RegisterWithGoogle trades an identity provider credential for a backend
// session in one round trip.
func (c *Client) RegisterWithGoogle(ctx context.Context, cred models.GoogleCredential) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.do(ctx, call{method: http.MethodPost, path: "/googleRegister", body: cred, op: "Error al registrar con Google"}, &out)
	return out, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, call{method: http.MethodPost, path: "/logout", auth: true, op: "Error al cerrar sesión"}, nil)
}

// CreateToken asks the backend for a fresh personal access token.
func (c *Client) CreateToken(ctx context.Context) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, call{method: http.MethodGet, path: "/profile/crearToken", auth: true, op: "Error al crear el token"}, &out)
	return NormalizeToken(out.Token), err
}

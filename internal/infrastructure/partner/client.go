// Package partner es el cliente HTTP de la aplicación asociada que guarda la
// configuración del sidebar.
package partner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/tenant-admin/internal/application/ports"
	"github.com/jhoicas/tenant-admin/internal/domain"
)

// Verificar en tiempo de compilación que Client implementa SidebarPartner.
var _ ports.SidebarPartner = (*Client)(nil)

const (
	sidebarConfigPath = "/api/admin/sidebar-config"
	maxBodyBytes      = 1 << 20

	msgFetchFailed  = "Failed to fetch sidebar config"
	msgUpdateFailed = "Failed to update sidebar config"
)

// Client adaptador REST del partner. Usa net/http; no hay SDK para esta API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente. baseURL sin barra final.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetSidebarConfig lee la configuración compartida. authHeader se reenvía solo si es Bearer.
func (c *Client) GetSidebarConfig(ctx context.Context, authHeader string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+sidebarConfigPath, nil)
	if err != nil {
		return nil, fmt.Errorf("partner: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if isBearer(authHeader) {
		req.Header.Set("Authorization", authHeader)
	}
	return c.do(req, msgFetchFailed)
}

// PostSidebarConfig escribe la configuración y devuelve la respuesta del partner tal cual.
func (c *Client) PostSidebarConfig(ctx context.Context, authHeader string, body map[string]any) (map[string]any, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("partner: serializar request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sidebarConfigPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("partner: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if isBearer(authHeader) {
		req.Header.Set("Authorization", authHeader)
	}
	return c.do(req, msgUpdateFailed)
}

func (c *Client) do(req *http.Request, failure string) (map[string]any, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, &domain.UpstreamError{Message: failure, Detail: "timeout o cancelación: " + ctxErr.Error()}
		}
		return nil, &domain.UpstreamError{Message: failure, Detail: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.UpstreamError{Message: failure, Detail: "leer respuesta: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamError{Message: failure, Detail: errorDetail(resp, raw)}
	}

	var out map[string]any
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &domain.UpstreamError{Message: failure, Detail: "respuesta no es un objeto JSON: " + err.Error()}
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// errorDetail usa el campo error del cuerpo si existe; si no, el estado HTTP.
func errorDetail(resp *http.Response, raw []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return fmt.Sprintf("HTTP %d: %s", resp.StatusCode, body.Error)
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", resp.StatusCode, text)
}

func isBearer(h string) bool {
	parts := strings.SplitN(h, " ", 2)
	return len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && strings.TrimSpace(parts[1]) != ""
}

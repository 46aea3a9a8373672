package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/org-chart-api/internal/domain"
)

const maxPayloadSize = 32 << 20

// HTTPSource загружает выборку с удалённого сервиса по токену доступа
type HTTPSource struct {
	client  *http.Client
	baseURL string
}

// NewHTTPSource создаёт источник для удалённого сервиса
func NewHTTPSource(client *http.Client, baseURL string) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{client: client, baseURL: baseURL}
}

// upstreamPayload - ответ сервиса; при ошибке вместо data приходит message
type upstreamPayload struct {
	domain.Snapshot
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (p upstreamPayload) reason() string {
	if p.Message != "" {
		return p.Message
	}
	return p.Error
}

func (s *HTTPSource) Fetch(ctx context.Context, token string) (*domain.Snapshot, error) {
	if token == "" {
		return nil, domain.ErrTokenRequired
	}

	endpoint, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid upstream url: %v", domain.ErrUpstream, err)
	}
	query := endpoint.Query()
	query.Set("token", token)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrUpstream, err)
	}

	var payload upstreamPayload
	decodeErr := json.Unmarshal(body, &payload)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp.StatusCode, payload.reason())
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamPayload, decodeErr)
	}
	if payload.Departments == nil && payload.reason() != "" {
		return nil, statusError(resp.StatusCode, payload.reason())
	}

	return &payload.Snapshot, nil
}

// ClassifyMessage сопоставляет текст ошибки сервиса с ошибкой токена
func ClassifyMessage(message string) error {
	switch strings.ToLower(strings.TrimSpace(message)) {
	case "jwt expired":
		return domain.ErrTokenExpired
	case "invalid token", "invalid signature":
		return domain.ErrTokenInvalid
	case "jwt malformed":
		return domain.ErrTokenMalformed
	}
	return nil
}

func statusError(status int, message string) error {
	if err := ClassifyMessage(message); err != nil {
		return err
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return fmt.Errorf("%w: %s", domain.ErrTokenInvalid, message)
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return fmt.Errorf("%w: status %d: %s", domain.ErrUpstream, status, message)
}

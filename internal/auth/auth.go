package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"eventRegistry/internal/storage/supabase"
)

var ErrNoUser = errors.New("no user returned from auth service")

// Identity is what the auth service vouches for after a password sign-in.
type Identity struct {
	UserID      string
	Email       string
	AccessToken string
}

// Client signs users in against the hosted auth API (GoTrue dialect).
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/") + "/auth/v1",
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: httpClient,
	}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	AccessToken string `json:"access_token"`
	User        *struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// SignIn verifies credentials with the auth service. Rejections come back
// as *storage.ServiceError carrying the service's message.
func (c *Client) SignIn(ctx context.Context, email, password string) (Identity, error) {
	const op = "auth.SignIn"

	body, err := json.Marshal(signInRequest{Email: strings.TrimSpace(email), Password: password})
	if err != nil {
		return Identity{}, fmt.Errorf("%s: encode request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token?grant_type=password", bytes.NewReader(body))
	if err != nil {
		return Identity{}, fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("%s: send request: %w", op, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return Identity{}, fmt.Errorf("%s: read response: %w", op, err)
	}

	if resp.StatusCode != http.StatusOK {
		return Identity{}, fmt.Errorf("%s: %w", op, supabase.MapError(resp.StatusCode, payload))
	}

	var parsed signInResponse
	if err = json.Unmarshal(payload, &parsed); err != nil {
		return Identity{}, fmt.Errorf("%s: decode response: %w", op, err)
	}
	if parsed.User == nil || parsed.User.ID == "" {
		return Identity{}, fmt.Errorf("%s: %w", op, ErrNoUser)
	}

	return Identity{
		UserID:      parsed.User.ID,
		Email:       parsed.User.Email,
		AccessToken: parsed.AccessToken,
	}, nil
}

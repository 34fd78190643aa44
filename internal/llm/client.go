package llm

import (
	"context"
	"errors"
)

var (
	ErrAuthFailed       = errors.New("authentication failed")
	ErrRequestFailed    = errors.New("request failed")
	ErrNotAuthenticated = errors.New("access token is missing, authenticate first")
	ErrEmptyResponse    = errors.New("empty response")
	ErrRateLimit        = errors.New("rate limit exceeded")
)

// Client - авторизуемся один раз, дальше шлём промпты, пока токен выставлен.
type Client interface {
	Authenticate(ctx context.Context) error
	SendPrompt(ctx context.Context, prompt string) (string, error)
}

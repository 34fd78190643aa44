package mock

import (
	"context"
	"time"

	"github.com/kitbuilder587/chatgpt-plugin/internal/llm"
)

type Client struct {
	Token     string
	Response  string
	AuthError error
	Error     error
	Delay     time.Duration

	AuthCount   int
	CallCount   int
	LastPrompt  string
	AllPrompts  []string
	accessToken string
}

func New() *Client {
	return &Client{
		Token:    "mock-token",
		Response: `{"text":"This is a mock response"}`,
	}
}

func (c *Client) WithResponse(response string) *Client {
	c.Response = response
	return c
}

func (c *Client) WithError(err error) *Client {
	c.Error = err
	return c
}

func (c *Client) WithAuthError(err error) *Client {
	c.AuthError = err
	return c
}

func (c *Client) WithDelay(delay time.Duration) *Client {
	c.Delay = delay
	return c
}

func (c *Client) Authenticate(ctx context.Context) error {
	c.AuthCount++
	if c.AuthError != nil {
		return c.AuthError
	}
	c.accessToken = c.Token
	return nil
}

func (c *Client) SendPrompt(ctx context.Context, prompt string) (string, error) {
	if c.accessToken == "" {
		return "", llm.ErrNotAuthenticated
	}

	c.CallCount++
	c.LastPrompt = prompt
	c.AllPrompts = append(c.AllPrompts, prompt)

	if c.Delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.Delay):
		}
	}

	if c.Error != nil {
		return "", c.Error
	}

	return c.Response, nil
}

func (c *Client) Reset() {
	c.AuthCount = 0
	c.CallCount = 0
	c.LastPrompt = ""
	c.AllPrompts = nil
	c.accessToken = ""
}

var _ llm.Client = (*Client)(nil)

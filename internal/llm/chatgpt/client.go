package chatgpt

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/chatgpt-plugin/internal/llm"
)

const (
	DefaultTokenURL = "https://api.cognitive.microsoft.com/sts/v1.0/issueToken"
	DefaultEngine   = "davinci"

	subscriptionKeyHeader = "Ocp-Apim-Subscription-Key"
)

type Config struct {
	APIKey   string
	Endpoint string
	TokenURL string
	Engine   string
	// AuthMethod - метод запроса за токеном, по умолчанию GET
	AuthMethod string
	// Timeout 0 - без таймаута
	Timeout time.Duration
	// CheckStatus включает проверку HTTP статуса. По умолчанию любой
	// завершившийся обмен считается успешным, даже 401/500.
	CheckStatus bool
}

type Client struct {
	apiKey      string
	endpoint    string
	tokenURL    string
	engine      string
	authMethod  string
	checkStatus bool
	client      *http.Client
	logger      *zap.Logger

	mu          sync.RWMutex
	accessToken string
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.Engine == "" {
		cfg.Engine = DefaultEngine
	}
	if cfg.AuthMethod == "" {
		cfg.AuthMethod = http.MethodGet
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		apiKey:      cfg.APIKey,
		endpoint:    strings.TrimRight(cfg.Endpoint, "/"),
		tokenURL:    cfg.TokenURL,
		engine:      cfg.Engine,
		authMethod:  strings.ToUpper(cfg.AuthMethod),
		checkStatus: cfg.CheckStatus,
		client:      &http.Client{Timeout: cfg.Timeout},
		logger:      logger,
	}
}

// Authenticate обменивает API ключ на токен. Тело ответа целиком
// становится токеном, повторный вызов перезаписывает его.
func (c *Client) Authenticate(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, c.authMethod, c.tokenURL, nil)
	if err != nil {
		c.logger.Error("authentication failed", zap.Error(err))
		return fmt.Errorf("%w: create auth request: %w", llm.ErrAuthFailed, err)
	}
	httpReq.Header.Set(subscriptionKeyHeader, c.apiKey)

	body, statusCode, err := llm.DoRequest(c.client, httpReq)
	if err != nil {
		c.logger.Error("authentication failed", zap.Error(err))
		return fmt.Errorf("%w: %w", llm.ErrAuthFailed, err)
	}

	if c.checkStatus && !llm.IsSuccess(statusCode) {
		c.logger.Error("authentication rejected",
			zap.Int("status", statusCode),
			zap.String("body", string(body)),
		)
		return fmt.Errorf("%w: status %d", llm.ErrAuthFailed, statusCode)
	}

	c.mu.Lock()
	c.accessToken = string(body)
	c.mu.Unlock()

	c.logger.Debug("access token obtained",
		zap.Int("status", statusCode),
		zap.Int("token_len", len(body)),
	)

	return nil
}

// SendPrompt отправляет промпт и возвращает сырое тело ответа без разбора.
func (c *Client) SendPrompt(ctx context.Context, prompt string) (string, error) {
	token := c.AccessToken()
	if token == "" {
		c.logger.Error("access token is missing, authenticate first")
		return "", llm.ErrNotAuthenticated
	}

	body, err := llm.NewPromptRequest(prompt).Marshal()
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.CompletionsURL(), bytes.NewReader(body))
	if err != nil {
		c.logger.Error("prompt request failed", zap.Error(err))
		return "", fmt.Errorf("%w: create request: %w", llm.ErrRequestFailed, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	respBody, statusCode, err := llm.DoRequest(c.client, httpReq)
	if err != nil {
		c.logger.Error("prompt request failed", zap.Error(err))
		return "", err
	}

	if c.checkStatus && !llm.IsSuccess(statusCode) {
		return "", llm.HandleHTTPError(statusCode, respBody, c.logger, "chatgpt")
	}

	return string(respBody), nil
}

func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *Client) CompletionsURL() string {
	return c.endpoint + "/v1/engines/" + c.engine + "/completions"
}

var _ llm.Client = (*Client)(nil)

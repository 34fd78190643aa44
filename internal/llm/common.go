package llm

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

type PromptRequest struct {
	Prompt string `json:"prompt"`
}

func NewPromptRequest(prompt string) PromptRequest {
	return PromptRequest{Prompt: prompt}
}

func (r PromptRequest) Marshal() ([]byte, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	return body, nil
}

func HandleHTTPError(statusCode int, body []byte, logger *zap.Logger, provider string) error {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuthFailed
	case http.StatusTooManyRequests:
		return ErrRateLimit
	default:
		logger.Error(provider+" request failed",
			zap.Int("status", statusCode),
			zap.String("body", string(body)),
		)
		return fmt.Errorf("%w: status %d", ErrRequestFailed, statusCode)
	}
}

// IsSuccess - 2xx
func IsSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// DoRequest выполняет запрос и складывает тело ответа в ResponseBuffer.
// Тело закрывается на любом пути; обрыв передачи считается ошибкой транспорта.
func DoRequest(client *http.Client, req *http.Request) ([]byte, int, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	var buf ResponseBuffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read response: %w", ErrRequestFailed, err)
	}

	return buf.Bytes(), resp.StatusCode, nil
}

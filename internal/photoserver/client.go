package photoserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mmcdole/albumview/internal/domain"
)

// maxMessageLen bounds how much of an error body is carried into a message
const maxMessageLen = 512

// Getter is the HTTP capability the fetcher depends on
type Getter interface {
	// Get performs one GET request and returns the response body.
	// Failures are *domain.EnvironmentError or *domain.ApplicationError.
	Get(ctx context.Context, url string) ([]byte, error)
}

// Client implements Getter over net/http.
// It makes a single attempt per call and sets no timeout of its own.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client. A nil httpClient uses a plain http.Client.
func NewClient(httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: httpClient,
		logger:     logger,
	}
}

// Get performs one GET request
func (c *Client) Get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &domain.EnvironmentError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("photos request", "method", http.MethodGet, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("photos request failed", "url", reqURL, "error", err)
		return nil, &domain.EnvironmentError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.EnvironmentError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("photos request error", "status", resp.StatusCode, "url", reqURL)
		return nil, &domain.ApplicationError{
			Status:  resp.StatusCode,
			Message: errorMessage(resp.StatusCode, body),
		}
	}

	return body, nil
}

// errorBody is the shape the photos backend uses for JSON error responses
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// errorMessage extracts the server's explanation of a failure status.
// Preference order: JSON message, JSON error, body text, standard status text.
func errorMessage(status int, body []byte) string {
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil {
		if eb.Message != "" {
			return eb.Message
		}
		if eb.Error != "" {
			return eb.Error
		}
	}

	text := strings.TrimSpace(string(body))
	if text != "" && !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "<") {
		if len(text) > maxMessageLen {
			text = text[:maxMessageLen]
		}
		return text
	}

	if st := http.StatusText(status); st != "" {
		return st
	}
	return fmt.Sprintf("status %d", status)
}

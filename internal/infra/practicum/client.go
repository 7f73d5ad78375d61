// internal/infra/practicum/client.go
package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// FetchError is returned when the API could not be reached or answered with a non-200 status.
type FetchError struct {
	StatusCode int // zero for transport failures
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("homework API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("homework API request failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// DecodeError is returned when the response body is not valid JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode homework API response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Client queries the homework statuses endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	logger     *logrus.Entry
}

func NewClient(endpoint, token string, timeout time.Duration, logger *logrus.Entry) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		token:      token,
		logger:     logger,
	}
}

// GetStatuses requests homework statuses changed since fromDate (Unix seconds)
// and returns the decoded JSON body without interpreting it.
func (c *Client) GetStatuses(ctx context.Context, fromDate int64) (interface{}, error) {
	reqLogger := c.logger.WithField("from_date", fromDate)

	u, err := url.Parse(c.endpoint)
	if err != nil {
		reqLogger.WithError(err).Error("Invalid homework API endpoint")
		return nil, &FetchError{Err: err}
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(fromDate, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		reqLogger.WithError(err).Error("Failed to build homework API request")
		return nil, &FetchError{Err: err}
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		reqLogger.WithError(err).Error("Homework API request failed")
		return nil, &FetchError{Err: err}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			reqLogger.WithError(closeErr).Warn("Failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		reqLogger.WithField("status_code", resp.StatusCode).Error("Homework API returned unexpected status")
		return nil, &FetchError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		reqLogger.WithError(err).Error("Failed to read homework API response")
		return nil, &FetchError{Err: err}
	}

	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		reqLogger.WithError(err).Error("Failed to decode homework API response")
		return nil, &DecodeError{Err: err}
	}

	reqLogger.Debug("Homework API response received")
	return decoded, nil
}

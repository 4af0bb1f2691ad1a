package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matthieukhl/expotrack/internal/config"
)

// ErrNotConfigured means no credentials were found for the spreadsheet service
var ErrNotConfigured = errors.New("spreadsheet credentials not configured")

// Client reads cell values from the Google Sheets v4 API
type Client struct {
	baseURL       string
	spreadsheetID string
	apiKey        string
	accessToken   string
	client        *http.Client
}

type valuesResponse struct {
	Range          string  `json:"range"`
	MajorDimension string  `json:"majorDimension"`
	Values         [][]any `json:"values"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// NewClient builds a client from configuration. It returns ErrNotConfigured
// when neither an API key nor an access token is available.
func NewClient(cfg *config.SheetsConfig) (*Client, error) {
	apiKey := config.ResolveSecret(cfg.APIKey, cfg.APIKeyEnv)
	accessToken := config.ResolveSecret(cfg.AccessToken, cfg.AccessTokenEnv)

	if apiKey == "" && accessToken == "" {
		return nil, ErrNotConfigured
	}
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("%w: spreadsheet id is empty", ErrNotConfigured)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://sheets.googleapis.com"
	}

	return &Client{
		baseURL:       baseURL,
		spreadsheetID: cfg.SpreadsheetID,
		apiKey:        apiKey,
		accessToken:   accessToken,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Values returns every populated row of the named sheet
func (c *Client) Values(ctx context.Context, sheet string) ([][]any, error) {
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s",
		c.baseURL, url.PathEscape(c.spreadsheetID), url.PathEscape(sheet))

	params := url.Values{}
	params.Set("valueRenderOption", "FORMATTED_VALUE")
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if c.accessToken != "" {
		httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.accessToken))
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("Sheets API error %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("Sheets API error %d: %s", resp.StatusCode, string(body))
	}

	var response valuesResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return response.Values, nil
}

// SpreadsheetID returns the spreadsheet this client reads
func (c *Client) SpreadsheetID() string {
	return c.spreadsheetID
}

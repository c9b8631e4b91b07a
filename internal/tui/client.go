package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fentz26/missionctl/internal/controlplane"
	"github.com/fentz26/missionctl/internal/models"
)

// DefaultClientTimeout is the default timeout for API requests.
const DefaultClientTimeout = 10 * time.Second

// Client wraps HTTP calls to the missionctl daemon. The dashboard core runs
// in-process; only agent details and heartbeats go over the wire.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client with timeout
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultClientTimeout,
		},
	}
}

// CheckHealth reports the daemon's health.
func (c *Client) CheckHealth() (*controlplane.HealthResponse, error) {
	var health controlplane.HealthResponse
	if err := c.do(http.MethodGet, "/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// ListAgents returns every agent as stored by the daemon.
func (c *Client) ListAgents() ([]models.AgentDetail, error) {
	var agents []models.AgentDetail
	if err := c.do(http.MethodGet, "/api/agents", nil, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

// GetAgent fetches the full record of one agent.
func (c *Client) GetAgent(id string) (*models.AgentDetail, error) {
	var agent models.AgentDetail
	if err := c.do(http.MethodGet, "/api/agents/"+url.PathEscape(id), nil, &agent); err != nil {
		return nil, err
	}
	return &agent, nil
}

// UpdateAgent saves an edit and returns the stored record.
func (c *Client) UpdateAgent(id string, u models.AgentUpdate) (*models.AgentDetail, error) {
	var agent models.AgentDetail
	if err := c.do(http.MethodPut, "/api/agents/"+url.PathEscape(id), u, &agent); err != nil {
		return nil, err
	}
	return &agent, nil
}

// CreateStatusCheck records a heartbeat for this client.
func (c *Client) CreateStatusCheck(clientName string) (*models.StatusCheck, error) {
	var check models.StatusCheck
	req := controlplane.StatusRequest{ClientName: clientName}
	if err := c.do(http.MethodPost, "/api/status", req, &check); err != nil {
		return nil, err
	}
	return &check, nil
}

func (c *Client) do(method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr controlplane.ErrorResponse
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("API error: %s", apiErr.Error)
		}
		return fmt.Errorf("API error: %s", string(data))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobmanager/pkg/api"
)

// APIClient handles API calls to the jobmanager server.
type APIClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewAPIClient creates a new client with the given base URL and token.
func NewAPIClient(baseURL, token string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError represents an error response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// doJSON sends a request with an optional JSON body and decodes the
// JSON response into out when out is non-nil.
func (c *APIClient) doJSON(method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(bodyBytes)
	}

	httpReq, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.Token))
	httpReq.Header.Add("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// Login sends POST /auth/login with form credentials.
func (c *APIClient) Login(email, password string) (*api.Token, error) {
	form := url.Values{
		"username": {email},
		"password": {password},
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.BaseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	var token api.Token
	if err := json.Unmarshal(respBody, &token); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &token, nil
}

// ListAccounts sends GET /accounts.
func (c *APIClient) ListAccounts() ([]api.AccountResponse, error) {
	var accounts []api.AccountResponse
	if err := c.doJSON(http.MethodGet, "/accounts", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// CreateAccount sends POST /accounts.
func (c *APIClient) CreateAccount(req api.CreateAccountRequest) (*api.AccountResponse, error) {
	var account api.AccountResponse
	if err := c.doJSON(http.MethodPost, "/accounts", req, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccount sends GET /accounts/{id}.
func (c *APIClient) GetAccount(id string) (*api.AccountResponse, error) {
	var account api.AccountResponse
	if err := c.doJSON(http.MethodGet, "/accounts/"+id, nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// SetAccountActive sends PUT /accounts/{id}/activate or deactivate.
func (c *APIClient) SetAccountActive(id string, active bool) (*api.AccountResponse, error) {
	action := "deactivate"
	if active {
		action = "activate"
	}
	var account api.AccountResponse
	if err := c.doJSON(http.MethodPut, "/accounts/"+id+"/"+action, nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// DeleteAccount sends DELETE /accounts/{id}.
func (c *APIClient) DeleteAccount(id string) error {
	return c.doJSON(http.MethodDelete, "/accounts/"+id, nil, nil)
}

// ListUsers sends GET /users.
func (c *APIClient) ListUsers() ([]api.UserResponse, error) {
	var users []api.UserResponse
	if err := c.doJSON(http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser sends POST /users.
func (c *APIClient) CreateUser(req api.CreateUserRequest) (*api.UserResponse, error) {
	var user api.UserResponse
	if err := c.doJSON(http.MethodPost, "/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser sends GET /users/{id}.
func (c *APIClient) GetUser(id string) (*api.UserResponse, error) {
	var user api.UserResponse
	if err := c.doJSON(http.MethodGet, "/users/"+id, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SetUserActive sends PUT /users/{id}/activate or deactivate.
func (c *APIClient) SetUserActive(id string, active bool) (*api.UserResponse, error) {
	action := "deactivate"
	if active {
		action = "activate"
	}
	var user api.UserResponse
	if err := c.doJSON(http.MethodPut, "/users/"+id+"/"+action, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser sends DELETE /users/{id}.
func (c *APIClient) DeleteUser(id string) error {
	return c.doJSON(http.MethodDelete, "/users/"+id, nil, nil)
}

// ListJobs sends GET /jobs, /jobs/own or /jobs/all depending on
// scope, with an optional status filter.
func (c *APIClient) ListJobs(scope, status string) ([]api.JobResponse, error) {
	path := "/jobs"
	switch scope {
	case "own":
		path = "/jobs/own"
	case "all":
		path = "/jobs/all"
	}
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}

	var jobs []api.JobResponse
	if err := c.doJSON(http.MethodGet, path, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// CreateJob sends POST /jobs.
func (c *APIClient) CreateJob(req api.CreateJobRequest) (*api.JobResponse, error) {
	var job api.JobResponse
	if err := c.doJSON(http.MethodPost, "/jobs", req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// GetJob sends GET /jobs/{id}.
func (c *APIClient) GetJob(id string) (*api.JobResponse, error) {
	var job api.JobResponse
	if err := c.doJSON(http.MethodGet, "/jobs/"+id, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// RunJob sends PUT /jobs/{id}/run.
func (c *APIClient) RunJob(id string) (*api.JobResponse, error) {
	var job api.JobResponse
	if err := c.doJSON(http.MethodPut, "/jobs/"+id+"/run", nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// StopJob sends PUT /jobs/{id}/stop.
func (c *APIClient) StopJob(id string) (*api.JobResponse, error) {
	var job api.JobResponse
	if err := c.doJSON(http.MethodPut, "/jobs/"+id+"/stop", nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// DeleteJob sends DELETE /jobs/{id}.
func (c *APIClient) DeleteJob(id string) error {
	return c.doJSON(http.MethodDelete, "/jobs/"+id, nil, nil)
}

// Version sends GET /system/version.
func (c *APIClient) Version() (string, error) {
	var msg api.MessageResponse
	if err := c.doJSON(http.MethodGet, "/system/version", nil, &msg); err != nil {
		return "", err
	}
	return msg.Message, nil
}

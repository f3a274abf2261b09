package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Client is a thin HTTP client for the clinic desk API.
type Client struct {
	BaseURL string
	Token   string

	httpClient *http.Client
}

// NewClient creates an API client for the given host.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL:    baseURL,
		Token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	HTTPStatus int    `json:"http_status"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.HTTPStatus)
}

// Patient mirrors the API's full patient representation.
type Patient struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Contact           string    `json:"contact"`
	Diagnosis         string    `json:"diagnosis"`
	AnonymizedName    string    `json:"anonymized_name"`
	AnonymizedContact string    `json:"anonymized_contact"`
	MaskedDiagnosis   string    `json:"masked_diagnosis"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// AnonymizedPatient mirrors the API's de-identified projection.
type AnonymizedPatient struct {
	ID                int64     `json:"id"`
	AnonymizedName    string    `json:"anonymized_name"`
	AnonymizedContact string    `json:"anonymized_contact"`
	MaskedDiagnosis   string    `json:"masked_diagnosis"`
	CreatedAt         time.Time `json:"created_at"`
}

// AuditEvent mirrors the API's audit log entry.
type AuditEvent struct {
	ID        int64     `json:"id"`
	ActorID   int64     `json:"actor_id"`
	ActorRole string    `json:"actor_role"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResult is the response to a successful login.
type LoginResult struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// PatientInput is the request body for create and update.
type PatientInput struct {
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	Diagnosis string `json:"diagnosis"`
}

func (c *Client) Login(username, password string) (*LoginResult, error) {
	var out LoginResult
	body := map[string]string{"username": username, "password": password}
	if err := c.do(http.MethodPost, "/v1/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout() error {
	return c.do(http.MethodPost, "/v1/auth/logout", nil, nil)
}

func (c *Client) ListPatients() ([]Patient, error) {
	var out []Patient
	if err := c.do(http.MethodGet, "/v1/patients?view=raw", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListAnonymizedPatients() ([]AnonymizedPatient, error) {
	var out []AnonymizedPatient
	if err := c.do(http.MethodGet, "/v1/patients?view=anonymized", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPatient(id int64) (*Patient, error) {
	var out Patient
	if err := c.do(http.MethodGet, fmt.Sprintf("/v1/patients/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePatient(in PatientInput) (int64, error) {
	var out struct {
		ID int64 `json:"id"`
	}
	if err := c.do(http.MethodPost, "/v1/patients", in, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) UpdatePatient(id int64, in PatientInput) error {
	return c.do(http.MethodPut, fmt.Sprintf("/v1/patients/%d", id), in, nil)
}

func (c *Client) DeletePatient(id int64) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/v1/patients/%d", id), nil, nil)
}

func (c *Client) RefreshAnonymization() (int, error) {
	var out struct {
		Records int `json:"records"`
	}
	if err := c.do(http.MethodPost, "/v1/patients/refresh-anonymization", nil, &out); err != nil {
		return 0, err
	}
	return out.Records, nil
}

func (c *Client) ListAudit(role string, actorID int64, limit int) ([]AuditEvent, error) {
	path := "/v1/audit?"
	if role != "" {
		path += "role=" + role + "&"
	}
	if actorID > 0 {
		path += "actor_id=" + strconv.FormatInt(actorID, 10) + "&"
	}
	if limit > 0 {
		path += "limit=" + strconv.Itoa(limit)
	}
	var out []AuditEvent
	if err := c.do(http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{HTTPStatus: resp.StatusCode, Message: string(data)}
		var parsed struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &parsed) == nil && parsed.Message != "" {
			apiErr.Message = parsed.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

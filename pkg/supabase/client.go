// Package supabase is a thin client for the Supabase PostgREST and auth
// APIs. It owns request plumbing only; table names and filter expressions
// belong to the repositories that use it.
package supabase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client represents a Supabase client
type Client struct {
	URL        string
	ServiceKey string
	HTTPClient *http.Client
}

// NewClient creates a new Supabase client
func NewClient(url, serviceKey string) *Client {
	return &Client{
		URL:        url,
		ServiceKey: serviceKey,
		HTTPClient: &http.Client{},
	}
}

// User represents a Supabase user
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// do sends one REST request with the standard auth headers and returns the
// response body. The service key authenticates every call; row-level
// security is enforced by filtering on user_id in the repositories.
func (c *Client) do(method, url string, body interface{}, prefer string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", c.ServiceKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.ServiceKey))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("supabase error: %s", string(respBody))
	}

	return respBody, nil
}

func (c *Client) tableURL(table string) string {
	return fmt.Sprintf("%s/rest/v1/%s", c.URL, table)
}

// Query executes a filtered select on a Supabase table. Query values use
// PostgREST operator syntax (e.g. "eq.<id>", "gte.2024-01-01").
func (c *Client) Query(table string, query map[string]interface{}) ([]byte, error) {
	req, err := http.NewRequest("GET", c.tableURL(table), nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	for key, value := range query {
		q.Add(key, fmt.Sprintf("%v", value))
	}
	req.URL.RawQuery = q.Encode()

	return c.do("GET", req.URL.String(), nil, "")
}

// Insert inserts one record or a slice of records into a Supabase table.
func (c *Client) Insert(table string, data interface{}) ([]byte, error) {
	return c.do("POST", c.tableURL(table), data, "return=representation")
}

// Upsert inserts or updates records. onConflict names the unique columns
// PostgREST should merge on (e.g. "user_id,rule_key").
func (c *Client) Upsert(table string, data interface{}, onConflict string) ([]byte, error) {
	url := fmt.Sprintf("%s?on_conflict=%s", c.tableURL(table), onConflict)
	return c.do("POST", url, data, "return=representation,resolution=merge-duplicates")
}

// Update patches a single record by id.
func (c *Client) Update(table string, id string, data interface{}) ([]byte, error) {
	url := fmt.Sprintf("%s?id=eq.%s", c.tableURL(table), id)
	return c.do("PATCH", url, data, "return=representation")
}

// UpdateWhere patches all records matching a query.
func (c *Client) UpdateWhere(table string, query map[string]interface{}, data interface{}) ([]byte, error) {
	req, err := http.NewRequest("PATCH", c.tableURL(table), nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	for key, value := range query {
		q.Add(key, fmt.Sprintf("%v", value))
	}
	req.URL.RawQuery = q.Encode()

	return c.do("PATCH", req.URL.String(), data, "return=representation")
}

// DeleteWhere deletes all records matching a query.
func (c *Client) DeleteWhere(table string, query map[string]interface{}) error {
	req, err := http.NewRequest("DELETE", c.tableURL(table), nil)
	if err != nil {
		return err
	}
	q := req.URL.Query()
	for key, value := range query {
		q.Add(key, fmt.Sprintf("%v", value))
	}
	req.URL.RawQuery = q.Encode()

	_, err = c.do("DELETE", req.URL.String(), nil, "")
	return err
}

// VerifyToken verifies a user JWT with the Supabase auth API and returns the
// authenticated user.
func (c *Client) VerifyToken(token string) (*User, error) {
	url := fmt.Sprintf("%s/auth/v1/user", c.URL)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.ServiceKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("token verification failed (status %d): %s", resp.StatusCode, string(body))
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	return &user, nil
}

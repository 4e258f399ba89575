package phonebook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client is a Store backed by a json-server style REST endpoint
// exposing GET and POST on /persons.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for baseURL, e.g. http://localhost:3001.
// A nil httpClient selects one with a 10 second timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) List(ctx context.Context) ([]Person, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/persons", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list persons: unexpected status %d", resp.StatusCode)
	}
	persons := []Person{}
	if err := json.NewDecoder(resp.Body).Decode(&persons); err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	return persons, nil
}

// Add checks the current list for the name before posting, since a plain
// json-server does not enforce uniqueness.
func (c *Client) Add(ctx context.Context, p Person) (Person, error) {
	p, err := normalize(p)
	if err != nil {
		return Person{}, err
	}
	existing, err := c.List(ctx)
	if err != nil {
		return Person{}, err
	}
	if containsName(existing, p.Name) {
		return Person{}, ErrDuplicateEntry
	}

	body, err := json.Marshal(Person{Name: p.Name, Number: p.Number})
	if err != nil {
		return Person{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/persons", bytes.NewReader(body))
	if err != nil {
		return Person{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return Person{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusConflict:
		return Person{}, ErrDuplicateEntry
	case http.StatusBadRequest:
		return Person{}, ErrInvalidPerson
	default:
		return Person{}, fmt.Errorf("add person: unexpected status %d", resp.StatusCode)
	}

	var created Person
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return Person{}, fmt.Errorf("add person: %w", err)
	}
	return created, nil
}

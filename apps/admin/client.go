package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/AnnonDomini/Exam-Bombers-V1/core/user"
)

// apiError is a non 2xx answer of the API.
type apiError struct {
	Status  int
	Message string
}

func (err *apiError) Error() string {
	return fmt.Sprintf("%d: %s", err.Status, err.Message)
}

// apiClient talks to a running API server; the cookie jar keeps the session between calls.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) (*apiClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating cookie jar")
	}
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: 10 * time.Second},
	}, nil
}

func (c *apiClient) do(method, path string, in, out interface{}) error {
	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			return errors.Wrap(err, "encoding request")
		}
	}
	req, err := http.NewRequest(method, c.baseURL+path, &body)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &apiError{Status: resp.StatusCode}
		var data struct {
			Message string `json:"message"`
		}
		if err = json.NewDecoder(resp.Body).Decode(&data); err == nil {
			apiErr.Message = data.Message
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	return errors.Wrap(json.NewDecoder(resp.Body).Decode(out), "decoding response")
}

func (c *apiClient) register(uname, pwd, role string) (user.User, error) {
	var usr user.User
	err := c.do(http.MethodPost, "/api/register", user.NewUser{Username: uname, Password: pwd, Role: role}, &usr)
	return usr, err
}

func (c *apiClient) login(uname, pwd string) (user.User, error) {
	var usr user.User
	err := c.do(http.MethodPost, "/api/login", map[string]string{"username": uname, "password": pwd}, &usr)
	return usr, err
}

func (c *apiClient) users() ([]user.User, error) {
	var users []user.User
	err := c.do(http.MethodGet, "/api/admin/users", nil, &users)
	return users, err
}

func (c *apiClient) setRole(id int, role string) (user.User, error) {
	var usr user.User
	err := c.do(http.MethodPatch, fmt.Sprintf("/api/admin/users/%d/role", id), user.UpdateUserRole{Role: role}, &usr)
	return usr, err
}

package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"jobmanager/pkg/api"
)

func TestAccountsListCommand(t *testing.T) {
	resetViper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accounts" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]api.AccountResponse{
			{ID: "acc-1", Name: "admins", IsActive: true, IsGlobal: true},
			{ID: "acc-2", Name: "acme", IsActive: true},
		})
	}))
	defer server.Close()

	viper.Set("url", server.URL)
	viper.Set("token", "test-token")

	output := execute(t, "accounts", "list")
	if !strings.Contains(output, "admins") || !strings.Contains(output, "acme") {
		t.Errorf("expected account names in output, got: %s", output)
	}
}

func TestAccountsCreateCommand(t *testing.T) {
	resetViper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req api.CreateAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Name != "initech" {
			t.Errorf("unexpected account name: %s", req.Name)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(api.AccountResponse{ID: "acc-9", Name: req.Name, IsActive: true})
	}))
	defer server.Close()

	viper.Set("url", server.URL)
	viper.Set("token", "test-token")

	output := execute(t, "accounts", "create", "--name", "initech")
	if !strings.Contains(output, "Account created") || !strings.Contains(output, "acc-9") {
		t.Errorf("expected success message, got: %s", output)
	}
}

func TestAccountsCreateCommand_Conflict(t *testing.T) {
	resetViper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "account initech already exists"})
	}))
	defer server.Close()

	viper.Set("url", server.URL)
	viper.Set("token", "test-token")

	output := execute(t, "accounts", "create", "--name", "initech")
	if !strings.Contains(output, "Failed to create account") || !strings.Contains(output, "409") {
		t.Errorf("expected conflict error in output, got: %s", output)
	}
}

func TestUsersCreateCommand(t *testing.T) {
	resetViper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req api.CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Email != "dev@acme.com" || req.Role != "dev" {
			t.Errorf("unexpected request payload: %+v", req)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(api.UserResponse{ID: "user-9", Email: req.Email, Role: req.Role, IsActive: true})
	}))
	defer server.Close()

	viper.Set("url", server.URL)
	viper.Set("token", "test-token")

	output := execute(t, "users", "create", "--email", "dev@acme.com", "--password", "s3cret-pass", "--role", "dev")
	if !strings.Contains(output, "User created") || !strings.Contains(output, "user-9") {
		t.Errorf("expected success message, got: %s", output)
	}
}

func TestAccountsDeactivateCommand(t *testing.T) {
	resetViper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/accounts/acc-2/deactivate") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(api.AccountResponse{ID: "acc-2", Name: "acme", IsActive: false})
	}))
	defer server.Close()

	viper.Set("url", server.URL)
	viper.Set("token", "test-token")

	output := execute(t, "accounts", "deactivate", "acc-2")
	if !strings.Contains(output, "active=false") {
		t.Errorf("expected deactivated state in output, got: %s", output)
	}
}

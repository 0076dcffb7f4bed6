//go:build e2e

// End-to-end exercise of the session lifecycle against a real API
// deployment. Point E2E_API_BASE_URL at a running instance before
// running with -tags e2e.
package e2e

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/openclassroom/client/internal/api"
	"github.com/openclassroom/client/internal/events"
	"github.com/openclassroom/client/internal/session"
	"github.com/openclassroom/client/internal/tokenstore"
	"github.com/openclassroom/client/internal/transport"
	"github.com/openclassroom/client/types"
)

var baseURL string

func TestMain(m *testing.M) {
	baseURL = os.Getenv("E2E_API_BASE_URL")
	if baseURL == "" {
		fmt.Fprintln(os.Stderr, "E2E_API_BASE_URL not set, skipping e2e tests")
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func newStack(t *testing.T) (*session.State, *session.Service, tokenstore.Store) {
	t.Helper()
	tokens, err := tokenstore.OpenFileStore(filepath.Join(t.TempDir(), "tokens.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	bus := events.NewBus()
	client := api.NewClient(baseURL, transport.New(tokens, bus, nil), 30*time.Second)
	svc := session.NewService(client, tokens)
	return session.NewState(svc, tokens, bus), svc, tokens
}

func TestRegisterLoginLogout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	state, svc, tokens := newStack(t)

	username := fmt.Sprintf("e2e-%d", time.Now().UnixNano())
	_, err := state.Register(ctx, types.Registration{
		FirstName: "E2E",
		LastName:  "Okafor",
		Username:  username,
		Email:     username + "@example.com",
		Password:  "e2e-password",
		Roles:     []types.Role{types.RoleStudent},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if state.Snapshot().Authenticated() {
		t.Fatal("register must not authenticate")
	}

	creds := types.Credentials{Username: username, Password: "e2e-password"}
	if err := state.Login(ctx, creds); err != nil {
		t.Fatalf("login: %v", err)
	}
	if tokens.Access() == "" || tokens.Refresh() == "" {
		t.Fatal("expected persisted token pair after login")
	}

	me, err := svc.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if me.Username != username {
		t.Fatalf("expected %q, got %q", username, me.Username)
	}

	if err := state.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if tokens.Access() != "" {
		t.Fatal("expected empty token store after logout")
	}
}

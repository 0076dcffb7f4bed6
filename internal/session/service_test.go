package session

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/openclassroom/client/internal/api"
	"github.com/openclassroom/client/internal/events"
	"github.com/openclassroom/client/internal/tokenstore"
	"github.com/openclassroom/client/internal/transport"
	"github.com/openclassroom/client/types"
)

func newService(t *testing.T, handler http.Handler) (*Service, *tokenstore.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := tokenstore.NewMemoryStore()
	client := api.NewClient(srv.URL, transport.New(tokens, events.NewBus(), nil), 5*time.Second)
	return NewService(client, tokens), tokens
}

func signedToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestRefreshExchangesAndPersists(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/refresh" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["refreshToken"] != "old-refresh" {
			t.Errorf("expected stored refresh token in body, got %q", body["refreshToken"])
		}
		json.NewEncoder(w).Encode(map[string]string{
			"jwt":          "new-access",
			"refreshToken": "new-refresh",
		})
	})

	svc, tokens := newService(t, handler)
	if err := tokens.Set("old-access", "old-refresh"); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if tokens.Access() != "new-access" || tokens.Refresh() != "new-refresh" {
		t.Fatal("expected the new pair persisted")
	}
}

func TestRefreshWithoutStoredToken(t *testing.T) {
	svc, _ := newService(t, http.NotFoundHandler())
	if err := svc.Refresh(context.Background()); err != ErrNoRefreshToken {
		t.Fatalf("expected ErrNoRefreshToken, got %v", err)
	}
}

func TestUploadPhotoSendsMultipart(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/photo" || r.Method != http.MethodPost {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("id"); got != "7" {
			t.Errorf("expected id field 7, got %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "avatar.png" {
			t.Errorf("expected filename avatar.png, got %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if !bytes.Equal(data, []byte("png-bytes")) {
			t.Errorf("unexpected file content %q", data)
		}
		// The real endpoint writes the stored path as plain text.
		io.WriteString(w, "photos/7/avatar.png")
	})

	svc, _ := newService(t, handler)
	ref, err := svc.UploadPhoto(context.Background(), 7, "avatar.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if ref != "photos/7/avatar.png" {
		t.Fatalf("expected new reference, got %q", ref)
	}
}

func TestUpdateProfileSendsFields(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/profile/7" || r.Method != http.MethodPut {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("firstName"); got != "Alice" {
			t.Errorf("expected firstName Alice, got %q", got)
		}
		if _, ok := r.MultipartForm.Value["newPassword"]; ok {
			t.Error("empty password fields must not be sent")
		}
		json.NewEncoder(w).Encode(types.User{ID: 7, FirstName: "Alice"})
	})

	svc, _ := newService(t, handler)
	user, err := svc.UpdateProfile(context.Background(), 7, types.ProfileUpdate{
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if user.FirstName != "Alice" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestAccessExpiringWithin(t *testing.T) {
	svc, tokens := newService(t, http.NotFoundHandler())

	// No token stored.
	if svc.AccessExpiringWithin(time.Minute) {
		t.Fatal("empty store must not report as expiring")
	}

	// Far from expiry.
	tokens.Set(signedToken(t, time.Hour), "refresh")
	if svc.AccessExpiringWithin(time.Minute) {
		t.Fatal("a fresh token must not report as expiring")
	}

	// Inside the leeway window.
	tokens.Set(signedToken(t, 10*time.Second), "refresh")
	if !svc.AccessExpiringWithin(time.Minute) {
		t.Fatal("a near-expiry token must report as expiring")
	}

	// Opaque (non-JWT) token: no expiry information, never expiring.
	tokens.Set("opaque-token", "refresh")
	if svc.AccessExpiringWithin(time.Minute) {
		t.Fatal("an opaque token must not report as expiring")
	}
}

func TestEnsureFreshRefreshesNearExpiry(t *testing.T) {
	refreshed := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/refresh" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		refreshed = true
		json.NewEncoder(w).Encode(map[string]string{
			"jwt":          "new-access",
			"refreshToken": "new-refresh",
		})
	})

	svc, tokens := newService(t, handler)
	tokens.Set(signedToken(t, 10*time.Second), "old-refresh")

	if err := svc.EnsureFresh(context.Background(), time.Minute); err != nil {
		t.Fatalf("ensure fresh: %v", err)
	}
	if !refreshed {
		t.Fatal("expected a refresh call")
	}
	if tokens.Access() != "new-access" {
		t.Fatal("expected the refreshed pair persisted")
	}

	// A fresh token triggers no network call.
	refreshed = false
	tokens.Set(signedToken(t, time.Hour), "refresh")
	if err := svc.EnsureFresh(context.Background(), time.Minute); err != nil {
		t.Fatalf("ensure fresh: %v", err)
	}
	if refreshed {
		t.Fatal("expected no refresh for a fresh token")
	}
}

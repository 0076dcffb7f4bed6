package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/openclassroom/client/internal/api"
	"github.com/openclassroom/client/internal/tokenstore"
	"github.com/openclassroom/client/types"
)

// ErrNoRefreshToken is returned by Refresh when no refresh token is
// stored.
var ErrNoRefreshToken = errors.New("no refresh token stored")

// tokenPair is the wire shape of the login and refresh responses.
type tokenPair struct {
	JWT          string `json:"jwt"`
	RefreshToken string `json:"refreshToken"`
}

// Service wraps the identity endpoints of the remote API. Each method
// either returns the parsed success payload or a typed error. The only
// methods with side effects are Login and Refresh, which persist the
// returned token pair before returning.
type Service struct {
	c      *api.Client
	tokens tokenstore.Store
}

func NewService(c *api.Client, tokens tokenstore.Store) *Service {
	return &Service{c: c, tokens: tokens}
}

// Login exchanges credentials for a token pair and persists it. When
// Login returns nil the tokens are already stored.
func (s *Service) Login(ctx context.Context, creds types.Credentials) error {
	var pair tokenPair
	if err := s.c.Post(ctx, "/user/login", creds, &pair); err != nil {
		return err
	}
	if err := s.tokens.Set(pair.JWT, pair.RefreshToken); err != nil {
		return fmt.Errorf("persist tokens: %w", err)
	}
	return nil
}

// Register creates a new account. It does not authenticate the caller
// and has no session side effect.
func (s *Service) Register(ctx context.Context, reg types.Registration) (types.User, error) {
	var user types.User
	err := s.c.Post(ctx, "/user/register", reg, &user)
	return user, err
}

// Refresh exchanges the stored refresh token for a new token pair and
// persists it.
func (s *Service) Refresh(ctx context.Context) error {
	refresh := s.tokens.Refresh()
	if refresh == "" {
		return ErrNoRefreshToken
	}

	var pair tokenPair
	body := map[string]string{"refreshToken": refresh}
	if err := s.c.Post(ctx, "/user/refresh", body, &pair); err != nil {
		return err
	}
	if err := s.tokens.Set(pair.JWT, pair.RefreshToken); err != nil {
		return fmt.Errorf("persist tokens: %w", err)
	}
	return nil
}

// CurrentUser returns the profile of the authenticated caller.
func (s *Service) CurrentUser(ctx context.Context) (types.User, error) {
	var user types.User
	err := s.c.Get(ctx, "/user/profile", &user)
	return user, err
}

// UserByID returns another user's profile.
func (s *Service) UserByID(ctx context.Context, id int) (types.User, error) {
	var user types.User
	err := s.c.Get(ctx, fmt.Sprintf("/user/profile/%d", id), &user)
	return user, err
}

// UpdateProfile updates the editable profile fields of the user.
func (s *Service) UpdateProfile(ctx context.Context, id int, upd types.ProfileUpdate) (types.User, error) {
	var user types.User
	err := s.c.PutMultipart(ctx, fmt.Sprintf("/user/profile/%d", id), func(w *multipart.Writer) error {
		fields := map[string]string{
			"firstName":        upd.FirstName,
			"lastName":         upd.LastName,
			"email":            upd.Email,
			"currentInstitute": upd.CurrentInstitute,
			"country":          upd.Country,
			"currentPassword":  upd.CurrentPassword,
			"newPassword":      upd.NewPassword,
		}
		for name, value := range fields {
			if value == "" {
				continue
			}
			if err := w.WriteField(name, value); err != nil {
				return err
			}
		}
		return nil
	}, &user)
	return user, err
}

// UploadPhoto sends a new profile picture and returns its reference.
// The endpoint answers with the stored path as plain text, not JSON.
func (s *Service) UploadPhoto(ctx context.Context, userID int, filename string, r io.Reader) (string, error) {
	return s.c.PostMultipartText(ctx, "/user/photo", func(w *multipart.Writer) error {
		if err := w.WriteField("id", strconv.Itoa(userID)); err != nil {
			return err
		}
		part, err := w.CreateFormFile("file", filename)
		if err != nil {
			return err
		}
		_, err = io.Copy(part, r)
		return err
	})
}

// AccessExpiringWithin reports whether the stored access token carries
// an exp claim that falls inside the leeway window. The token is only
// inspected, never verified; verification is the server's job.
func (s *Service) AccessExpiringWithin(leeway time.Duration) bool {
	token := s.tokens.Access()
	if token == "" {
		return false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return time.Until(claims.ExpiresAt.Time) < leeway
}

// EnsureFresh refreshes the token pair when the access token is close
// to expiry and a refresh token is available. Failures are returned to
// the caller; the stored pair is left untouched on failure.
func (s *Service) EnsureFresh(ctx context.Context, leeway time.Duration) error {
	if !s.AccessExpiringWithin(leeway) {
		return nil
	}
	if s.tokens.Refresh() == "" {
		return nil
	}
	return s.Refresh(ctx)
}

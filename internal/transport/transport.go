package transport

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/openclassroom/client/internal/events"
	"github.com/openclassroom/client/internal/tokenstore"
)

// Transport is the single http.RoundTripper every API call flows
// through. It attaches the stored access token to outgoing requests and
// reacts to authentication rejections: on a 401 it clears the token
// store and publishes a session-expired event before the caller sees
// the response.
type Transport struct {
	base   http.RoundTripper
	tokens tokenstore.Store
	bus    *events.Bus
}

// New constructs a Transport over base. A nil base falls back to
// http.DefaultTransport.
func New(tokens tokenstore.Store, bus *events.Bus, base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{base: base, tokens: tokens, bus: bus}
}

// RoundTrip implements http.RoundTripper. No endpoint is exempt from
// either interception.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	if token := t.tokens.Access(); token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	}
	if out.Header.Get("X-Request-ID") == "" {
		out.Header.Set("X-Request-ID", uuid.NewString())
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if err := t.tokens.Clear(); err != nil {
			slog.Warn("failed to clear tokens after 401", "error", err)
		}
		t.bus.Publish(events.Event{Kind: events.SessionExpired, Message: "session expired"})
	}

	return resp, nil
}

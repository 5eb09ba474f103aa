package authprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Ensure IdentityToolkit implements Provisioner interface.
var _ Provisioner = (*IdentityToolkit)(nil)

// Scopes of the service account token for the admin account endpoints
var IdentityScopes = []string{
	"https://www.googleapis.com/auth/identitytoolkit",
	"https://www.googleapis.com/auth/cloud-platform",
}

// Client for an Identity Toolkit compatible REST API (Firebase Auth and the
// Firebase auth emulator speak it). Creating verified accounts, lookups by
// email and password resets are admin calls, so every request carries a
// bearer token from tokens.
type IdentityToolkit struct {
	client   *retryablehttp.Client
	endpoint *url.URL
	tokens   oauth2.TokenSource
	apiKey   string
}

// Service account credentials from the environment, see
// google.FindDefaultCredentials
func DefaultTokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	creds, err := google.FindDefaultCredentials(ctx, IdentityScopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to find service account credentials: %w", err)
	}
	return creds.TokenSource, nil
}

// The auth emulator grants admin access to the "owner" token
func EmulatorTokenSource() oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "owner", TokenType: "Bearer"})
}

type identityError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func NewIdentityToolkit(
	endpoint, apiKey string,
	tokens oauth2.TokenSource,
	logger *slog.Logger,
) (*IdentityToolkit, error) {
	base, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid identity provider endpoint: %w", err)
	}
	if tokens == nil {
		return nil, errors.New("identity provider needs a token source")
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.RetryWaitMin = 100 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.Logger = logger

	return &IdentityToolkit{
		client:   client,
		endpoint: base,
		tokens:   oauth2.ReuseTokenSource(nil, tokens),
		apiKey:   apiKey,
	}, nil
}

func (p *IdentityToolkit) CreateUser(ctx context.Context, email, password string) (Handle, error) {
	ctx, span := tracer.Start(ctx, "IdentityToolkit.CreateUser", trace.WithAttributes(
		attribute.String("email", email),
	))
	defer span.End()

	var out struct {
		LocalID string `json:"localId"`
	}
	err := p.call(ctx, "accounts:signUp", map[string]any{
		"email":         email,
		"password":      password,
		"emailVerified": true,
	}, &out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create identity")
		return "", err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "created identity")
	return Handle(out.LocalID), nil
}

func (p *IdentityToolkit) LookupUser(ctx context.Context, email string) (Handle, error) {
	ctx, span := tracer.Start(ctx, "IdentityToolkit.LookupUser", trace.WithAttributes(
		attribute.String("email", email),
	))
	defer span.End()

	var out struct {
		Users []struct {
			LocalID string `json:"localId"`
		} `json:"users"`
	}
	err := p.call(ctx, "accounts:lookup", map[string]any{"email": []string{email}}, &out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to look up identity")
		return "", err
	}

	if len(out.Users) == 0 {
		span.RecordError(nil)
		span.SetStatus(codes.Ok, "no identity for email")
		return "", ErrNotFound
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "found identity")
	return Handle(out.Users[0].LocalID), nil
}

func (p *IdentityToolkit) UpdatePassword(ctx context.Context, handle Handle, password string) error {
	ctx, span := tracer.Start(ctx, "IdentityToolkit.UpdatePassword", trace.WithAttributes(
		attribute.String("handle", string(handle)),
	))
	defer span.End()

	err := p.call(ctx, "accounts:update", map[string]any{
		"localId":  string(handle),
		"password": password,
	}, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to update password")
		return err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "updated password")
	return nil
}

func (p *IdentityToolkit) call(ctx context.Context, method string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	target := p.endpoint.JoinPath("v1", method)
	q := target.Query()
	q.Set("key", p.apiKey)
	target.RawQuery = q.Encode()

	req, err := retryablehttp.NewRequestWithContext(
		ctx,
		http.MethodPost,
		target.String(),
		bytes.NewReader(payload),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	tok, err := p.tokens.Token()
	if err != nil {
		return fmt.Errorf("failed to get identity provider token: %w", err)
	}
	tok.SetAuthHeader(req.Request)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		var ierr identityError
		if json.Unmarshal(respBody, &ierr) == nil {
			switch ierr.Error.Message {
			case "EMAIL_EXISTS":
				return ErrUserExists
			case "USER_NOT_FOUND", "EMAIL_NOT_FOUND":
				return ErrNotFound
			}
			if ierr.Error.Message != "" {
				return fmt.Errorf("identity provider error: %s (status %d)", ierr.Error.Message, resp.StatusCode)
			}
		}

		return fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	return json.Unmarshal(respBody, out)
}

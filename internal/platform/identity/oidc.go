package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/podvault-labs/podcatalog/internal/platform/env"
)

type Mode string

const (
	ModeOIDC   Mode = "oidc"
	ModeStatic Mode = "static"
)

type Config struct {
	Mode Mode

	OIDCIssuerURL string
	OIDCClientID  string
	// WebIDClaim names the token claim carrying the WebID; falls back to
	// the subject when the claim is absent.
	WebIDClaim string

	StaticWebID string
}

func ConfigFromEnv() (Config, error) {
	modeRaw := strings.ToLower(strings.TrimSpace(env.String("PODCATALOG_IDENTITY_MODE", string(ModeOIDC))))
	var mode Mode
	switch modeRaw {
	case string(ModeOIDC):
		mode = ModeOIDC
	case string(ModeStatic):
		mode = ModeStatic
	default:
		return Config{}, fmt.Errorf("PODCATALOG_IDENTITY_MODE must be one of: oidc, static (got %q)", modeRaw)
	}
	cfg := Config{
		Mode:          mode,
		OIDCIssuerURL: env.String("PODCATALOG_OIDC_ISSUER_URL", ""),
		OIDCClientID:  env.String("PODCATALOG_OIDC_CLIENT_ID", ""),
		WebIDClaim:    env.String("PODCATALOG_OIDC_WEBID_CLAIM", "webid"),
		StaticWebID:   env.String("PODCATALOG_STATIC_WEBID", ""),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Mode {
	case ModeOIDC:
		if strings.TrimSpace(c.OIDCIssuerURL) == "" {
			return errors.New("PODCATALOG_OIDC_ISSUER_URL is required when identity mode is oidc")
		}
		if strings.TrimSpace(c.OIDCClientID) == "" {
			return errors.New("PODCATALOG_OIDC_CLIENT_ID is required when identity mode is oidc")
		}
		if strings.TrimSpace(c.WebIDClaim) == "" {
			return errors.New("PODCATALOG_OIDC_WEBID_CLAIM is required when identity mode is oidc")
		}
	case ModeStatic:
		if strings.TrimSpace(c.StaticWebID) == "" {
			return errors.New("PODCATALOG_STATIC_WEBID is required when identity mode is static")
		}
	default:
		return fmt.Errorf("unknown identity mode %q", c.Mode)
	}
	return nil
}

// OIDCResolver verifies the bearer token carried on the request context and
// extracts the WebID claim.
type OIDCResolver struct {
	cfg      Config
	verifier *oidc.IDTokenVerifier
}

func NewOIDCResolver(ctx context.Context, cfg Config) (*OIDCResolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Mode != ModeOIDC {
		return nil, fmt.Errorf("identity mode must be oidc (got %q)", cfg.Mode)
	}
	provider, err := oidc.NewProvider(ctx, cfg.OIDCIssuerURL)
	if err != nil {
		return nil, fmt.Errorf("oidc provider: %w", err)
	}
	verifier := provider.Verifier(&oidc.Config{ClientID: cfg.OIDCClientID})
	return &OIDCResolver{cfg: cfg, verifier: verifier}, nil
}

func (r *OIDCResolver) CurrentIdentity(ctx context.Context) (string, error) {
	rawToken, ok := tokenFromContext(ctx)
	if !ok {
		return "", ErrNotAuthenticated
	}
	idToken, err := r.verifier.Verify(ctx, rawToken)
	if err != nil {
		return "", fmt.Errorf("verify token: %w", err)
	}
	var claims map[string]any
	if err := idToken.Claims(&claims); err != nil {
		return "", fmt.Errorf("decode claims: %w", err)
	}
	if webid, ok := claims[r.cfg.WebIDClaim].(string); ok && strings.TrimSpace(webid) != "" {
		return webid, nil
	}
	if strings.TrimSpace(idToken.Subject) != "" {
		return idToken.Subject, nil
	}
	return "", ErrNotAuthenticated
}

// NewResolver builds the resolver selected by cfg.Mode.
func NewResolver(ctx context.Context, cfg Config) (Resolver, error) {
	switch cfg.Mode {
	case ModeOIDC:
		return NewOIDCResolver(ctx, cfg)
	case ModeStatic:
		return Static{WebID: cfg.StaticWebID}, nil
	default:
		return nil, fmt.Errorf("unknown identity mode %q", cfg.Mode)
	}
}

package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/podvault-labs/podcatalog/internal/platform/env"
)

// ClientCredentialsConfig obtains tokens for headless runs (manifest
// export) where no interactive login exists.
type ClientCredentialsConfig struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
	Scopes       []string
}

func ClientCredentialsConfigFromEnv() (ClientCredentialsConfig, error) {
	cfg := ClientCredentialsConfig{
		IssuerURL:    env.String("PODCATALOG_OIDC_ISSUER_URL", ""),
		ClientID:     env.String("PODCATALOG_OIDC_CLIENT_ID", ""),
		ClientSecret: env.String("PODCATALOG_OIDC_CLIENT_SECRET", ""),
		Scopes:       parseScopes(env.String("PODCATALOG_OIDC_SCOPES", "openid webid")),
	}
	if err := cfg.Validate(); err != nil {
		return ClientCredentialsConfig{}, err
	}
	return cfg, nil
}

func (c ClientCredentialsConfig) Validate() error {
	if strings.TrimSpace(c.IssuerURL) == "" {
		return errors.New("issuer url is required")
	}
	if strings.TrimSpace(c.ClientID) == "" {
		return errors.New("client id is required")
	}
	if strings.TrimSpace(c.ClientSecret) == "" {
		return errors.New("client secret is required")
	}
	return nil
}

// NewTokenSource builds an oauth2 token source against the issuer's token
// endpoint, discovered through OIDC metadata.
func NewTokenSource(ctx context.Context, cfg ClientCredentialsConfig) (oauth2.TokenSource, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("oidc provider: %w", err)
	}
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     provider.Endpoint().TokenURL,
		Scopes:       cfg.Scopes,
	}
	return cc.TokenSource(ctx), nil
}

// ContextWithTokenSource fetches one token and attaches it for resolvers.
func ContextWithTokenSource(ctx context.Context, source oauth2.TokenSource) (context.Context, error) {
	token, err := source.Token()
	if err != nil {
		return ctx, fmt.Errorf("fetch token: %w", err)
	}
	raw := token.AccessToken
	if idToken, ok := token.Extra("id_token").(string); ok && idToken != "" {
		raw = idToken
	}
	return ContextWithToken(ctx, raw), nil
}

func parseScopes(raw string) []string {
	var scopes []string
	for _, s := range strings.Fields(raw) {
		if s != "" {
			scopes = append(scopes, s)
		}
	}
	return scopes
}

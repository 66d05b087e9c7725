package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/cohort-stats/skills-dashboard/pkg/core"
)

const (
	jwksTimeout = 5 * time.Second

	// ALB-fronted deployments forward the access token here instead of in
	// Authorization.
	albTokenHeader = "x-amzn-oidc-accesstoken"
)

// Locals keys set on authenticated requests.
const (
	LocalSubject  = "sub"
	LocalUsername = "username"
	LocalScope    = "scope"
)

// TokenVerifier gates routes behind a JWT access token signed by a key from
// a remote JWKS.
type TokenVerifier struct {
	issuer   string
	jwksURL  string
	clientID string
	cache    *jwk.Cache
	logger   *slog.Logger
}

// NewCognitoVerifier derives the issuer and JWKS URL of a Cognito user pool.
func NewCognitoVerifier(cfg core.CognitoConfig, logger *slog.Logger) (*TokenVerifier, error) {
	if cfg.Region == "" {
		return nil, errors.New("Region is required")
	}
	if cfg.UserPoolID == "" {
		return nil, errors.New("UserPoolID is required")
	}

	issuer := fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", cfg.Region, cfg.UserPoolID)
	return NewTokenVerifier(issuer, issuer+"/.well-known/jwks.json", cfg.AppClientID, logger)
}

func NewTokenVerifier(issuer, jwksURL, clientID string, logger *slog.Logger) (*TokenVerifier, error) {
	if clientID == "" {
		return nil, errors.New("ClientID is required")
	}
	if issuer == "" {
		return nil, errors.New("issuer is required")
	}
	if jwksURL == "" {
		return nil, errors.New("jwksURL is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	cache := jwk.NewCache(context.Background())
	if err := cache.Register(jwksURL); err != nil {
		return nil, fmt.Errorf("register jwks url: %w", err)
	}

	return &TokenVerifier{
		issuer:   issuer,
		jwksURL:  jwksURL,
		clientID: clientID,
		cache:    cache,
		logger:   logger.With(slog.String("component", "auth")),
	}, nil
}

func (v *TokenVerifier) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			return fiber.ErrUnauthorized
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), jwksTimeout)
		defer cancel()

		keyset, err := v.cache.Get(ctx, v.jwksURL)
		if err != nil {
			v.logger.WarnContext(ctx, "jwks fetch failed", slog.Any("err", err))
			return fiber.NewError(fiber.StatusUnauthorized, "unable to load jwks")
		}

		tok, err := jwt.Parse(
			[]byte(raw),
			jwt.WithKeySet(keyset),
			jwt.WithValidate(true),
			jwt.WithIssuer(v.issuer),
			jwt.WithClaimValue("token_use", "access"),
		)
		if err != nil {
			v.logger.DebugContext(ctx, "token rejected", slog.Any("err", err))
			return fiber.ErrUnauthorized
		}

		if cid, ok := tok.Get("client_id"); !ok || cid != v.clientID {
			return fiber.ErrUnauthorized
		}

		c.Locals(LocalSubject, tok.Subject())
		if username, ok := tok.Get("username"); ok {
			c.Locals(LocalUsername, username)
		}
		if scope, ok := tok.Get("scope"); ok {
			c.Locals(LocalScope, scope)
		}

		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	auth := c.Get(fiber.HeaderAuthorization)
	if scheme, token, ok := strings.Cut(auth, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return c.Get(albTokenHeader)
}

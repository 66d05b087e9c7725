package oauthLocal

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
)

// HeaderPreservingClient copies the original request headers onto every
// redirect hop. Go drops Authorization on cross-host redirects otherwise.
func HeaderPreservingClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(r *http.Request, via []*http.Request) error {
			if len(via) > 0 {
				r.Header = via[0].Header.Clone()
			}

			return nil
		},
	}
}

func WithBaseClient(ctx context.Context, base *http.Client) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, base)
}

// StaticBearerHTTPClient returns a client that sends
// "Authorization: Bearer <token>" on every request. The base client's
// transport, redirect policy and timeout are kept.
func StaticBearerHTTPClient(ctx context.Context, token string, base *http.Client) *http.Client {
	if base == nil {
		base = HeaderPreservingClient()
	}

	ctx = WithBaseClient(ctx, base)

	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})

	return oauth2.NewClient(ctx, src)
}

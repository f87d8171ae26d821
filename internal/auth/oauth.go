package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"tickadd/internal/logging"
)

// authorizeTimeout bounds how long the flow waits for the user to grant
// access in the browser.
const authorizeTimeout = 5 * time.Minute

// Scope covers task creation through the open API.
const Scope = "tasks:write"

const successPage = `<!DOCTYPE html>
<html><head><title>tickadd</title></head>
<body><p>Authentication successful. You can close this window.</p></body></html>`

const failurePage = `<!DOCTYPE html>
<html><head><title>tickadd</title></head>
<body><p>Authentication failed: %s</p></body></html>`

// Endpoint returns the TickTick OAuth2 endpoint rooted at authBaseURL.
// TickTick expects client credentials via HTTP basic auth on the token
// request.
func Endpoint(authBaseURL string) oauth2.Endpoint {
	return oauth2.Endpoint{
		AuthURL:   authBaseURL + "/oauth/authorize",
		TokenURL:  authBaseURL + "/oauth/token",
		AuthStyle: oauth2.AuthStyleInHeader,
	}
}

// Flow runs the authorization code flow with a loopback redirect.
type Flow struct {
	conf   *oauth2.Config
	port   int
	logger *slog.Logger
}

// NewFlow creates a flow for the given client credentials. The redirect
// listener binds 127.0.0.1:port.
func NewFlow(clientID, clientSecret, authBaseURL string, port int, logger *slog.Logger) *Flow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Flow{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     Endpoint(authBaseURL),
			RedirectURL:  fmt.Sprintf("http://127.0.0.1:%d", port),
			Scopes:       []string{Scope},
		},
		port:   port,
		logger: logger,
	}
}

// Authorize runs the full flow: it starts the loopback listener, hands
// the authorization URL to announce (typically printed for the user to
// open), waits for the redirect, verifies the state parameter and
// exchanges the code for an access token.
func (f *Flow) Authorize(ctx context.Context, announce func(authURL string)) (string, error) {
	state, err := randomState()
	if err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", f.port))
	if err != nil {
		return "", fmt.Errorf("failed to listen on redirect port %d: %w", f.port, err)
	}
	defer listener.Close()

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if errCode := q.Get("error"); errCode != "" {
				writeFailure(w, errCode)
				errCh <- fmt.Errorf("authorization denied: %s", errCode)
				return
			}
			if q.Get("state") != state {
				writeFailure(w, "state mismatch")
				errCh <- fmt.Errorf("state parameter mismatch in redirect")
				return
			}
			code := q.Get("code")
			if code == "" {
				writeFailure(w, "missing authorization code")
				errCh <- fmt.Errorf("authorization code not found in redirect")
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, successPage)
			codeCh <- code
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("redirect listener failed: %w", err)
		}
	}()
	defer server.Shutdown(context.Background())

	authURL := f.conf.AuthCodeURL(state)
	if announce != nil {
		announce(authURL)
	}
	f.logger.Info("waiting for authorization redirect",
		logging.Operation("authorize"),
		slog.String("redirect_uri", f.conf.RedirectURL))

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return "", err
	case <-time.After(authorizeTimeout):
		return "", fmt.Errorf("authorization timed out after %s", authorizeTimeout)
	case <-ctx.Done():
		return "", ctx.Err()
	}

	exchangeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	token, err := f.conf.Exchange(exchangeCtx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	f.logger.Info("authorization complete",
		logging.Operation("authorize"),
		logging.Status(logging.StatusSuccess),
		slog.String("token", logging.SanitizeToken(token.AccessToken)))

	return token.AccessToken, nil
}

// HTTPClient returns an *http.Client that attaches the stored access
// token as a bearer token on every request.
func HTTPClient(ctx context.Context, accessToken string) *http.Client {
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))
}

func writeFailure(w http.ResponseWriter, reason string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, failurePage, reason)
}

const stateAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomState() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = stateAlphabet[int(b)%len(stateAlphabet)]
	}
	return string(buf), nil
}

package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/cohort-stats/skills-dashboard/pkg/lookup"
)

// User-facing messages double as the error text.
var (
	ErrInvalidEmail     = errors.New("Please enter a valid email address")
	ErrNotFound         = errors.New("No data found for this email address")
	ErrSubmitInProgress = errors.New("A lookup is already in progress")
)

const genericFailureMessage = "An error occurred while fetching data"

type Lookuper interface {
	Lookup(ctx context.Context, email string) (lookup.Response, error)
}

// ViewState is the form state for one session. After a completed lookup
// exactly one of Error and Record is set.
type ViewState struct {
	Email   string
	Loading bool
	Error   string
	Record  lookup.UserRecord
}

type Controller struct {
	lookup Lookuper
	logger *slog.Logger

	mu    sync.Mutex
	state ViewState
}

func NewController(l Lookuper, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}

	return &Controller{
		lookup: l,
		logger: logger.With(slog.String("component", "dashboard")),
	}
}

func (c *Controller) SetEmail(email string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Email = email
}

func (c *Controller) State() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// ValidateEmail is a sanity check only: non-empty and containing "@".
func ValidateEmail(email string) error {
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// Submit validates the current email and runs one lookup for it. The
// returned error classifies the outcome; its message is also stored in the
// state. A Submit while another is in flight is ignored and returns
// ErrSubmitInProgress.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()

	if c.state.Loading {
		c.mu.Unlock()
		return ErrSubmitInProgress
	}

	email := c.state.Email
	if err := ValidateEmail(email); err != nil {
		c.state.Error = err.Error()
		c.state.Record = nil
		c.mu.Unlock()
		return err
	}

	c.state.Error = ""
	c.state.Record = nil
	c.state.Loading = true
	c.mu.Unlock()

	settled := false
	defer func() {
		if settled {
			return
		}
		// lookup panicked
		c.mu.Lock()
		c.state.Loading = false
		c.mu.Unlock()
	}()

	resp, err := c.lookup.Lookup(ctx, strings.TrimSpace(email))

	c.mu.Lock()
	defer c.mu.Unlock()

	settled = true
	c.state.Loading = false

	if err != nil {
		c.logger.ErrorContext(ctx, "lookup failed", slog.Any("err", err))
		c.state.Error = failureMessage(err)
		return err
	}

	if len(resp.Data) == 0 || resp.Data[0] == nil {
		c.state.Error = ErrNotFound.Error()
		return ErrNotFound
	}

	c.state.Record = resp.Data[0]
	return nil
}

func failureMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return genericFailureMessage
}

package finhelp

import (
	"context"
	"fmt"
	"time"

	"github.com/eshaffer321/finhelp-go/internal/templates"
	"github.com/getsentry/sentry-go"
)

// Operation names reported to hooks, logs and Sentry
const (
	OpBudgetEvaluate  = "budget.evaluate"
	OpSpendingDetect  = "spending.detect_anomalies"
	OpLoansRemind     = "loans.remind"
	OpLoansSuggest    = "loans.suggest_extra"
	OpLoansSchedule   = "loans.schedule"
	sentryFlushPeriod = 2 * time.Second
)

// Client is the entry point to the analysis engine
type Client struct {
	// Service interfaces
	Budget   BudgetService
	Spending SpendingService
	Loans    LoanService

	// Internal fields
	options   *ClientOptions
	logger    Logger
	now       func() time.Time
	templates *templates.Loader
}

// ClientOptions configures the client
type ClientOptions struct {
	// Logger for debug logging
	Logger Logger

	// Now overrides the clock used for due-date arithmetic
	Now func() time.Time

	// Hooks for observability
	Hooks *Hooks

	// SentryDSN enables Sentry error tracking when set
	SentryDSN string

	// SentryOptions allows custom Sentry configuration
	SentryOptions *sentry.ClientOptions
}

// Logger interface for logging
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Hooks provides lifecycle hooks around every service call
type Hooks struct {
	OnCall   func(ctx context.Context, operation string)
	OnResult func(ctx context.Context, operation string, duration time.Duration)
	OnError  func(ctx context.Context, operation string, err error)
}

// NewClient creates a new client
func NewClient(opts *ClientOptions) (*Client, error) {
	if opts == nil {
		opts = &ClientOptions{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = nopLogger{}
	}

	// Initialize Sentry if DSN is provided
	if opts.SentryDSN != "" || opts.SentryOptions != nil {
		sentryOpts := sentry.ClientOptions{}
		if opts.SentryOptions != nil {
			sentryOpts = *opts.SentryOptions
		}
		if opts.SentryDSN != "" {
			sentryOpts.Dsn = opts.SentryDSN
		}
		if sentryOpts.Environment == "" {
			sentryOpts.Environment = "production"
		}

		// A bad DSN must not keep the engine from working
		if err := sentry.Init(sentryOpts); err != nil {
			logger.Error("Failed to initialize Sentry", "error", err)
		}
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	c := &Client{
		options:   opts,
		logger:    logger,
		now:       now,
		templates: templates.NewLoader(),
	}

	c.initServices()

	return c, nil
}

// initServices initializes all service implementations
func (c *Client) initServices() {
	c.Budget = &budgetService{client: c}
	c.Spending = &spendingService{client: c}
	c.Loans = &loanService{client: c}
}

// Close flushes any pending Sentry events
func (c *Client) Close() {
	sentry.Flush(sentryFlushPeriod)
}

// today returns the current UTC calendar date at midnight
func (c *Client) today() time.Time {
	return CivilDate(c.now().UTC())
}

// execute runs one service call with hooks, panic recovery and error reporting
func (c *Client) execute(ctx context.Context, operation string, fn func() error) (err error) {
	if c.options.Hooks != nil && c.options.Hooks.OnCall != nil {
		c.options.Hooks.OnCall(ctx, operation)
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = &Error{
				Code:    ErrCodeInternal,
				Message: fmt.Sprintf("%s failed unexpectedly: %v", operation, r),
			}
		}
		duration := time.Since(start)

		if err != nil {
			c.report(ctx, operation, duration, err)
			if c.options.Hooks != nil && c.options.Hooks.OnError != nil {
				c.options.Hooks.OnError(ctx, operation, err)
			}
		} else {
			c.logger.Debug("call completed", "operation", operation, "duration", duration)
		}

		if c.options.Hooks != nil && c.options.Hooks.OnResult != nil {
			c.options.Hooks.OnResult(ctx, operation, duration)
		}
	}()

	return fn()
}

// report sends a failed call to the logger and to Sentry. Validation failures are
// caller mistakes, so they only leave a breadcrumb.
func (c *Client) report(ctx context.Context, operation string, duration time.Duration, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}

	if IsValidation(err) {
		c.logger.Warn("invalid input", "operation", operation, "error", err)
		hub.AddBreadcrumb(&sentry.Breadcrumb{
			Category: operation,
			Message:  err.Error(),
			Level:    sentry.LevelWarning,
		}, nil)
		return
	}

	c.logger.Error("call failed", "operation", operation, "error", err)
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("finhelp.operation", operation)
		scope.SetContext("finhelp", map[string]interface{}{
			"duration": duration.String(),
		})
		hub.CaptureException(err)
	})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

package smoke

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/okian/mergington/pkg/logger"
)

// Check is the outcome of one step.
type Check struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Report collects every check of a run.
type Report struct {
	BaseURL string
	Email   string
	Checks  []Check
}

// Failed returns the number of failed checks.
func (r *Report) Failed() int {
	n := 0
	for _, c := range r.Checks {
		if c.Err != nil {
			n++
		}
	}
	return n
}

// Summary renders one line per check plus a total.
func (r *Report) Summary() string {
	var b strings.Builder
	for _, c := range r.Checks {
		status := "PASS"
		if c.Err != nil {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "%s  %-32s %8s", status, c.Name, c.Duration.Round(time.Millisecond))
		if c.Err != nil {
			fmt.Fprintf(&b, "  %v", c.Err)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%d/%d checks passed against %s\n", len(r.Checks)-r.Failed(), len(r.Checks), r.BaseURL)
	return b.String()
}

type runner struct {
	cfg     Config
	client  *client
	logger  logger.Logger
	initial int
}

// Run executes the signup/unregister round trip and the error paths. Later
// checks depend on earlier ones, so the first failure stops the run.
// The returned error wraps ErrChecksFailed when any check failed.
func Run(ctx context.Context, cfg Config, log logger.Logger) (*Report, error) {
	cfg = cfg.withDefaults()
	if log == nil {
		log = logger.Discard()
	}
	r := &runner{cfg: cfg, client: newClient(cfg.BaseURL, cfg.Timeout), logger: log}
	report := &Report{BaseURL: cfg.BaseURL, Email: cfg.Email}

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"root redirects to front-end", r.checkRoot},
		{"activity is listed", r.checkListed},
		{"signup succeeds", r.checkSignup},
		{"signup is visible", r.checkEnrolled(true, 1)},
		{"duplicate signup rejected", r.checkDuplicate},
		{"unregister succeeds", r.checkUnregister},
		{"unregister is visible", r.checkEnrolled(false, 0)},
		{"second unregister rejected", r.checkNotRegistered},
		{"unknown activity rejected", r.checkUnknown},
	}

	for _, step := range steps {
		start := time.Now()
		err := step.fn(ctx)
		report.Checks = append(report.Checks, Check{Name: step.name, Err: err, Duration: time.Since(start)})
		if err != nil {
			log.Error(ctx, "check failed", logger.String("check", step.name), logger.Error(err))
			break
		}
		if cfg.Verbose {
			log.Info(ctx, "check passed", logger.String("check", step.name))
		}
	}

	if n := report.Failed(); n > 0 {
		return report, fmt.Errorf("%w: %d of %d", ErrChecksFailed, n, len(report.Checks))
	}
	return report, nil
}

func (r *runner) checkRoot(ctx context.Context) error {
	resp, err := r.client.do(ctx, http.MethodGet, "/")
	if err != nil {
		return err
	}
	if resp.status != http.StatusTemporaryRedirect {
		return fmt.Errorf("%w: status %d, want 307", ErrUnexpected, resp.status)
	}
	if resp.location != "/static/index.html" {
		return fmt.Errorf("%w: location %q", ErrUnexpected, resp.location)
	}
	return nil
}

func (r *runner) checkListed(ctx context.Context) error {
	all, err := r.client.activities(ctx)
	if err != nil {
		return err
	}
	a, ok := all[r.cfg.Activity]
	if !ok {
		return fmt.Errorf("%w: %q not listed", ErrUnexpected, r.cfg.Activity)
	}
	if a.Participants == nil {
		return fmt.Errorf("%w: participants missing", ErrUnexpected)
	}
	if slices.Contains(a.Participants, r.cfg.Email) {
		return fmt.Errorf("%w: %s already enrolled before the run", ErrUnexpected, r.cfg.Email)
	}
	r.initial = len(a.Participants)
	return nil
}

func (r *runner) checkSignup(ctx context.Context) error {
	status, body, err := r.client.action(ctx, r.cfg.Activity, "signup", r.cfg.Email)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d: %v", ErrUnexpected, status, body)
	}
	msg := body["message"]
	if !strings.Contains(msg, r.cfg.Email) || !strings.Contains(msg, r.cfg.Activity) {
		return fmt.Errorf("%w: message %q", ErrUnexpected, msg)
	}
	return nil
}

func (r *runner) checkEnrolled(want bool, delta int) func(context.Context) error {
	return func(ctx context.Context) error {
		all, err := r.client.activities(ctx)
		if err != nil {
			return err
		}
		participants := all[r.cfg.Activity].Participants
		if got := slices.Contains(participants, r.cfg.Email); got != want {
			return fmt.Errorf("%w: enrolled=%t, want %t", ErrUnexpected, got, want)
		}
		if len(participants) != r.initial+delta {
			return fmt.Errorf("%w: %d participants, want %d", ErrUnexpected, len(participants), r.initial+delta)
		}
		return nil
	}
}

func (r *runner) checkDuplicate(ctx context.Context) error {
	return r.expectDetail(ctx, r.cfg.Activity, "signup", http.StatusBadRequest, "already signed up")
}

func (r *runner) checkUnregister(ctx context.Context) error {
	status, body, err := r.client.action(ctx, r.cfg.Activity, "unregister", r.cfg.Email)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d: %v", ErrUnexpected, status, body)
	}
	msg := body["message"]
	if !strings.Contains(msg, "Unregistered") || !strings.Contains(msg, r.cfg.Email) {
		return fmt.Errorf("%w: message %q", ErrUnexpected, msg)
	}
	return nil
}

func (r *runner) checkNotRegistered(ctx context.Context) error {
	return r.expectDetail(ctx, r.cfg.Activity, "unregister", http.StatusBadRequest, "not registered")
}

func (r *runner) checkUnknown(ctx context.Context) error {
	return r.expectDetail(ctx, UnknownActivity, "signup", http.StatusNotFound, "Activity not found")
}

func (r *runner) expectDetail(ctx context.Context, name, verb string, wantStatus int, wantDetail string) error {
	status, body, err := r.client.action(ctx, name, verb, r.cfg.Email)
	if err != nil {
		return err
	}
	if status != wantStatus {
		return fmt.Errorf("%w: status %d, want %d", ErrUnexpected, status, wantStatus)
	}
	if !strings.Contains(body["detail"], wantDetail) {
		return fmt.Errorf("%w: detail %q, want %q", ErrUnexpected, body["detail"], wantDetail)
	}
	return nil
}

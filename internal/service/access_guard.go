package service

import (
	"context"
	"errors"

	"retail-mis-console/internal/metrics"
	"retail-mis-console/internal/model"

	"go.uber.org/zap"
)

// ErrNavigationSuperseded means the request was abandoned while the session was read.
// The caller must neither render nor redirect.
var ErrNavigationSuperseded = errors.New("navigation superseded")

// GuardState is a step of an access check
type GuardState string

const (
	GuardChecking    GuardState = "checking"
	GuardAuthorized  GuardState = "authorized"
	GuardRedirecting GuardState = "unauthorized-redirecting"
)

// Decision is the outcome of one access check
type Decision struct {
	State     GuardState
	Requested model.ViewID
	// View and Payload are the split of Requested, set when authorized
	View    model.ViewID
	Payload string
	// Target is where to go when redirecting
	Target  model.ViewID
	Session *model.Session
	Reason  string
	Trace   []GuardState
}

func (d Decision) Authorized() bool {
	return d.State == GuardAuthorized
}

// RedirectRoute is the console URL of Target, empty unless redirecting
func (d Decision) RedirectRoute() string {
	if d.State != GuardRedirecting {
		return ""
	}
	return model.ViewRoute(d.Target)
}

// SessionReader is what the guard needs from a session store
type SessionReader interface {
	Session(ctx context.Context) (*model.Session, error)
}

// AccessGuard decides whether the current session may see a requested view
type AccessGuard struct {
	table   *PermissionTable
	nav     *NavigationResolver
	logger  *zap.Logger
	metrics *metrics.Recorder
}

func NewAccessGuard(table *PermissionTable, nav *NavigationResolver, lg *zap.Logger, rec *metrics.Recorder) *AccessGuard {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &AccessGuard{table: table, nav: nav, logger: lg, metrics: rec}
}

// Check runs one access check. A decision is always either authorized or redirecting;
// nothing may be rendered before it is returned.
func (g *AccessGuard) Check(ctx context.Context, sessions SessionReader, requested model.ViewID) (Decision, error) {
	d := Decision{
		State:     GuardChecking,
		Requested: requested,
		Trace:     []GuardState{GuardChecking},
	}

	sess, err := sessions.Session(ctx)
	if ctx.Err() != nil {
		g.metrics.AccessDecision(metrics.OutcomeSuperseded)
		g.logger.Debug("access check superseded", zap.String("view", string(requested)))
		return Decision{}, ErrNavigationSuperseded
	}

	switch {
	case err != nil:
		outcome := metrics.OutcomeUnauthenticated
		if errors.Is(err, model.ErrUnknownRole) {
			outcome = metrics.OutcomeUnknownRole
		}
		g.logger.Debug("session unreadable, redirecting to login", zap.Error(err))
		return g.redirect(d, model.LoginView, "session unreadable", outcome), nil

	case sess == nil:
		return g.redirect(d, model.LoginView, "no session", metrics.OutcomeUnauthenticated), nil

	case !sess.Role.Valid():
		return g.redirect(d, model.LoginView, "unknown role", metrics.OutcomeUnknownRole), nil
	}

	d.Session = sess
	if g.table.IsAllowed(requested, sess.Role) {
		d.State = GuardAuthorized
		d.View, d.Payload = requested.Split()
		d.Trace = append(d.Trace, GuardAuthorized)
		g.metrics.AccessDecision(metrics.OutcomeAuthorized)
		g.logger.Debug("access granted",
			zap.String("view", string(d.View)),
			zap.String("role", string(sess.Role)))
		return d, nil
	}

	target, ok := g.nav.DefaultView(sess.Role)
	if !ok {
		target = model.LoginView
	}
	return g.redirect(d, target, "role not permitted", metrics.OutcomeForbidden), nil
}

func (g *AccessGuard) redirect(d Decision, target model.ViewID, reason, outcome string) Decision {
	d.State = GuardRedirecting
	d.Target = target
	d.Reason = reason
	d.Trace = append(d.Trace, GuardRedirecting)
	g.metrics.AccessDecision(outcome)
	g.logger.Debug("access denied",
		zap.String("view", string(d.Requested)),
		zap.String("target", string(target)),
		zap.String("reason", reason))
	return d
}

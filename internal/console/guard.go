// Package console holds the pieces shared between the CLI and the
// interactive terminal UI: the route guard and the navigation model.
package console

import "github.com/frankenpanel/frankenpanel/internal/console/session"

// Decision is what a protected screen should do given the session state
type Decision int

const (
	// DecisionWait means the session is still being resolved, show nothing yet
	DecisionWait Decision = iota
	// DecisionRender means the operator is authenticated, show the screen
	DecisionRender
	// DecisionLogin means there is no session, show the login screen
	DecisionLogin
)

func (d Decision) String() string {
	switch d {
	case DecisionWait:
		return "wait"
	case DecisionRender:
		return "render"
	case DecisionLogin:
		return "login"
	default:
		return "invalid"
	}
}

// Resolve maps a session state to a guard decision. Unresolved states
// wait rather than flashing either outcome.
func Resolve(s session.State) Decision {
	switch s {
	case session.StateAuthenticated:
		return DecisionRender
	case session.StateAnonymous:
		return DecisionLogin
	default:
		return DecisionWait
	}
}

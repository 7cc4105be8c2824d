// Package guard decides, per route, whether the client should render
// the requested view or redirect. Evaluation is a pure function of the
// session snapshot: no shared state, no ordering dependence between
// routes.
package guard

// SessionState is the slice of session data the guard needs.
type SessionState struct {
	Loading       bool
	Authenticated bool
	Onboarded     bool
}

// Action is the kind of outcome a route evaluation produces.
type Action int

const (
	// ShowLoading means session data is still in flight. No rule runs
	// until it resolves, so a cold load never redirects prematurely.
	ShowLoading Action = iota
	// Render means the requested view is shown.
	Render
	// Redirect means navigation to Decision.Target.
	Redirect
)

// Decision is the single outcome for one route evaluation.
type Decision struct {
	Action Action
	Target string
}

func render() Decision { return Decision{Action: Render} }

func redirect(target string) Decision { return Decision{Action: Redirect, Target: target} }

// Evaluate applies the routing rules to route under state. Unknown
// routes are treated like the home route.
func Evaluate(state SessionState, route string) Decision {
	if state.Loading {
		return Decision{Action: ShowLoading}
	}

	switch route {
	case "/signup", "/login":
		if !state.Authenticated {
			return render()
		}
		if state.Onboarded {
			return redirect("/")
		}
		return redirect("/onboarding")

	case "/onboarding":
		if !state.Authenticated {
			return redirect("/login")
		}
		if state.Onboarded {
			return redirect("/")
		}
		return render()

	default:
		// "/", "/chat/:id", "/notifications", "/call/:id",
		// "/profile/edit" all require a fully onboarded session.
		if !state.Authenticated {
			return redirect("/login")
		}
		if !state.Onboarded {
			return redirect("/onboarding")
		}
		return render()
	}
}

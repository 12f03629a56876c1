package ui

type Route string

const (
	RouteHome       Route = "/"
	RouteLogin      Route = "/login"
	RouteEmployees  Route = "/employees"
	RoutePromotions Route = "/promotions"
	RoutePayslips   Route = "/payslips"
	RouteSettings   Route = "/settings"
)

// SessionChecker reports whether a signed-in session exists.
type SessionChecker interface {
	Authenticated() bool
}

// Router guards navigation: protected routes require a session, and the login
// route bounces an already signed-in user back home.
type Router struct {
	Session SessionChecker
}

func NewRouter(session SessionChecker) *Router {
	return &Router{Session: session}
}

func (r *Router) Resolve(requested Route) Route {
	authed := r.Session.Authenticated()
	if requested == RouteLogin {
		if authed {
			return RouteHome
		}
		return RouteLogin
	}
	if !authed {
		return RouteLogin
	}
	return requested
}

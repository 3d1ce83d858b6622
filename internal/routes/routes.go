// Package routes maps the screen paths of the interactive client and
// enforces which of them need a session.
package routes

const (
	Root      = "/"
	Login     = "/login"
	Signup    = "/signup"
	Dashboard = "/dashboard"
)

// Authenticator reports whether a session token is present
type Authenticator interface {
	IsAuthenticated() bool
}

// Protected reports whether path requires a session
func Protected(path string) bool {
	return path == Dashboard
}

// Known reports whether path names a screen
func Known(path string) bool {
	switch path {
	case Root, Login, Signup, Dashboard:
		return true
	}
	return false
}

// Redirect returns where a request for path should go instead, or path
// itself when it can be shown as-is.
func Redirect(path string, auth Authenticator) string {
	authed := auth != nil && auth.IsAuthenticated()

	switch {
	case !Known(path):
		return Root
	case path == Root:
		return Dashboard
	case Protected(path) && !authed:
		return Login
	case (path == Login || path == Signup) && authed:
		return Dashboard
	}
	return path
}

// Resolve follows redirects until a path is reached that can be shown
func Resolve(path string, auth Authenticator) string {
	for i := 0; i < 4; i++ {
		next := Redirect(path, auth)
		if next == path {
			return path
		}
		path = next
	}
	return path
}

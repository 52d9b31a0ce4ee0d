package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gywan/gywan-site/internal/web/handler/login"
	"github.com/gywan/gywan-site/internal/web/session"
)

// ProtectedPrefix is the path prefix that requires an admin session.
const ProtectedPrefix = "/admin"

// CurrentUserKey is the fiber.Locals key holding the logged in session.User.
const CurrentUserKey = "CurrentUser"

// Middleware is a Fiber middleware that checks for admin authentication.
// Public pages pass through; a known session is still exposed to templates.
func Middleware(c *fiber.Ctx) error {
	var (
		isLoginPage = IsLoginPage(c)
		isProtected = IsProtected(c)
		sessData    = new(session.Data)
	)

	// get session cookie
	loginCookie := c.Cookies(session.CookieName)

	if loginCookie != "" {
		if err := sessData.Read(loginCookie); err != nil {
			sessData = new(session.Data)
		}
	}

	// valid data in session
	if sessData.User.ID > 0 {
		c.Locals(CurrentUserKey, sessData.User)

		if isLoginPage {
			return c.Redirect(login.SuccessPath)
		}

		return c.Next()
	}

	if isProtected {
		return c.Redirect(login.Path)
	}

	return c.Next()
}

// CurrentUser returns the logged in admin, if any.
func CurrentUser(c *fiber.Ctx) (session.User, bool) {
	u, ok := c.Locals(CurrentUserKey).(session.User)
	return u, ok
}

// IsLoginPage checks if the current request is for the login page.
func IsLoginPage(c *fiber.Ctx) bool {
	return strings.ToLower(c.Path()) == login.Path
}

// IsProtected checks if the current request needs an admin session.
func IsProtected(c *fiber.Ctx) bool {
	p := strings.ToLower(c.Path())
	return p == ProtectedPrefix || strings.HasPrefix(p, ProtectedPrefix+"/")
}

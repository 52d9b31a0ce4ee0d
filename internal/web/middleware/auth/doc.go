// Package auth guards the admin area of the site.
//
// Middleware reads the login cookie, restores the session.Data written by
// the login handler and redirects anonymous visitors of /admin to the
// login page.
package auth

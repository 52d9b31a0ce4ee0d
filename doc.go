// Package main is the entry point of the GYWAN site. It reads etc/main.toml
// and runs the fiber web service with the public pages, the donation
// pipeline and the admin dashboard, or one of the maintenance commands
// for migrations, resource uploads and admin accounts.
package main

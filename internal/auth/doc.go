// Package auth authenticates site administrators.
//
// Only local accounts are supported: passwords are stored as Argon2id hashes
// in the users table and checked by LocalProvider. Administrators are created
// either at startup from the [Admin] config section or with the
// "user create" command.
//
// Example usage:
//
//	provider := auth.NewLocalProvider(db)
//	user, err := provider.Authenticate(username, password)
package auth

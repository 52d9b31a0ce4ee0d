// Package uniuri generates cryptographically secure random strings used for
// newsletter cancel tokens and object storage keys.
package uniuri

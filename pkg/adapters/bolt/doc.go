// Package bolt provides a machine store backed by a bbolt database file.
package bolt

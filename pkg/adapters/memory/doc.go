// Package memory provides an in-memory machine store.
package memory

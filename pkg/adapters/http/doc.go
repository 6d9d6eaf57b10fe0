// Package http serves the machine library and machine runs as a JSON API on chi.
package http

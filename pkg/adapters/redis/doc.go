// Package redis provides a machine store backed by Redis.
package redis

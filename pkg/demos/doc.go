// Package demos bundles a few classic machines as embedded definition files.
package demos

// Package file provides a machine store that keeps one definition file per machine.
package file

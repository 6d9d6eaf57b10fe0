// Package definition reads and writes machine definition files (YAML or JSON).
package definition

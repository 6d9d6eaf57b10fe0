// Package mcp exposes the machine library as Model Context Protocol tools.
package mcp

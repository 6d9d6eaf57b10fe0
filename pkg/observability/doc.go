/*
Package observability provides tools for monitoring the Turing engine.

Metrics turns lifecycle events into Prometheus counters and histograms; plug its
Hooks into turing.WithLifecycleHooks and expose the registry over HTTP.
*/
package observability

// Package app wires configuration, logging, the search service, and the HTTP
// transport into a runnable server with graceful shutdown.
package app

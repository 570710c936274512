// Package server wires configuration, the icon atlas, the viewer and the
// HTTP API into a runnable server.
package server

// Package viewer exposes the two blueprint commands, stats and render,
// with metrics, logging and a cap on concurrent renders.
package viewer

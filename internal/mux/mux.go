// Package mux drives the tmux command-line interface. It is pure
// transport: it spawns one tmux subprocess per operation, captures
// stdout, and parses line-oriented listing output with fixed regular
// expressions. Session/window/pane policy lives in the callers.
package mux

// Package integration holds end-to-end tests that build the pyenv binary and
// drive it against a real interpreter. They run with -tags e2e.
package integration

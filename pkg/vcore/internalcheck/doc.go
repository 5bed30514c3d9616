// Package internalcheck holds static style-lint tests that run as part of
// the normal test suite rather than a separate linter invocation: its
// assertions are compile-time-checkable policy, not unit tests of behavior.
package internalcheck

// Package textutil provides small text helpers for terminal output:
// rune-safe truncation and single-line snippets of multi-line text.
package textutil

// Package demo contains the components served by the CLI and used across
// tests: a counter, a todo list with one child component per item, and a
// dashboard composing both.
package demo

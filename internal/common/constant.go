// Package common contains shared constants and sentinel errors used across
// the prompt marketplace components.
package common

// DefaultListKey is the name of the backing list holding every prompt.
const DefaultListKey = "prompts"

// DefaultMaxRecords caps the backing list; older entries are trimmed away.
const DefaultMaxRecords = 1000

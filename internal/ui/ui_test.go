package ui

import "github.com/kestreledit/kestrel/internal/input/key"

// Shared test keys.
var (
	kA = key.FromRune('a')
	kB = key.FromRune('b')
)

// Package pedometer is the placeholder step-tracking service. A
// terminal host has no step source, so availability is always false and
// break suggestions fall back to a time-based rule.
package pedometer

// breakAfterMinutes is how long a study stretch may run before a break
// is suggested.
const breakAfterMinutes = 60

// Available reports whether a step counter is present on this host.
func Available() bool {
	return false
}

// SuggestBreak reports whether the user should take a break, given the
// steps taken during the session and the study duration in minutes.
// Without a real step source only the duration is considered.
func SuggestBreak(steps, durationMinutes int) bool {
	_ = steps
	return durationMinutes > breakAfterMinutes
}

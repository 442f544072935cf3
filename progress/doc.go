// Package progress tracks how far a simulation run has got.  It is fed by the
// simulator after every cycle and read by whoever renders progress, so the
// driver never needs to know how progress is displayed.
package progress

// Package policy holds the caller-side decisions the scheduler deliberately
// leaves out: when to admit a pending process and which processes to swap
// out or back in.  Policies are pure functions of a scheduler snapshot and a
// random source; the driver applies the returned directives.
package policy

// Package random defines the random source consumed by the scheduler, the
// swap policy and the process generator.  Draws are never taken from a
// global generator so that a run is reproducible from its seed, and tests can
// substitute deterministic sequences.
package random

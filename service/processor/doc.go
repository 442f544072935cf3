// Package processor hosts the workers that run simulation jobs for parameter
// sweeps.  Every worker consumes jobs from the queue, runs a simulator built
// by the factory and records the outcome in the job store.
package processor

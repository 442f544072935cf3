// Package idgen wraps the UUID generator used for simulation run and message
// identifiers so that it can be stubbed in tests.  Process ids are plain
// integers assigned by the generator service and do not come from here.
package idgen

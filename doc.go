// Package procsim simulates the seven-state process lifecycle of an
// operating system scheduler: quantum dispatch, I/O blocking and swapping
// between main and secondary memory.
//
// The root package wires configuration, logging and tracing around the
// simulator:
//
//	srv, _ := procsim.New(procsim.WithConfig(cfg))
//	result, _ := srv.Runtime().Run(ctx)
//
// Sub-packages hold the pieces: runtime/scheduler moves processes between
// queues, policy decides admission and swapping, service/simulator drives
// cycles and service/api exposes a running simulation over HTTP.
package procsim

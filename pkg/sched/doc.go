// Package sched provides the idle-time scheduling primitive the reconciler
// runs on.
//
// A Scheduler accepts callbacks that run in a later idle slice and receive a
// Deadline reporting how much of the slice remains. Callbacks that want to
// keep running re-arm themselves by scheduling again.
//
// Two schedulers are provided. Manual queues callbacks until the caller runs
// a slice explicitly, which makes slice boundaries deterministic in tests.
// Loop owns a goroutine that runs one slice per tick and serializes
// externally submitted tasks onto the same goroutine.
package sched

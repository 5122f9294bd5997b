// Package courier provides the Courier aggregate for the dispatch system.
//
// A courier is an independent worker who operates their own availability:
// online couriers receive broadcast notices and poll the dispatch feed,
// offline couriers are invisible to dispatch. The aggregate tracks the
// agent heartbeat so that couriers whose device silently disappeared can be
// swept offline by a background job.
//
// The package follows the same Domain-Driven Design conventions as the order
// package: private fields, constructor validation, and a Restore constructor
// for persistence.
package courier

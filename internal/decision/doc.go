// Package decision abstracts the "which track do we apply" step behind a
// Resolver capability.
//
// Two implementations exist: Console, which holds a blocking exchange with a
// human over a terminal, and Automatic, which deterministically picks the
// safe default. The orchestrator never knows which one it is talking to.
package decision

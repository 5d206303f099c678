// Package service composes the match orchestrator and the ledger recorder
// into the application-level operations exposed over HTTP. Failures keep
// track of which pipeline stage produced them so callers can tell a
// scoring fault from a ledger fault.
package service

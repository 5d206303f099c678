package mocks

import (
	"context"
	"sync"
)

// LedgerCall records the arguments of one RecordMatch invocation.
type LedgerCall struct {
	AddressA    string
	AddressB    string
	ScaledScore uint64
}

// Ledger implements ledger.Recorder for testing.
type Ledger struct {
	// RecordMatchFn allows test cases to mock the RecordMatch behavior.
	RecordMatchFn func(ctx context.Context, addressA, addressB string, scaledScore uint64) error

	// Err is returned when RecordMatchFn is nil.
	Err error

	// mu protects the call tracking state for concurrent test cases.
	mu    sync.Mutex
	calls []LedgerCall
}

// RecordMatch implements the ledger.Recorder interface.
func (m *Ledger) RecordMatch(ctx context.Context, addressA, addressB string, scaledScore uint64) error {
	m.mu.Lock()
	m.calls = append(m.calls, LedgerCall{
		AddressA:    addressA,
		AddressB:    addressB,
		ScaledScore: scaledScore,
	})
	m.mu.Unlock()

	if m.RecordMatchFn != nil {
		return m.RecordMatchFn(ctx, addressA, addressB, scaledScore)
	}
	return m.Err
}

// Calls returns a copy of every recorded invocation.
func (m *Ledger) Calls() []LedgerCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]LedgerCall(nil), m.calls...)
}

// NewLedgerWithError creates a Ledger that always fails with err.
func NewLedgerWithError(err error) *Ledger {
	return &Ledger{Err: err}
}

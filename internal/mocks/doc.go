// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these
// standardized implementations are shared across test packages. Each mock
// exposes function fields for overriding behavior per test, plus call
// tracking for verification.
//
// Usage:
//
//	import "github.com/phrazzld/amora-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    scorer := mocks.NewScorerWithScore(7.5)
//	    // inject into the component under test...
//	}
package mocks

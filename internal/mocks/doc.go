// Package mocks provides hand-written test doubles for the store, cache
// and auth interfaces. The defaults behave like small in-memory
// implementations; function fields override individual methods per test.
package mocks

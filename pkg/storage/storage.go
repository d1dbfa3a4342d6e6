// Package storage holds the storage sentinels and the record-level store
// interfaces shared by the backends. Policy state stores are declared by the
// packages that own the rules (limits, whitelist, pending).
package storage

// Storage defines the root interface for the account directory and the signal
// journal. Components should depend on the granular interfaces instead.
type Storage interface {
	AccountStore
	EventStore
}

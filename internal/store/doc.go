// Package store implements the application state store: three slices
// (product, user, cart), a closed intent type per slice, and pure
// reducers that compute the next slice from (state, intent).
//
// # Overview
//
// The store is the single place state changes. Effects (network calls,
// local persistence) happen in the action layer; the store only applies
// the intents that layer dispatches, one at a time under a mutex:
//
//	Action Layer:                       UI:
//	┌─────────────────────┐            ┌──────────────────────┐
//	│ api call / persist  │            │                      │
//	│        ↓            │            │                      │
//	│ store.Dispatch(in)  │───────────→│ store.Product() etc. │
//	│        ↓            │  (mutex)   │        ↓             │
//	│   next action...    │            │   render views       │
//	└─────────────────────┘            └──────────────────────┘
//
// # Intents
//
// Each slice declares a sealed intent interface (ProductIntent,
// UserIntent, CartIntent) embedding the package-level Intent marker.
// Reducers switch exhaustively over the concrete intent types, which
// keeps every transition testable as a pure function.
//
// # Snapshots
//
// Product(), User(), and Cart() return deep copies, so callers can hold a
// snapshot across renders without racing later dispatches.
//
// # Rehydration
//
// New(Seed) restores the externally persisted subset (favorites, session
// record, cart items) into the initial slices, so a restart observes
// exactly what the local store last flushed.
package store

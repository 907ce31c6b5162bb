// Package app provides the orchestration layer for the Vitrine application.
//
// # Overview
//
// This package wires together configuration, logging, the local store, the
// API client, the state store, the action layer and the UI. It serves as
// the composition root where all dependencies are initialized and
// connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load configuration from ~/.config/vitrine/config.toml
//  2. Open the append-only log file under the data directory
//  3. Open the persisted key/value store (favorites, session, cart)
//  4. Initialize the HTTP client for the storefront API
//  5. Seed the state store from the persisted key/value store
//  6. Build the action layer on top of client, store and key/value store
//  7. Start the TUI and block until the user exits or the context cancels
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()           Read config + env overrides
//	       ├─────> openLogger()            File-backed zerolog logger
//	       ├─────> localstore.Open()       Persisted key/value store
//	       ├─────> api.NewClient()         Storefront HTTP client
//	       ├─────> actions.SeedFromStore() Rehydrate persisted slices
//	       ├─────> store.New(seed)         In-memory state store
//	       ├─────> actions.New()           Action layer
//	       └─────> ui.Run()                Start TUI (blocks)
//
// Unlike a polling dashboard there is no background refresh goroutine:
// every server interaction is initiated by a user-driven action, and the
// UI re-reads store snapshots on its own tick to render progress.
package app

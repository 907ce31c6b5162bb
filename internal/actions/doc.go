// Package actions implements the effect layer: every user-initiated
// operation against the storefront API, the persisted local store, and
// the state store, in the order the contracts require.
//
// # Ordering discipline
//
// Within one action the loading-begin intent always precedes the network
// call, and the terminal intent (success or error) plus the loading clear
// always follow response resolution. The loading clear runs as a deferred
// release so it executes on every exit path.
//
// Local persistence always happens before the matching dispatch: a crash
// between the two leaves the disk ahead of the UI, never behind it, so a
// restart observes at least what the user last saw confirmed.
//
// # Failure conversion
//
// No failure propagates out of an action. Every request failure is
// converted to a single human-readable string by priority: the server's
// structured message, then the error text, then the action's fixed
// default, and dispatched into the owning slice's error field. Errors are
// only cleared by the explicit reset actions.
//
// # Catalog generations
//
// Actions run concurrently without mutual exclusion, so a slow page fetch
// could settle after a favorites-only view was applied and overwrite it.
// A generation counter makes the policy deterministic: applying a new
// catalog view invalidates every older in-flight fetch, whose results are
// dropped on arrival. The newest intent always wins.
package actions

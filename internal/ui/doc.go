// Package ui provides the terminal user interface for Vitrine.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program following the Model/Update/View loop.
// It never mutates application state directly: key presses build
// commands that invoke actions, and the actions dispatch intents into
// the store. The model re-reads store snapshots periodically and after
// each settled action, so progress made by in-flight actions (loading
// flags, errors, server messages) becomes visible without any direct
// coupling between the store and the renderer.
//
// # Package Structure
//
//   - app.go: Model, Options, messages, commands and the Run function
//   - keys.go: key bindings
//   - input_handlers.go: per-view keyboard handling
//   - forms.go: account and review forms built on bubbles textinput
//   - views.go: catalog, detail, account and orders renderers
//   - theme.go: color themes and Lipgloss styles
//
// # View Types
//
// Four views are available: the product catalog (default), a product
// detail view with reviews, the account view with sign-in, registration
// and password reset forms, and the order history view.
package ui

// Package config handles loading and parsing Vitrine configuration.
//
// # Overview
//
// This package reads Vitrine's TOML configuration to discover the
// storefront API endpoint, the local data directory, and request timeout.
// Configuration is intentionally small: the application works with a
// single required value (the API URL) and sensible defaults for the rest.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/vitrine/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. Apply environment overrides (VITRINE_API_URL, VITRINE_DATA_DIR),
//     loading a .env file from the working directory when present
//
// # Default Values
//
//   - Config file: ~/.config/vitrine/config.toml
//   - Data directory: ~/.local/share/vitrine
//   - Key/value store: <data_dir>/store.json
//   - Log file: <data_dir>/vitrine.log
//   - Request timeout: 10 seconds
//
// # TOML Format
//
// Example config.toml:
//
//	api_url = "https://shop.example.com/prod"
//	data_dir = "~/.local/share/vitrine"
//	timeout_seconds = 10
//
// All fields are optional in the file; the API URL can come from the
// environment instead. Tilde expansion is performed automatically.
//
// # Error Handling
//
// Load returns errors for path expansion failures, file read errors
// (except os.ErrNotExist, which triggers defaults), and TOML parsing
// errors. Missing config files are NOT an error.
package config

// Package file provides the TOML configuration store.
//
// Settings live in ~/.equipcheck/config.toml by default. Keys are addressed in
// dot notation ("storage.data_dir") and stored as nested tables.
package file

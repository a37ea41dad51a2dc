// Package memory provides in-memory implementations of driven port interfaces.
// They are used as substitutes for the SQLite store in tests.
package memory

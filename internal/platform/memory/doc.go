// Package memory provides in-memory implementations of the store interfaces,
// used by tests and anywhere a service needs storage without a database.
package memory

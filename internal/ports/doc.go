// Package ports defines the interfaces (ports) that connect hostctl's
// operations to infrastructure adapters.
//
// # Port Interfaces
//
//   - [DocumentStore]: reads and writes a hosts file as a document
//   - [Locker]: serializes read-modify-write cycles across processes
//   - [Logger]: structured logging abstraction
//
// # Usage
//
// pkg/hostctl depends only on these interfaces. Infrastructure adapters
// (internal/adapters) implement them with the file system and OS file locks.
// Tests substitute in-memory implementations instead of patching global I/O.
package ports

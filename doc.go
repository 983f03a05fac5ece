// Package sessionkit is the client-session and credential-flow core of the
// SkillSwap skills-exchange application. It owns the single source of truth for
// "who is the current user and what can they do": the authentication state
// machine (password login, optional second factor, password sub-flows), a
// normalized cache of user records kept consistent with that session, the
// credential validation schemas, and the permission vocabulary that
// authorization checks are built from.
//
// Network transports and credential persistence are consumed through interfaces
// supplied to [Builder]; sessionkit never opens a connection of its own.
//
// # Architecture boundaries
//
// sessionkit is the public surface. It exposes [Manager], [Builder], [Config],
// and value types (Snapshot, LoginResult, MetricsSnapshot). Event dispatch
// coordination lives under internal/ and is never exported directly; sinks are
// re-exported as type aliases.
//
// # What this package must NOT do
//
//   - Perform authorization on unconfirmed sessions: the optimistic bootstrap
//     guess from a persisted token is a UI hint, never an access decision.
//   - Propagate storage failures: a broken credential store degrades to
//     "assume anonymous".
//   - Perform I/O outside of Manager methods (construction via Builder is
//     allocation-only until Build).
//
// # Failure contract
//
// Nothing in this package is fatal to the process. Validation and transport
// failures are recoverable and land in the relevant flow's error state; the
// worst outcome of any operation is reverting to the anonymous session.
package sessionkit

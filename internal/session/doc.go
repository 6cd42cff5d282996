// Package session owns the session lifecycle: issuing opaque tokens with a
// per-principal cap, validating them, and revoking them.
//
// Two kinds of keys are kept in the store:
//
//	sessionToken-<token>  JSON {"email","userId","role","createdAt"}, TTL = session lifetime
//	<principalId>         list of tokens, oldest first, TTL = newest session's lifetime
//
// Issuance is a sequence of independent store calls, not a transaction. Two
// concurrent logins by the same principal can both see a short index and skip
// eviction, so MaxSessions is a soft bound under concurrency.
//
// The index expiry is reset to the newest session's lifetime on every
// issuance. A one-day session issued after a thirty-day one lets the index
// expire first, leaving the older record valid but no longer counted or
// evictable.
package session

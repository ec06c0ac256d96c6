// Package credstore is the durable slot holding the bearer token between
// runs. The token is opaque: nothing here inspects its contents.
package credstore

import "context"

// Store persists a single opaque token.
//
// Contract:
//   - Save replaces whatever token is stored.
//   - Load reports (token, true) when one is stored. Any storage failure is
//     treated as "no stored token": Load fails open to unauthenticated and
//     never returns an error to the caller.
//   - Clear removes the stored token.
//
// Exactly one writer (the session manager) may mutate the store.
type Store interface {
	Save(ctx context.Context, token string) error
	Load(ctx context.Context) (string, bool)
	Clear(ctx context.Context) error
}

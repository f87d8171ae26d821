// Package auth implements the TickTick OAuth2 authorization code flow
// and the on-disk token store.
//
// The flow uses a loopback redirect: a one-shot HTTP listener on
// 127.0.0.1 receives the authorization code, the code is exchanged for
// an access token, and the token is persisted as a single opaque string
// in the user's cache directory.
package auth

// Package jwt issues and verifies the session access tokens handed out after
// a successful one-time code sign-in.
//
// Tokens are HS512 signed. The subject is the resolved identity id and the
// payload carries the channel and destination the identity signed in with.
package jwt

// Package codestore keeps short-lived verification codes keyed by channel and
// identity.
//
// Every record lives under "<channel>:<identity>", so the same identity string
// issued on two channels never shares a code. Verification goes through
// VerifyAndConsume, which compares and deletes in one atomic step: a code can
// succeed at most once even when two requests race on the same key.
package codestore

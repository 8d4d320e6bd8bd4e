// Package filter implements the predicate pipeline over listing views. Every
// predicate is a pure set intersection returning a fresh slice, so applying
// the five criteria dimensions in any order yields the same view. Empty or
// unset criteria are identities: an unselected filter never excludes rows.
package filter

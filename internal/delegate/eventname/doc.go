// Package eventname holds the static event-name data used by the delegation
// manager: the default event list bound by BindDefaultEvents and the set of
// names that must be observed in the capture phase because the native
// platform does not bubble them.
//
// Both tables are immutable. Callers receive copies and cannot alter the
// package state.
package eventname

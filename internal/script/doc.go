// Package script runs Lua listener scripts against a delegation manager.
//
// A script sees a global table named delegate:
//
//	delegate.bind(name)              bind an event name
//	delegate.unbind([name])          unbind one name, or all of them
//	delegate.bound()                 list of bound names
//	delegate.on(event, id, fn)       register fn for the element with id
//	delegate.off(event [, id [, fn]])
//	delegate.trigger(event, id)      dispatch a synthetic native event
//
// Listener functions receive an event userdata with the fields type, name,
// id, target, delegate_target, stopped and detail, and the methods
// stop_propagation() and is_propagation_stopped().
//
// Passing the same Lua function to on twice registers it once. A Lua error
// raised by a listener panics with a *Error so that it aborts the bubble
// walk like any other listener panic.
//
// The Lua state runs with the base, table, string and math libraries only.
// An Engine is not safe for concurrent use.
package script

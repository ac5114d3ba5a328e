// Package dom is a small in-memory document model with native event
// dispatch.
//
// Documents are built from HTML with golang.org/x/net/html. Only element
// nodes are kept; text and comments are dropped. A Document implements
// delegate.Bridge and delegate.RootProvider, so it can back a delegation
// manager directly:
//
//	doc, _ := dom.ParseString(`<div id="a"><button id="b"></button></div>`)
//	mgr, _ := delegate.New(handler, delegate.WithBridge(doc))
//	mgr.Bind("click")
//	doc.Dispatch(dom.NewEvent("click", doc.GetElementByID("b")))
//
// Dispatch follows the platform model: a capture phase from the root down
// to the target's parent, an at-target phase, then a bubble phase back up to
// the root for events that bubble. Non-bubbling events (focus, blur,
// mouseenter, mouseleave, ...) are only observable at ancestors through
// capture listeners.
//
// The package is not safe for concurrent use.
package dom

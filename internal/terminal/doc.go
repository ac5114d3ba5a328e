// Package terminal drives a document from terminal input.
//
// Elements carrying a data-box="x y w h" attribute are laid out on the
// screen. Mouse input is hit tested against those boxes and translated into
// native DOM events (mousedown, mouseup, click, dblclick, mousemove,
// mouseover, mouseout, mouseenter, mouseleave, wheel). Key input goes to the
// focused element as keydown, keypress and keyup. Pressing the mouse on an
// element focuses it, dispatching blur and focus.
//
// The Source is single threaded: Handle and Run must be called from one
// goroutine. Work from other goroutines is queued with Post and runs on the
// Run loop.
package terminal

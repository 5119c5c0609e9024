// Package measure implements the interactive two-click distance tool.
//
// A Session is a two-state machine. From StateEmpty a click is buffered and
// marked; from StateWaiting the second click completes the pair, the
// distance is drawn and printed, and the session returns to StateEmpty with
// an empty buffer. The buffer never holds more than one point between clicks.
//
// The session also carries the ordered list of detected objects for the
// run, so that the whole run's mutable state lives in one value instead of
// package globals.
package measure

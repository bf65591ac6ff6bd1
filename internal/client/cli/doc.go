// Package cli implements the interactive terminal client for the Smart
// Campus Assistant.
//
// The App type wires configuration, the local database, the session store
// and the view-state services together, and drives a read-eval-print loop
// on stdin. Every command is gated through the navigation guards before it
// is dispatched, so an anonymous or under-privileged user is redirected the
// same way the web views would redirect them.
package cli

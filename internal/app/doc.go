// Package app wires the application together: logging, case file loading,
// machine lookup, history recording, and the execution pipeline. The CLI
// layer translates flags into an app.Config; everything else happens here.
package app

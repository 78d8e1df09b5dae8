// Package cli implements the interactive postboard client.
//
// The REPL reads one command per line and dispatches it to an App method.
// Commands that change posts need a prior register or login; the token is
// held by the gRPC client for the lifetime of the process.
package cli

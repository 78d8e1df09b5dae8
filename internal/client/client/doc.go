// Package client talks to the postboard backend over gRPC.
//
// GRPCClient keeps the access token returned by Register or Login in memory
// and attaches it to every outgoing call through a unary interceptor. Server
// status codes are mapped to the sentinel errors in errors.go so callers can
// match them with errors.Is.
package client

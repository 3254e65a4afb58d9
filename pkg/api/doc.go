// Package api defines the request and response messages of the settleup.v1
// services. Messages are plain structs encoded as JSON on the wire; monetary
// amounts are decimal strings with two fractional digits (e.g. "1250.50").
package api

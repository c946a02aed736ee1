// Package tlsroots builds the trust store for outgoing HTTPS requests:
// the system roots plus an optional PEM bundle, for networks that
// intercept TLS with their own CA.
package tlsroots

// Package clientip resolves the address of the client behind a request.
//
// Proxy headers are only meaningful when a trusted proxy sets them, so the
// Resolver is configured with the headers to trust:
//
//	res := clientip.NewResolver("CF-Connecting-IP", "X-Forwarded-For")
//	router.Use(res.Middleware)
//
// Addresses are normalized with net/netip so the same client always maps to
// the same rate limit key.
package clientip

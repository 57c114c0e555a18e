// Package ratelimiter implements an in-memory token bucket per key with an
// HTTP middleware.
//
//	l, err := ratelimiter.New(ratelimiter.Config{
//		Capacity:       20,
//		RefillRate:     10,
//		RefillInterval: time.Second,
//	})
//	if err != nil {
//		return err
//	}
//	defer l.Close()
//	router.Use(ratelimiter.Middleware(l, resolver.KeyFunc, nil))
//
// Each key starts with a full bucket of Capacity tokens and regains
// RefillRate tokens every RefillInterval, never exceeding Capacity.
package ratelimiter

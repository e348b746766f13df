// Package ratelimit provides a sliding-window call limiter shared by the
// stdio bridge and the REST surface.
//
// The limiter counts accepted calls inside a moving window (one minute for
// the bridge) and rejects calls once the budget is spent. Rejections are not
// recorded, so a client hammering a full window does not push its own
// recovery further out. A budget of zero disables limiting entirely, which
// is how RATE_LIMIT_PER_MINUTE=0 is wired through.
package ratelimit

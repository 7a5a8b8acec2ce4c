// Package async runs functions in their own goroutines and hands back
// typed futures for their results.
//
// It exists for startup work that is independent and slow, such as
// opening connections to several stores at once: launch each task with
// Async, keep doing other setup, and Await the results where they are
// first needed. Each future is resolved exactly once and can be awaited
// any number of times, from any goroutine.
//
//	redisFut := async.Async(ctx, redisCfg, redis.Connect)
//	pgFut := async.Async(ctx, pgCfg, pg.Connect)
//
//	client, err := redisFut.Await()
//	pool, err := pgFut.Await()
//
// AwaitContext bounds the wait with a context instead of blocking
// forever, and All drains a batch of same-typed futures, joining every
// error rather than stopping at the first, so one startup pass surfaces
// everything that is broken.
package async

// Package async provides a small generic Future used for deferred validation
// results.
//
// Async starts a function on its own goroutine and returns a *Future. Resolved
// and Rejected build completed futures, which is handy for validators whose
// result is sometimes known immediately. Await blocks, AwaitContext blocks
// until the context is done, AwaitWithTimeout gives up after a duration and
// IsComplete polls.
//
// Every *Future implements Resolve(ctx) (any, error), so a validator may
// return one and the registry awaits it with the caller's context before
// shaping the error:
//
//	reg.Add("exists", validator.CallFunc(func(c validator.Call) any {
//	    return async.Async(c.Context, c.Value, lookupUser)
//	}))
//
// The package imposes no timeout on its own; use AwaitWithTimeout or a context
// deadline when one is needed.
package async

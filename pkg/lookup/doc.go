// Package lookup provides validators backed by Redis and PostgreSQL.
//
// Each validator returns a future from pkg/async; the registry awaits it with
// the caller's context, so a canceled request stops waiting for the store.
// Store errors are reported as exceptions wrapping ErrLookupFailed and go
// through the registry's exception handlers.
//
//	client, err := lookup.ConnectRedis(ctx, redisCfg)
//	reg.Add("freeUsername", lookup.RedisUnique(client, lookup.PrefixKey("user:")))
//
//	pool, err := lookup.ConnectPG(ctx, pgCfg)
//	reg.Add("knownAccount", lookup.RowExists(pool, "accounts", "id"))
//
// Failures use the messages "%{value} does not exist" (code lookup.not_found)
// and "%{value} is already taken" (code lookup.taken); override them with the
// usual message option or entry message.
package lookup

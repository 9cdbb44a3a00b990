// Package pg bootstraps the PostgreSQL layer: pooled connections via pgx/v5,
// schema migrations via goose/v3, a health check closure, and error
// classification helpers.
//
// Config is populated from environment variables (see the field tags).
// Typical startup:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil { ... }
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil { ... }
//
// Business code classifies storage errors with IsNotFoundError,
// IsDuplicateKeyError and IsForeignKeyViolationError instead of matching on
// driver internals.
package pg

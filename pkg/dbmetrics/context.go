package dbmetrics

import "context"

type txContextKey struct{}

// WithExecutor кладет транзакционный executor в context
// Репозитории, получив такой context, выполняют запросы в рамках транзакции
func WithExecutor(ctx context.Context, executor DBExecutor) context.Context {
	return context.WithValue(ctx, txContextKey{}, executor)
}

// GetExecutor возвращает executor из context, если там есть активная транзакция,
// иначе возвращает fallback (обычно это *sql.DB или *dbmetrics.DB репозитория)
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if executor, ok := ctx.Value(txContextKey{}).(DBExecutor); ok {
		return executor
	}
	return fallback
}

// IsInTransaction возвращает true, если в context есть активная транзакция
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txContextKey{}).(DBExecutor)
	return ok
}

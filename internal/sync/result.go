package sync

// Result is the outcome of a store mutation. A failed mutation leaves
// local state untouched; the caller inspects OK and decides whether to
// apply an optimistic local patch instead of silently degrading.
type Result[T any] struct {
	OK     bool
	Record T
	Reason string
}

func ok[T any](record T) Result[T] {
	return Result[T]{OK: true, Record: record}
}

func failure[T any](err error) Result[T] {
	return Result[T]{Reason: err.Error()}
}

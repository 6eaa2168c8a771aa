package types

import (
	"context"
	"fmt"
)

// Result 是一次异步调用的结果。
type Result[T any] struct {
	Value T
	Err   error
}

// Unwrap 返回 Value 与 Err。
func (r Result[T]) Unwrap() (T, error) {
	return r.Value, r.Err
}

// Go 在独立 goroutine 中执行 fn，并在带缓冲的通道上恰好投递一次结果后关闭通道。
// 调用方不读取结果时 goroutine 也不会阻塞。fn 中的 panic 会被转换为错误结果。
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		defer close(ch)
		defer func() {
			if r := recover(); r != nil {
				ch <- Result[T]{Err: fmt.Errorf("async call panicked: %v", r)}
			}
		}()
		v, err := fn(ctx)
		ch <- Result[T]{Value: v, Err: err}
	}()
	return ch
}

// Await 等待异步结果；ctx 先结束时返回 ctx.Err()。
func Await[T any](ctx context.Context, ch <-chan Result[T]) (T, error) {
	select {
	case r, ok := <-ch:
		if !ok {
			var zero T
			return zero, fmt.Errorf("async result channel closed without a value")
		}
		return r.Value, r.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

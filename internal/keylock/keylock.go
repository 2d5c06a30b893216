// Package keylock реализует взаимное исключение операций по ключу.
package keylock

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Registry выдаёт по ключу блокировку и гарантирует, что в каждый момент
// времени выполняется не более одной операции для одного ключа. Операции
// с разными ключами друг друга не ждут.
type Registry struct {
	mu    sync.Mutex
	locks map[int64]*semaphore.Weighted
}

// New создаёт пустой реестр блокировок.
func New() *Registry {
	return &Registry{
		locks: make(map[int64]*semaphore.Weighted),
	}
}

// handle возвращает семафор ключа, создавая его при первом обращении.
// Повторная вставка того же ключа всегда разрешается в один и тот же семафор.
func (r *Registry) handle(key int64) *semaphore.Weighted {
	r.mu.Lock()
	defer r.mu.Unlock()

	sem, ok := r.locks[key]
	if !ok {
		sem = semaphore.NewWeighted(1)
		r.locks[key] = sem
	}
	return sem
}

// RunExclusive выполняет fn под блокировкой ключа key. Горутина, ожидающая
// блокировку, приостанавливается, а не крутится в цикле. Блокировка
// освобождается на любом пути выхода, включая ошибку fn. Если контекст
// отменён до захвата блокировки, fn не вызывается и возвращается ошибка
// контекста.
func (r *Registry) RunExclusive(ctx context.Context, key int64, fn func() error) error {
	sem := r.handle(key)

	if err := sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer sem.Release(1)

	return fn()
}

// Package repository содержит in-memory реализацию хранилищ сервиса баллов.
package repository

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/mmeshcher/point-service/internal/model"
)

// Потолки случайной задержки чтения и записи по умолчанию.
const (
	DefaultReadLatency  = 200 * time.Millisecond
	DefaultWriteLatency = 300 * time.Millisecond
)

// PointTable хранит текущие балансы пользователей в памяти и имитирует
// задержку обращения к внешнему хранилищу. Таблица сама не сериализует
// операции над одним пользователем — это обязанность вызывающей стороны.
type PointTable struct {
	mu           sync.Mutex
	records      map[int64]model.UserPoint
	readLatency  time.Duration
	writeLatency time.Duration
}

// NewPointTable создаёт таблицу балансов с указанными потолками задержки.
// Нулевой или отрицательный потолок отключает задержку.
func NewPointTable(readLatency, writeLatency time.Duration) *PointTable {
	return &PointTable{
		records:      make(map[int64]model.UserPoint),
		readLatency:  readLatency,
		writeLatency: writeLatency,
	}
}

// Select возвращает сохранённый баланс пользователя либо нулевую запись,
// если пользователь ещё не встречался. Ошибкой завершается только при
// отмене контекста во время ожидания.
func (t *PointTable) Select(ctx context.Context, id int64) (model.UserPoint, error) {
	if err := throttle(ctx, t.readLatency); err != nil {
		return model.UserPoint{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if p, ok := t.records[id]; ok {
		return p, nil
	}
	return model.UserPoint{ID: id, Point: 0, UpdateMillis: time.Now().UnixMilli()}, nil
}

// Upsert сохраняет новый баланс пользователя с текущей меткой времени,
// замещая прежнюю запись.
func (t *PointTable) Upsert(ctx context.Context, id, amount int64) (model.UserPoint, error) {
	if err := throttle(ctx, t.writeLatency); err != nil {
		return model.UserPoint{}, err
	}

	p := model.UserPoint{ID: id, Point: amount, UpdateMillis: time.Now().UnixMilli()}

	t.mu.Lock()
	t.records[id] = p
	t.mu.Unlock()

	return p, nil
}

// throttle блокирует вызов на случайное время до max.
// Мьютекс таблицы на время ожидания не удерживается.
func throttle(ctx context.Context, max time.Duration) error {
	if max <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(rand.N(max))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

package repository

import (
	"sync"

	"github.com/mmeshcher/point-service/internal/model"
)

// HistoryTable хранит журнал завершённых операций с балансами.
// Записи только добавляются и никогда не изменяются.
type HistoryTable struct {
	mu      sync.Mutex
	entries map[int64][]model.PointHistory
}

// NewHistoryTable создаёт пустой журнал операций.
func NewHistoryTable() *HistoryTable {
	return &HistoryTable{
		entries: make(map[int64][]model.PointHistory),
	}
}

// Append добавляет запись в журнал пользователя. Всегда успешен.
func (t *HistoryTable) Append(userID, amount int64, kind model.TransactionType, updateMillis int64) model.PointHistory {
	entry := model.PointHistory{
		UserID:       userID,
		Amount:       amount,
		Type:         kind,
		UpdateMillis: updateMillis,
	}

	t.mu.Lock()
	t.entries[userID] = append(t.entries[userID], entry)
	t.mu.Unlock()

	return entry
}

// ListByUser возвращает все записи пользователя в порядке добавления.
// Для неизвестного пользователя возвращается пустой срез.
func (t *HistoryTable) ListByUser(userID int64) []model.PointHistory {
	t.mu.Lock()
	defer t.mu.Unlock()

	src := t.entries[userID]
	res := make([]model.PointHistory, len(src))
	copy(res, src)
	return res
}

// Package model содержит доменные сущности сервиса баллов.
package model

// UserPoint представляет текущий баланс баллов пользователя.
type UserPoint struct {
	ID           int64 `json:"id"`
	Point        int64 `json:"point"`
	UpdateMillis int64 `json:"updateMillis"`
}

// TransactionType описывает вид операции с балансом.
type TransactionType string

const (
	TransactionCharge TransactionType = "CHARGE"
	TransactionUse    TransactionType = "USE"
)

// PointHistory описывает одну завершённую операцию с балансом пользователя.
// Записи неизменяемы после добавления в журнал.
type PointHistory struct {
	UserID       int64           `json:"id"`
	Amount       int64           `json:"amount"`
	Type         TransactionType `json:"type"`
	UpdateMillis int64           `json:"updateMillis"`
}

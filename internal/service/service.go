// Package service реализует бизнес-логику сервиса баллов.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmeshcher/point-service/internal/model"
	"github.com/mmeshcher/point-service/internal/policy"
)

// ErrUserNotFound возвращается при попытке списания у пользователя без баланса.
var (
	ErrUserNotFound = errors.New("user not found")
	// ErrInsufficientBalance возвращается, если списание опустило бы баланс ниже нуля.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// PointRepository описывает контракт хранилища балансов, используемый сервисом.
type PointRepository interface {
	Select(ctx context.Context, id int64) (model.UserPoint, error)
	Upsert(ctx context.Context, id, amount int64) (model.UserPoint, error)
}

// HistoryRepository описывает контракт журнала операций.
type HistoryRepository interface {
	Append(userID, amount int64, kind model.TransactionType, updateMillis int64) model.PointHistory
	ListByUser(userID int64) []model.PointHistory
}

// Locker сериализует операции над одним пользователем.
type Locker interface {
	RunExclusive(ctx context.Context, key int64, fn func() error) error
}

// Service содержит бизнес-логику операций с баллами. Вся последовательность
// чтение-проверка-запись-журнал для одного пользователя выполняется под
// блокировкой этого пользователя.
type Service struct {
	points  PointRepository
	history HistoryRepository
	locks   Locker
	rules   policy.Rules
}

// NewService создаёт новый сервис с указанными хранилищами и реестром блокировок.
func NewService(points PointRepository, history HistoryRepository, locks Locker, rules policy.Rules) *Service {
	return &Service{
		points:  points,
		history: history,
		locks:   locks,
		rules:   rules,
	}
}

// Point возвращает текущий баланс пользователя. Чтение не сериализуется и
// отражает последнее зафиксированное значение на момент обращения.
func (s *Service) Point(ctx context.Context, id int64) (model.UserPoint, error) {
	return s.points.Select(ctx, id)
}

// Charge начисляет пользователю amount баллов. Если пользователь уже имеет
// положительный баланс, новая сумма складывается с текущей, иначе баланс
// устанавливается равным amount. При любой ошибке баланс и журнал не меняются.
func (s *Service) Charge(ctx context.Context, id, amount int64) (model.UserPoint, error) {
	var result model.UserPoint

	err := s.locks.RunExclusive(ctx, id, func() error {
		before, err := s.points.Select(ctx, id)
		if err != nil {
			return fmt.Errorf("select point: %w", err)
		}

		if err := s.rules.ValidateCharge(before.Point, amount); err != nil {
			return err
		}

		after := amount
		if before.Point > 0 {
			after = before.Point + amount
		}

		s.history.Append(id, after, model.TransactionCharge, time.Now().UnixMilli())

		result, err = s.points.Upsert(ctx, id, after)
		if err != nil {
			return fmt.Errorf("upsert point: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.UserPoint{}, err
	}

	return result, nil
}

// Use списывает у пользователя amount баллов. Нулевой текущий баланс означает
// отсутствие пользователя; списание ниже нуля запрещено. При любой ошибке
// баланс и журнал не меняются.
func (s *Service) Use(ctx context.Context, id, amount int64) (model.UserPoint, error) {
	var result model.UserPoint

	err := s.locks.RunExclusive(ctx, id, func() error {
		if err := policy.ValidateAmount(amount); err != nil {
			return err
		}

		before, err := s.points.Select(ctx, id)
		if err != nil {
			return fmt.Errorf("select point: %w", err)
		}

		if before.Point == 0 {
			return fmt.Errorf("%w: id=%d", ErrUserNotFound, id)
		}

		after := before.Point - amount
		if after < policy.MinPoint {
			return fmt.Errorf("%w: have %d, want %d", ErrInsufficientBalance, before.Point, amount)
		}

		s.history.Append(id, after, model.TransactionUse, time.Now().UnixMilli())

		result, err = s.points.Upsert(ctx, id, after)
		if err != nil {
			return fmt.Errorf("upsert point: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.UserPoint{}, err
	}

	return result, nil
}

// History возвращает журнал операций пользователя в порядке добавления.
// Чтение журнала не сериализуется.
func (s *Service) History(ctx context.Context, id int64) ([]model.PointHistory, error) {
	return s.history.ListByUser(id), nil
}

// Package handler содержит HTTP-обработчики API сервиса баллов.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	"github.com/mmeshcher/point-service/internal/model"
	"github.com/mmeshcher/point-service/internal/policy"
	"github.com/mmeshcher/point-service/internal/service"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	Point(ctx context.Context, id int64) (model.UserPoint, error)
	Charge(ctx context.Context, id, amount int64) (model.UserPoint, error)
	Use(ctx context.Context, id, amount int64) (model.UserPoint, error)
	History(ctx context.Context, id int64) ([]model.PointHistory, error)
}

// Handler реализует HTTP-обработчики API сервиса баллов.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: s,
		logger:  logger,
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeServiceError отвечает единым телом ошибки, не раскрывая её вид наружу.
func (h *Handler) writeServiceError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:    "500",
		Message: "internal error",
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func userIDFromRequest(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.New("user id must be positive")
	}
	return id, nil
}

func amountFromBody(r *http.Request) (int64, error) {
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(strings.TrimSpace(string(body)), 10, 64)
}

// GetPoint возвращает текущий баланс пользователя.
func (h *Handler) GetPoint(w http.ResponseWriter, r *http.Request) {
	id, err := userIDFromRequest(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	p, err := h.service.Point(r.Context(), id)
	if err != nil {
		h.logger.Error("get point error", zap.Error(err), zap.Int64("userID", id))
		h.writeServiceError(w)
		return
	}

	h.writeJSON(w, p)
}

// GetHistories возвращает журнал операций пользователя.
func (h *Handler) GetHistories(w http.ResponseWriter, r *http.Request) {
	id, err := userIDFromRequest(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	histories, err := h.service.History(r.Context(), id)
	if err != nil {
		h.logger.Error("get histories error", zap.Error(err), zap.Int64("userID", id))
		h.writeServiceError(w)
		return
	}

	h.writeJSON(w, histories)
}

// Charge начисляет пользователю баллы. Тело запроса — целое число.
func (h *Handler) Charge(w http.ResponseWriter, r *http.Request) {
	id, err := userIDFromRequest(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	amount, err := amountFromBody(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	p, err := h.service.Charge(r.Context(), id, amount)
	if err != nil {
		if errors.Is(err, policy.ErrPointOutOfRange) {
			h.writeServiceError(w)
			return
		}
		h.logger.Error("charge error", zap.Error(err), zap.Int64("userID", id), zap.Int64("amount", amount))
		h.writeServiceError(w)
		return
	}

	h.writeJSON(w, p)
}

// Use списывает у пользователя баллы. Тело запроса — целое число.
func (h *Handler) Use(w http.ResponseWriter, r *http.Request) {
	id, err := userIDFromRequest(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	amount, err := amountFromBody(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	p, err := h.service.Use(r.Context(), id, amount)
	if err != nil {
		if errors.Is(err, policy.ErrPointOutOfRange) ||
			errors.Is(err, service.ErrUserNotFound) ||
			errors.Is(err, service.ErrInsufficientBalance) {
			h.writeServiceError(w)
			return
		}
		h.logger.Error("use error", zap.Error(err), zap.Int64("userID", id), zap.Int64("amount", amount))
		h.writeServiceError(w)
		return
	}

	h.writeJSON(w, p)
}

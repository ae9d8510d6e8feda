package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/iudanet/coffeecloud/pkg/api"
)

// maxBodySize ограничивает размер JSON тела запроса
const maxBodySize = 1 << 20

// responder содержит общие для всех handlers методы ответа
type responder struct {
	logger *slog.Logger
}

// sendJSON отправляет JSON ответ
func (h responder) sendJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func (h responder) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}

// sendMessage отправляет подтверждение операции
func (h responder) sendMessage(w http.ResponseWriter, message string, statusCode int) {
	h.sendJSON(w, api.MessageResponse{Message: message}, statusCode)
}

// internalError логирует причину и отдает клиенту generic 500
func (h responder) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg, slog.Any("error", err))
	h.sendError(w, "internal server error", http.StatusInternalServerError)
}

// decodeJSON читает тело запроса в dst
// При ошибке отправляет 400 и возвращает false
func (h responder) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.WarnContext(r.Context(), "failed to decode request body",
			slog.String("path", r.URL.Path), slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// requireUser достает user_id из контекста, выставленного AuthMiddleware
func (h responder) requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.logger.ErrorContext(r.Context(), "user_id not found in context")
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

// parseID разбирает положительный целочисленный идентификатор
func parseID(s, field string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", field)
	}
	return id, nil
}

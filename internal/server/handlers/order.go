package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/iudanet/coffeecloud/internal/events"
	"github.com/iudanet/coffeecloud/internal/models"
	"github.com/iudanet/coffeecloud/internal/server/storage"
	"github.com/iudanet/coffeecloud/pkg/api"
)

// OrderHandler обрабатывает запросы журнала заказов
type OrderHandler struct {
	responder
	orderStorage storage.OrderStorage
	publisher    events.Publisher
}

// NewOrderHandler создает новый handler заказов
func NewOrderHandler(logger *slog.Logger, orderStorage storage.OrderStorage, publisher events.Publisher) *OrderHandler {
	return &OrderHandler{
		responder:    responder{logger: logger},
		orderStorage: orderStorage,
		publisher:    publisher,
	}
}

// List обрабатывает GET /order
// ?history=true возвращает obsolete заказы, иначе активные
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	status := models.OrderActive
	if v := r.URL.Query().Get("history"); v != "" {
		history, err := strconv.ParseBool(v)
		if err != nil {
			h.sendError(w, "history must be true or false", http.StatusBadRequest)
			return
		}
		if history {
			status = models.OrderObsolete
		}
	}

	orders, err := h.orderStorage.ListOrders(r.Context(), userID, status)
	if err != nil {
		h.internalError(w, r, "failed to list orders", err)
		return
	}

	resp := make([]api.OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// Create обрабатывает POST /order
// Повторяющиеся menu_id объединяются суммированием counts
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req api.OrderRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	lines := make([]models.OrderLine, 0, len(req.Order))
	for _, l := range req.Order {
		lines = append(lines, models.OrderLine{MenuID: l.MenuID, Counts: l.Counts})
	}

	lines, err := models.NormalizeLines(lines)
	if err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	order := &models.Order{
		UserID:            userID,
		CustomizedMessage: req.Message,
		Lines:             lines,
	}

	if err := h.orderStorage.PlaceOrder(ctx, order); err != nil {
		if errors.Is(err, storage.ErrMenuNotFound) {
			h.logger.WarnContext(ctx, "order references unusable menu",
				slog.Int64("user_id", userID), slog.Any("error", err))
			h.sendError(w, err.Error(), http.StatusNotFound)
			return
		}
		h.internalError(w, r, "failed to place order", err)
		return
	}

	h.logger.InfoContext(ctx, "order placed",
		slog.Int64("user_id", userID),
		slog.Int64("order_id", order.ID),
		slog.Int("lines", len(order.Lines)))

	h.publish(ctx, events.NewOrderPlaced(order))

	h.sendJSON(w, api.OrderCreatedResponse{
		OrderID: order.ID,
		Message: "Order placed successfully.",
	}, http.StatusCreated)
}

// Get обрабатывает GET /order/{id}
// Obsolete заказы возвращаются с is_obsolete=true; чужой заказ дает 404
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	orderID, err := parseID(r.PathValue("id"), "order id")
	if err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.orderStorage.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			h.sendError(w, "order not found", http.StatusNotFound)
			return
		}
		h.internalError(w, r, "failed to get order", err)
		return
	}

	if order.UserID != userID {
		h.logger.WarnContext(r.Context(), "order of another user requested",
			slog.Int64("user_id", userID), slog.Int64("order_id", orderID))
		h.sendError(w, "order not found", http.StatusNotFound)
		return
	}

	h.sendJSON(w, toOrderResponse(order), http.StatusOK)
}

// Invalidate обрабатывает PATCH /order/{id}
// Переводит заказ в obsolete; вызывается устройствами выдачи без токена
func (h *OrderHandler) Invalidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := parseID(r.PathValue("id"), "order id")
	if err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.orderStorage.InvalidateOrder(ctx, orderID); err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			h.sendError(w, "order not found", http.StatusNotFound)
			return
		}
		h.internalError(w, r, "failed to invalidate order", err)
		return
	}

	h.logger.InfoContext(ctx, "order invalidated", slog.Int64("order_id", orderID))

	h.publish(ctx, events.NewOrderObsolete(orderID))

	h.sendMessage(w, fmt.Sprintf("Order %d is obsolete", orderID), http.StatusOK)
}

// publish отправляет событие; ошибка брокера не влияет на ответ клиенту
func (h *OrderHandler) publish(ctx context.Context, event events.Event) {
	publishEvent(ctx, h.logger, h.publisher, event)
}

func publishEvent(ctx context.Context, logger *slog.Logger, publisher events.Publisher, event events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "failed to publish event",
			slog.String("type", string(event.Type)),
			slog.Int64("order_id", event.OrderID),
			slog.Any("error", err))
	}
}

func toOrderResponse(o *models.Order) api.OrderResponse {
	lines := make([]api.OrderLine, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, api.OrderLine{MenuID: l.MenuID, Counts: l.Counts})
	}

	return api.OrderResponse{
		OrderID:       o.ID,
		Message:       o.CustomizedMessage,
		OrderContents: lines,
		IsObsolete:    o.IsObsolete(),
		CreatedAt:     o.CreatedAt,
	}
}

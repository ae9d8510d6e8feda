package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/coffeecloud/internal/events"
	"github.com/iudanet/coffeecloud/internal/models"
	"github.com/iudanet/coffeecloud/internal/server/storage"
	"github.com/iudanet/coffeecloud/pkg/api"
)

// maxSerialLength ограничивает длину серийного номера
const maxSerialLength = 128

// SerialHandler обрабатывает привязку серийных номеров к заказам
type SerialHandler struct {
	responder
	serialStorage storage.SerialStorage
	publisher     events.Publisher
}

// NewSerialHandler создает новый handler серийных номеров
func NewSerialHandler(logger *slog.Logger, serialStorage storage.SerialStorage, publisher events.Publisher) *SerialHandler {
	return &SerialHandler{
		responder:     responder{logger: logger},
		serialStorage: serialStorage,
		publisher:     publisher,
	}
}

// Get обрабатывает GET /serial_number
// ?order_id= возвращает все привязки заказа,
// ?serial_number= возвращает заказ последней привязки номера
func (h *SerialHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	orderParam := query.Get("order_id")
	serial := strings.TrimSpace(query.Get("serial_number"))

	switch {
	case orderParam != "" && serial != "":
		h.sendError(w, "use either order_id or serial_number", http.StatusBadRequest)

	case orderParam != "":
		orderID, err := parseID(orderParam, "order_id")
		if err != nil {
			h.sendError(w, err.Error(), http.StatusBadRequest)
			return
		}

		links, err := h.serialStorage.GetSerialsByOrder(ctx, orderID)
		if err != nil {
			h.internalError(w, r, "failed to get serial numbers", err)
			return
		}

		resp := make([]api.SerialLinkResponse, 0, len(links))
		for _, l := range links {
			resp = append(resp, api.SerialLinkResponse{SerialNumber: l.SerialNumber, MenuID: l.MenuID})
		}
		h.sendJSON(w, resp, http.StatusOK)

	case serial != "":
		lookup, err := h.serialStorage.FindSerial(ctx, serial)
		if err != nil {
			if errors.Is(err, storage.ErrSerialNotFound) {
				h.sendError(w, "serial number not found", http.StatusNotFound)
				return
			}
			h.internalError(w, r, "failed to find serial number", err)
			return
		}

		h.sendJSON(w, api.SerialLookupResponse{
			OrderID:           lookup.OrderID,
			MenuID:            lookup.MenuID,
			CustomizedMessage: lookup.CustomizedMessage,
		}, http.StatusOK)

	default:
		h.sendError(w, "order_id or serial_number is required", http.StatusBadRequest)
	}
}

// Link обрабатывает POST /serial_number
// Повторная привязка той же тройки дает 409
func (h *SerialHandler) Link(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SerialLinkRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	link := &models.SerialLink{
		OrderID:      req.OrderID,
		MenuID:       req.MenuID,
		SerialNumber: strings.TrimSpace(req.SerialNumber),
	}

	switch {
	case link.SerialNumber == "":
		h.sendError(w, "serial_number is required", http.StatusBadRequest)
		return
	case len(link.SerialNumber) > maxSerialLength:
		h.sendError(w, "serial_number is too long", http.StatusBadRequest)
		return
	case link.OrderID <= 0 || link.MenuID <= 0:
		h.sendError(w, "order_id and menu_id must be positive integers", http.StatusBadRequest)
		return
	}

	if err := h.serialStorage.LinkSerial(ctx, link); err != nil {
		switch {
		case errors.Is(err, storage.ErrSerialAlreadyLinked):
			h.sendError(w, "serial number already linked to this order and menu", http.StatusConflict)
		case errors.Is(err, storage.ErrOrderNotFound):
			h.sendError(w, "order not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrOrderLineNotFound):
			h.sendError(w, "menu is not part of the order", http.StatusNotFound)
		default:
			h.internalError(w, r, "failed to link serial number", err)
		}
		return
	}

	h.logger.InfoContext(ctx, "serial number linked",
		slog.Int64("order_id", link.OrderID),
		slog.Int64("menu_id", link.MenuID),
		slog.String("serial_number", link.SerialNumber))

	publishEvent(ctx, h.logger, h.publisher, events.NewSerialLinked(link))

	h.sendMessage(w, "link serial success.", http.StatusCreated)
}

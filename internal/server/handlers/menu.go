package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/coffeecloud/internal/models"
	"github.com/iudanet/coffeecloud/internal/server/storage"
	"github.com/iudanet/coffeecloud/pkg/api"
)

// MenuHandler обрабатывает запросы каталога профилей напитков
type MenuHandler struct {
	responder
	menuStorage storage.MenuStorage
}

// NewMenuHandler создает новый handler меню
func NewMenuHandler(logger *slog.Logger, menuStorage storage.MenuStorage) *MenuHandler {
	return &MenuHandler{
		responder:   responder{logger: logger},
		menuStorage: menuStorage,
	}
}

// List обрабатывает GET /menu
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	menus, err := h.menuStorage.ListMenus(r.Context(), userID)
	if err != nil {
		h.internalError(w, r, "failed to list menus", err)
		return
	}

	resp := make([]api.MenuResponse, 0, len(menus))
	for _, m := range menus {
		resp = append(resp, toMenuResponse(m))
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// Create обрабатывает POST /menu
// Все поля конфигурации проверяются до записи
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req api.MenuRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	cfg, err := parseMenuConfig(req)
	if err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	menu := &models.Menu{OwnerID: userID, MenuConfig: cfg}
	if err := h.menuStorage.CreateMenu(ctx, menu); err != nil {
		h.internalError(w, r, "failed to create menu", err)
		return
	}

	h.logger.InfoContext(ctx, "menu created",
		slog.Int64("user_id", userID),
		slog.Int64("menu_id", menu.ID))

	h.sendJSON(w, api.MenuCreatedResponse{
		MenuID:  menu.ID,
		Message: "New menu created successfully.",
	}, http.StatusCreated)
}

// Update обрабатывает PATCH /menu
// Чужой или несуществующий menu_id дает 404
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req api.MenuRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if req.MenuID <= 0 {
		h.sendError(w, "menu_id is required", http.StatusBadRequest)
		return
	}

	cfg, err := parseMenuConfig(req)
	if err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.menuStorage.UpdateMenu(ctx, userID, req.MenuID, cfg); err != nil {
		if errors.Is(err, storage.ErrMenuNotFound) {
			h.logger.WarnContext(ctx, "menu not found for owner",
				slog.Int64("user_id", userID),
				slog.Int64("menu_id", req.MenuID))
			h.sendError(w, "menu not found", http.StatusNotFound)
			return
		}
		h.internalError(w, r, "failed to update menu", err)
		return
	}

	h.logger.InfoContext(ctx, "menu updated",
		slog.Int64("user_id", userID),
		slog.Int64("menu_id", req.MenuID))

	h.sendMessage(w, "Menu updated successfully.", http.StatusOK)
}

func parseMenuConfig(req api.MenuRequest) (models.MenuConfig, error) {
	return models.RawMenuConfig{
		Name:         req.Name,
		MenuType:     req.MenuType,
		TasteLevel:   req.TasteLevel,
		WaterLevel:   req.WaterLevel,
		FoamLevel:    req.FoamLevel,
		GrindSize:    req.GrindSize,
		CoffeeOption: req.CoffeeOption,
	}.Parse()
}

func toMenuResponse(m *models.Menu) api.MenuResponse {
	return api.MenuResponse{
		MenuID:       m.ID,
		Name:         m.Name,
		MenuType:     string(m.MenuType),
		TasteLevel:   string(m.TasteLevel),
		WaterLevel:   string(m.WaterLevel),
		FoamLevel:    string(m.FoamLevel),
		GrindSize:    string(m.GrindSize),
		CoffeeOption: string(m.CoffeeOption),
		CreatedAt:    m.CreatedAt,
	}
}

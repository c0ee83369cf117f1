package handlers

import (
	"net/http"

	"courier-admin/internal/logx"
)

// ShipmentHandler serves the shipment status workflow.
type ShipmentHandler struct {
	logger logx.Logger
	uc     ShipmentUsecase
}

// NewShipmentHandler wires a ShipmentUsecase into HTTP handlers.
func NewShipmentHandler(logger logx.Logger, uc ShipmentUsecase) *ShipmentHandler {
	return &ShipmentHandler{logger: logger, uc: uc}
}

// Get handles GET /shipments/{id}.
func (h *ShipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(h.logger, w, r)
	if !ok {
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	d, err := h.uc.Get(r.Context(), a, id)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, detailsToResponse(d))
}

// Tracking handles GET /shipments/{id}/tracking.
func (h *ShipmentHandler) Tracking(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(h.logger, w, r)
	if !ok {
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	list, err := h.uc.History(r.Context(), a, id)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, trackingListToResponse(list))
}

// UpdateStatus handles POST /shipments/{id}/status.
func (h *ShipmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(h.logger, w, r)
	if !ok {
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req updateStatusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	res, err := h.uc.UpdateStatus(r.Context(), a, req.toModel(id))
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, updateStatusResponse{
		Shipment: shipmentToResponse(res.Shipment),
		Tracking: trackingToResponse(res.Entry),
	})
}

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"yisu_hotel/internal/adapters/observability"
	"yisu_hotel/internal/app"
)

func (h *Handlers) adminListHotels(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	page, err := h.Search.AdminList(r.Context(), app.AdminQuery{
		Status:   qs.Get("status"),
		Keyword:  qs.Get("keyword"),
		Page:     queryInt(r, "page"),
		PageSize: queryInt(r, "pageSize"),
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, page, "success")
}

func (h *Handlers) approveHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.Moderation.Approve(r.Context(), chi.URLParam(r, "id"))
	observability.ObserveModeration("approve", err)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, hotel, "approved and published")
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *Handlers) rejectHotel(w http.ResponseWriter, r *http.Request) {
	var req rejectRequest
	// body is optional; a blank reason falls back server-side
	_ = decodeBody(r, &req)
	hotel, err := h.Moderation.Reject(r.Context(), chi.URLParam(r, "id"), req.Reason)
	observability.ObserveModeration("reject", err)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, hotel, "rejected")
}

func (h *Handlers) offlineHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.Moderation.Offline(r.Context(), chi.URLParam(r, "id"))
	observability.ObserveModeration("offline", err)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, hotel, "taken offline")
}

func (h *Handlers) restoreHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.Moderation.Restore(r.Context(), chi.URLParam(r, "id"))
	observability.ObserveModeration("restore", err)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, hotel, "restored")
}

package httpserver

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"yisu_hotel/internal/adapters/observability"
	"yisu_hotel/internal/app"
	"yisu_hotel/internal/domain"
)

type Handlers struct {
	Auth       *app.AuthService
	Search     *app.SearchService
	Listings   *app.ListingService
	Moderation *app.ModerationService
	LoginRPS   int
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, map[string]any{"ok": true}, "yisu hotel API running")
	})

	s.mux.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.With(RateLimit(h.LoginRPS)).Post("/login", h.login)
		r.Post("/logout", h.logout)
	})

	s.mux.Route("/api/hotels", func(r chi.Router) {
		r.Use(h.withSession)
		r.Get("/", h.searchHotels)
		r.Get("/{id}", h.hotelDetail)
		r.With(h.requireRole(domain.RoleMerchant)).Post("/", h.createHotel)
		r.With(h.requireRole(domain.RoleMerchant)).Put("/{id}", h.editHotel)
	})

	s.mux.Route("/api/admin", func(r chi.Router) {
		r.Use(h.withSession, h.requireRole(domain.RoleAdmin))
		r.Get("/hotels", h.adminListHotels)
		r.Post("/hotels/{id}/approve", h.approveHotel)
		r.Post("/hotels/{id}/reject", h.rejectHotel)
		r.Post("/hotels/{id}/offline", h.offlineHotel)
		r.Post("/hotels/{id}/restore", h.restoreHotel)
	})
}

// ---- session plumbing ----

type ctxKey int

const sessionKey ctxKey = 0

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(auth[len("Bearer "):])
	}
	return ""
}

// withSession resolves the bearer token if one is present. Anonymous
// requests pass through with no session attached.
func (h *Handlers) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			sess, err := h.Auth.Resolve(r.Context(), token)
			if err != nil {
				writeErr(w, err)
				return
			}
			if sess != nil {
				r = r.WithContext(context.WithValue(r.Context(), sessionKey, sess))
			}
		}
		next.ServeHTTP(w, r)
	})
}

func sessionFrom(r *http.Request) *domain.Session {
	sess, _ := r.Context().Value(sessionKey).(*domain.Session)
	return sess
}

func (h *Handlers) requireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := sessionFrom(r)
			if sess == nil {
				writeErr(w, domain.ErrUnauthenticated)
				return
			}
			if sess.Role != role {
				writeErr(w, domain.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ---- hotel handlers ----

func queryInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(key))
	return n
}

func queryInt64Ptr(r *http.Request, key string) *int64 {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func (h *Handlers) searchHotels(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	sess := sessionFrom(r)
	q := app.SearchQuery{
		Keyword:   qs.Get("keyword"),
		StarLevel: qs.Get("starLevel"),
		City:      qs.Get("city"),
		Tags:      qs.Get("tags"),
		MinPrice:  queryInt64Ptr(r, "minPrice"),
		MaxPrice:  queryInt64Ptr(r, "maxPrice"),
		CheckIn:   qs.Get("checkIn"),
		CheckOut:  qs.Get("checkOut"),
		Page:      queryInt(r, "page"),
		PageSize:  queryInt(r, "pageSize"),
		Manage:    qs.Get("manage") != "",
	}

	scope := "public"
	if q.Manage && sess != nil {
		scope = string(sess.Role)
	}
	observability.ObserveSearch(scope)

	page, err := h.Search.Search(r.Context(), q, sess)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, page, "success")
}

// pricedHotelView inlines the hotel fields and carries the stay pricing
// context alongside.
type pricedHotelView struct {
	domain.Hotel
	Pricing app.PricingInfo `json:"pricing"`
}

func (h *Handlers) hotelDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	qs := r.URL.Query()
	hotel, pricing, err := h.Search.Detail(r.Context(), id, qs.Get("checkIn"), qs.Get("checkOut"), sessionFrom(r))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, pricedHotelView{Hotel: hotel, Pricing: pricing}, "success")
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	var in app.CreateHotelInput
	if err := decodeBody(r, &in); err != nil {
		writeFail(w, http.StatusOK, 1, "malformed request body")
		return
	}
	hotel, err := h.Listings.Create(r.Context(), in, sessionFrom(r).UserID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, hotel, "created")
}

func (h *Handlers) editHotel(w http.ResponseWriter, r *http.Request) {
	var in app.EditHotelInput
	if err := decodeBody(r, &in); err != nil {
		writeFail(w, http.StatusOK, 1, "malformed request body")
		return
	}
	hotel, err := h.Listings.Edit(r.Context(), chi.URLParam(r, "id"), in, sessionFrom(r).UserID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, hotel, "updated")
}

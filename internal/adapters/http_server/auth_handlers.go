package httpserver

import (
	"encoding/json"
	"net/http"
)

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		writeFail(w, http.StatusOK, 1, "malformed request body")
		return
	}
	user, err := h.Auth.Register(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, user, "registered")
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeFail(w, http.StatusOK, 1, "malformed request body")
		return
	}
	res, err := h.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, res, "logged in")
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Logout(r.Context(), bearerToken(r)); err != nil {
		writeErr(w, err)
		return
	}
	writeOK(w, nil, "logged out")
}

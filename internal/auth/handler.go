package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/flexly/internal/telemetry/tracing"
	"github.com/2beens/flexly/internal/users"
	"github.com/2beens/flexly/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/auth/register", h.HandleRegister).Methods("POST", "OPTIONS").Name("register")
	r.HandleFunc("/auth/login", h.HandleLogin).Methods("POST", "OPTIONS").Name("login")
	r.HandleFunc("/auth/logout", h.HandleLogout).Methods("POST", "OPTIONS").Name("logout")
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.register")
	defer span.End()

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := pkg.Validate(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.service.Register(ctx, req)
	if err != nil {
		if errors.Is(err, users.ErrUserExists) {
			pkg.WriteMessageResponse(w, "User already exists", http.StatusBadRequest)
			return
		}
		log.Errorf("register user [%s]: %s", req.Username, err)
		http.Error(w, "failed to register user", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, resp, http.StatusCreated)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.login")
	defer span.End()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := pkg.Validate(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.service.Login(ctx, req)
	if err != nil {
		if errors.Is(err, ErrWrongCredentials) {
			pkg.WriteMessageResponse(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		log.Errorf("login: %s", err)
		http.Error(w, "failed to login", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, resp, http.StatusOK)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	token := BearerToken(r)
	if err := h.service.Logout(r.Context(), token); err != nil {
		if errors.Is(err, ErrInvalidSession) {
			http.Error(w, "not logged in", http.StatusUnauthorized)
			return
		}
		log.Errorf("logout: %s", err)
		http.Error(w, "failed to logout", http.StatusInternalServerError)
		return
	}
	pkg.WriteMessageResponse(w, "Logged out", http.StatusOK)
}

// BearerToken extracts the token from the "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

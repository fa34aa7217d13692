package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/flexly/internal/auth"
	"github.com/2beens/flexly/internal/telemetry/tracing"
	"github.com/2beens/flexly/internal/users"
	"github.com/2beens/flexly/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=profile_test

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 50
)

type userStore interface {
	Get(ctx context.Context, id string) (*users.User, error)
	Search(ctx context.Context, query string, limit int) ([]users.Summary, error)
	UpdateProfile(ctx context.Context, id string, update users.ProfileUpdate) error
}

type healer interface {
	Heal(ctx context.Context, u *users.User) (bool, error)
}

type relations interface {
	IsFollowing(ctx context.Context, actorID, targetID string) (bool, error)
	CascadeDelete(ctx context.Context, userID string) error
}

// Profile is a user as seen by the requester.
type Profile struct {
	users.User
	IsFollowing bool `json:"isFollowing"`
}

type Handler struct {
	users     userStore
	healer    healer
	relations relations
}

func NewHandler(users userStore, healer healer, relations relations) *Handler {
	return &Handler{
		users:     users,
		healer:    healer,
		relations: relations,
	}
}

// SetupRoutes must run before other /users/{id} routes are added, so the fixed paths win.
func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/users/me", h.HandleGetMe).Methods("GET", "OPTIONS").Name("me")
	r.HandleFunc("/users/me", h.HandleUpdateMe).Methods("PUT", "OPTIONS").Name("me-update")
	r.HandleFunc("/users/me", h.HandleDeleteMe).Methods("DELETE", "OPTIONS").Name("me-delete")
	r.HandleFunc("/users/search", h.HandleSearch).Methods("GET", "OPTIONS").Name("users-search")
	r.HandleFunc("/users/{id}", h.HandleGetProfile).Methods("GET", "OPTIONS").Name("profile")
}

// healedUser loads the user and repairs the derived stats before they are shown.
func (h *Handler) healedUser(ctx context.Context, id string) (*users.User, error) {
	u, err := h.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := h.healer.Heal(ctx, u); err != nil {
		log.Errorf("profile: heal user %s: %s", id, err)
	}
	return u, nil
}

func (h *Handler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.me")
	defer span.End()

	u, err := h.healedUser(ctx, auth.UserID(ctx))
	if err != nil {
		writeUserError(w, err)
		return
	}

	pkg.WriteJSONResponse(w, u, http.StatusOK)
}

func (h *Handler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.update")
	defer span.End()

	var update users.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := pkg.Validate(update); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	userID := auth.UserID(ctx)
	if err := h.users.UpdateProfile(ctx, userID, update); err != nil {
		writeUserError(w, err)
		return
	}

	u, err := h.healedUser(ctx, userID)
	if err != nil {
		writeUserError(w, err)
		return
	}

	pkg.WriteJSONResponse(w, u, http.StatusOK)
}

func (h *Handler) HandleDeleteMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.delete")
	defer span.End()

	userID := auth.UserID(ctx)
	if err := h.relations.CascadeDelete(ctx, userID); err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			pkg.WriteMessageResponse(w, "User not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete account %s: %s", userID, err)
		http.Error(w, "failed to delete account", http.StatusInternalServerError)
		return
	}

	log.Infof("account %s deleted", userID)
	pkg.WriteMessageResponse(w, "Account deleted", http.StatusOK)
}

func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.search")
	defer span.End()

	query := r.URL.Query().Get("q")
	limit := min(pkg.ParsePositiveInt(r.URL.Query().Get("limit"), defaultSearchLimit), maxSearchLimit)

	list, err := h.users.Search(ctx, query, limit)
	if err != nil {
		log.Errorf("search users [%s]: %s", query, err)
		http.Error(w, "failed to search users", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, list, http.StatusOK)
}

func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.get")
	defer span.End()

	id := mux.Vars(r)["id"]
	u, err := h.healedUser(ctx, id)
	if err != nil {
		writeUserError(w, err)
		return
	}

	following, err := h.relations.IsFollowing(ctx, auth.UserID(ctx), id)
	if err != nil {
		log.Errorf("profile %s: is following: %s", id, err)
		http.Error(w, "failed to get profile", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, Profile{User: *u, IsFollowing: following}, http.StatusOK)
}

func writeUserError(w http.ResponseWriter, err error) {
	if errors.Is(err, users.ErrUserNotFound) {
		pkg.WriteMessageResponse(w, "User not found", http.StatusNotFound)
		return
	}
	log.Errorf("profile: %s", err)
	http.Error(w, "failed to get user", http.StatusInternalServerError)
}

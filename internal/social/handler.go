package social

import (
	"context"
	"errors"
	"net/http"

	"github.com/2beens/flexly/internal/auth"
	"github.com/2beens/flexly/internal/telemetry/tracing"
	"github.com/2beens/flexly/internal/users"
	"github.com/2beens/flexly/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=social_test

type userGetter interface {
	Get(ctx context.Context, id string) (*users.User, error)
}

type FollowResponse struct {
	Message string `json:"message"`
	Relation
}

type Handler struct {
	manager *Manager
	users   userGetter
}

func NewHandler(manager *Manager, users userGetter) *Handler {
	return &Handler{
		manager: manager,
		users:   users,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/users/{id}/follow", h.HandleToggleFollow).Methods("POST", "OPTIONS").Name("follow-toggle")
	r.HandleFunc("/users/{id}/follow", h.HandleUnfollow).Methods("DELETE", "OPTIONS").Name("unfollow")
	r.HandleFunc("/users/{id}/followers", h.HandleFollowers).Methods("GET", "OPTIONS").Name("followers")
	r.HandleFunc("/users/{id}/following", h.HandleFollowing).Methods("GET", "OPTIONS").Name("following")
}

func (h *Handler) HandleToggleFollow(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.toggleFollow")
	defer span.End()

	actorID := auth.UserID(ctx)
	targetID := mux.Vars(r)["id"]
	rel, err := h.manager.Toggle(ctx, actorID, targetID)
	if err != nil {
		h.writeError(w, err, actorID, targetID)
		return
	}

	msg := "Unfollowed"
	if rel.Following {
		msg = "Followed"
	}
	pkg.WriteJSONResponse(w, FollowResponse{Message: msg, Relation: *rel}, http.StatusOK)
}

func (h *Handler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.unfollow")
	defer span.End()

	actorID := auth.UserID(ctx)
	targetID := mux.Vars(r)["id"]
	rel, err := h.manager.Unfollow(ctx, actorID, targetID)
	if err != nil {
		h.writeError(w, err, actorID, targetID)
		return
	}

	pkg.WriteJSONResponse(w, FollowResponse{Message: "Unfollowed", Relation: *rel}, http.StatusOK)
}

func (h *Handler) writeError(w http.ResponseWriter, err error, actorID, targetID string) {
	switch {
	case errors.Is(err, ErrSelfFollow):
		pkg.WriteMessageResponse(w, "Cannot follow yourself", http.StatusBadRequest)
	case errors.Is(err, users.ErrUserNotFound):
		pkg.WriteMessageResponse(w, "User not found", http.StatusNotFound)
	default:
		log.Errorf("change follow %s -> %s: %s", actorID, targetID, err)
		http.Error(w, "failed to change follow", http.StatusInternalServerError)
	}
}

func (h *Handler) HandleFollowers(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.followers")
	defer span.End()

	h.writeList(w, r.WithContext(ctx), h.manager.Followers)
}

func (h *Handler) HandleFollowing(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.following")
	defer span.End()

	h.writeList(w, r.WithContext(ctx), h.manager.Following)
}

// writeList writes the list of the path user, hidden lists are only shown to their owner.
func (h *Handler) writeList(
	w http.ResponseWriter,
	r *http.Request,
	list func(ctx context.Context, userID string) ([]users.Summary, error),
) {
	ctx := r.Context()
	userID := mux.Vars(r)["id"]

	u, err := h.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			pkg.WriteMessageResponse(w, "User not found", http.StatusNotFound)
			return
		}
		log.Errorf("get user %s: %s", userID, err)
		http.Error(w, "failed to get user", http.StatusInternalServerError)
		return
	}
	if u.SocialHidden && auth.UserID(ctx) != u.ID {
		pkg.WriteMessageResponse(w, "This user's social lists are hidden", http.StatusForbidden)
		return
	}

	summaries, err := list(ctx, userID)
	if err != nil {
		log.Errorf("list social of %s: %s", userID, err)
		http.Error(w, "failed to get list", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, summaries, http.StatusOK)
}

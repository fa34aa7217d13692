package leaderboard

import (
	"errors"
	"net/http"

	"github.com/2beens/flexly/internal/auth"
	"github.com/2beens/flexly/internal/telemetry/tracing"
	"github.com/2beens/flexly/internal/users"
	"github.com/2beens/flexly/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	ranker *Ranker
}

func NewHandler(ranker *Ranker) *Handler {
	return &Handler{
		ranker: ranker,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/users/leaderboard", h.HandleLeaderboard).Methods("GET", "OPTIONS").Name("leaderboard")
}

func (h *Handler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.leaderboard.get")
	defer span.End()

	query := r.URL.Query()
	category, err := ParseCategory(query.Get("category"))
	if err != nil {
		pkg.WriteMessageResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	weightClass, err := ParseWeightClass(query.Get("weightClass"))
	if err != nil {
		pkg.WriteMessageResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	board, err := h.ranker.Rank(ctx, Query{
		Category: category,
		Filter: Filter{
			Gender:      query.Get("gender"),
			WeightClass: weightClass,
		},
		RequesterID: auth.UserID(ctx),
	})
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			pkg.WriteMessageResponse(w, "User not found", http.StatusNotFound)
			return
		}
		log.Errorf("get leaderboard: %s", err)
		http.Error(w, "failed to get leaderboard", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, board, http.StatusOK)
}

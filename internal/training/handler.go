package training

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

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
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
	r.HandleFunc("/training/generate", h.HandleGenerate).Methods("POST", "OPTIONS").Name("training-generate")
	r.HandleFunc("/training", h.HandleList).Methods("GET", "OPTIONS").Name("training-list")
	r.HandleFunc("/training/{id}", h.HandleGet).Methods("GET", "OPTIONS").Name("training-get")
	r.HandleFunc("/training/{id}", h.HandleDelete).Methods("DELETE", "OPTIONS").Name("training-delete")
}

func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.generate")
	defer span.End()

	userID := auth.UserID(ctx)
	plan, err := h.service.Generate(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUserNotFound):
			pkg.WriteMessageResponse(w, "User not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidPlan):
			log.Warnf("training plan for %s rejected: %s", userID, err)
			pkg.WriteMessageResponse(w, "Could not generate a training plan, try again", http.StatusBadGateway)
		default:
			log.Errorf("generate training plan for %s: %s", userID, err)
			http.Error(w, "failed to generate training plan", http.StatusInternalServerError)
		}
		return
	}

	pkg.WriteJSONResponse(w, plan, http.StatusCreated)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.list")
	defer span.End()

	page := pkg.ParsePositiveInt(r.URL.Query().Get("page"), 1)
	limit := min(pkg.ParsePositiveInt(r.URL.Query().Get("limit"), defaultPageLimit), maxPageLimit)

	resp, err := h.service.List(ctx, auth.UserID(ctx), page, limit)
	if err != nil {
		log.Errorf("list training plans: %s", err)
		http.Error(w, "failed to get training plans", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, resp, http.StatusOK)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.get")
	defer span.End()

	id := mux.Vars(r)["id"]
	plan, err := h.service.Get(ctx, auth.UserID(ctx), id)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			pkg.WriteMessageResponse(w, "Training plan not found", http.StatusNotFound)
			return
		}
		log.Errorf("get training plan %s: %s", id, err)
		http.Error(w, "failed to get training plan", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, plan, http.StatusOK)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	if err := h.service.Delete(ctx, auth.UserID(ctx), id); err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			pkg.WriteMessageResponse(w, "Training plan not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete training plan %s: %s", id, err)
		http.Error(w, "failed to delete training plan", http.StatusInternalServerError)
		return
	}

	pkg.WriteMessageResponse(w, "Training plan deleted", http.StatusOK)
}

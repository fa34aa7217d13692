package comments

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/flexly/internal/analysis"
	"github.com/2beens/flexly/internal/auth"
	"github.com/2beens/flexly/internal/telemetry/tracing"
	"github.com/2beens/flexly/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type AddCommentRequest struct {
	Text string `json:"text"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/analysis/comments/{commentId}", h.HandleDelete).Methods("DELETE", "OPTIONS").Name("comment-delete")
	r.HandleFunc("/analysis/{id}/comments", h.HandleList).Methods("GET", "OPTIONS").Name("comments-list")
	r.HandleFunc("/analysis/{id}/comments", h.HandleAdd).Methods("POST", "OPTIONS").Name("comment-add")
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.comments.list")
	defer span.End()

	analysisID := mux.Vars(r)["id"]
	list, err := h.service.List(ctx, analysisID)
	if err != nil {
		log.Errorf("list comments of analysis %s: %s", analysisID, err)
		http.Error(w, "failed to get comments", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, list, http.StatusOK)
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.comments.add")
	defer span.End()

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	analysisID := mux.Vars(r)["id"]
	c, err := h.service.Add(ctx, auth.UserID(ctx), analysisID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyText), errors.Is(err, ErrTextTooLong):
			pkg.WriteMessageResponse(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, analysis.ErrSubmissionNotFound):
			pkg.WriteMessageResponse(w, "Analysis not found", http.StatusNotFound)
		default:
			log.Errorf("add comment to analysis %s: %s", analysisID, err)
			http.Error(w, "failed to add comment", http.StatusInternalServerError)
		}
		return
	}

	pkg.WriteJSONResponse(w, c, http.StatusCreated)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.comments.delete")
	defer span.End()

	commentID := mux.Vars(r)["commentId"]
	if err := h.service.Delete(ctx, auth.UserID(ctx), commentID); err != nil {
		switch {
		case errors.Is(err, ErrCommentNotFound):
			pkg.WriteMessageResponse(w, "Comment not found", http.StatusNotFound)
		case errors.Is(err, ErrNotAuthor):
			pkg.WriteMessageResponse(w, "Not authorized to delete this comment", http.StatusForbidden)
		default:
			log.Errorf("delete comment %s: %s", commentID, err)
			http.Error(w, "failed to delete comment", http.StatusInternalServerError)
		}
		return
	}

	pkg.WriteMessageResponse(w, "Comment deleted", http.StatusOK)
}

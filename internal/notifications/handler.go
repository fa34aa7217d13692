package notifications

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/flexly/internal/auth"
	"github.com/2beens/flexly/internal/telemetry/tracing"
	"github.com/2beens/flexly/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=notifications_test

type inbox interface {
	ListForRecipient(ctx context.Context, recipientID string, limit int) ([]Notification, error)
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
	AddDeviceToken(ctx context.Context, userID, token string) error
}

type DeviceTokenRequest struct {
	Token string `json:"token" validate:"required,max=4096"`
}

type Handler struct {
	inbox inbox
}

func NewHandler(inbox inbox) *Handler {
	return &Handler{
		inbox: inbox,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/notifications", h.HandleList).Methods("GET", "OPTIONS").Name("notifications-list")
	r.HandleFunc("/notifications/read", h.HandleMarkRead).Methods("PUT", "OPTIONS").Name("notifications-read")
	r.HandleFunc("/notifications/device-token", h.HandleDeviceToken).Methods("POST", "OPTIONS").Name("device-token")
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.notifications.list")
	defer span.End()

	userID := auth.UserID(ctx)
	list, err := h.inbox.ListForRecipient(ctx, userID, ListLimit)
	if err != nil {
		log.Errorf("list notifications of %s: %s", userID, err)
		http.Error(w, "failed to get notifications", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, list, http.StatusOK)
}

func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.notifications.markRead")
	defer span.End()

	userID := auth.UserID(ctx)
	updated, err := h.inbox.MarkAllRead(ctx, userID)
	if err != nil {
		log.Errorf("mark notifications of %s read: %s", userID, err)
		http.Error(w, "failed to mark notifications read", http.StatusInternalServerError)
		return
	}
	log.Debugf("%d notifications of %s marked as read", updated, userID)

	pkg.WriteMessageResponse(w, "Notifications marked as read", http.StatusOK)
}

func (h *Handler) HandleDeviceToken(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.notifications.deviceToken")
	defer span.End()

	var req DeviceTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := pkg.Validate(req); err != nil {
		pkg.WriteMessageResponse(w, "Device token is required", http.StatusBadRequest)
		return
	}

	userID := auth.UserID(ctx)
	if err := h.inbox.AddDeviceToken(ctx, userID, req.Token); err != nil {
		log.Errorf("add device token for %s: %s", userID, err)
		http.Error(w, "failed to register device token", http.StatusInternalServerError)
		return
	}

	pkg.WriteMessageResponse(w, "Device token registered", http.StatusOK)
}

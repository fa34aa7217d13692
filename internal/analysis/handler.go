package analysis

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/2beens/flexly/internal/auth"
	"github.com/2beens/flexly/internal/oracle"
	"github.com/2beens/flexly/internal/ratings"
	"github.com/2beens/flexly/internal/telemetry/tracing"
	"github.com/2beens/flexly/internal/users"
	"github.com/2beens/flexly/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type Handler struct {
	service      *Service
	maxImageSize int64
}

func NewHandler(service *Service, maxImageSizeMB int) *Handler {
	if maxImageSizeMB <= 0 {
		maxImageSizeMB = 10
	}
	return &Handler{
		service:      service,
		maxImageSize: int64(maxImageSizeMB) << 20,
	}
}

// SetupRoutes registers the analysis routes. createMiddleware wraps the create route only.
func (h *Handler) SetupRoutes(r *mux.Router, createMiddleware ...mux.MiddlewareFunc) {
	create := http.Handler(http.HandlerFunc(h.HandleCreate))
	for i := len(createMiddleware) - 1; i >= 0; i-- {
		create = createMiddleware[i](create)
	}
	r.Handle("/analysis", create).Methods("POST", "OPTIONS").Name("analysis-create")
	r.HandleFunc("/analysis", h.HandleList).Methods("GET", "OPTIONS").Name("analysis-list")
	r.HandleFunc("/analysis/feed", h.HandleFeed).Methods("GET", "OPTIONS").Name("analysis-feed")
	r.HandleFunc("/analysis/user/{userId}", h.HandleUserList).Methods("GET", "OPTIONS").Name("analysis-user-list")
	r.HandleFunc("/analysis/{id}", h.HandleDelete).Methods("DELETE", "OPTIONS").Name("analysis-delete")
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analysis.create")
	defer span.End()

	userID := auth.UserID(ctx)
	r.Body = http.MaxBytesReader(w, r.Body, int64(h.service.maxImages)*h.maxImageSize+(1<<20))
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		log.Debugf("create analysis, parse multipart form: %s", err)
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Warnf("remove multipart temp files: %s", err)
		}
	}()

	files := r.MultipartForm.File["images"]
	span.SetAttributes(attribute.Int("images.count", len(files)))
	images := make([]oracle.Image, 0, len(files))
	for _, fh := range files {
		img, err := h.readImage(fh)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		images = append(images, img)
	}

	submission, err := h.service.Create(ctx, userID, images)
	if err != nil {
		var vErr *ratings.ValidationError
		switch {
		case errors.Is(err, ErrNoImages), errors.Is(err, ErrTooManyImages):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.As(err, &vErr):
			log.Warnf("analysis of user %s rejected: %s", userID, vErr)
			http.Error(w, "image could not be analyzed: "+vErr.Error(), http.StatusBadRequest)
		case errors.Is(err, users.ErrUserNotFound):
			http.Error(w, "user not found", http.StatusNotFound)
		default:
			log.Errorf("create analysis for user %s: %s", userID, err)
			http.Error(w, "failed to analyze images", http.StatusInternalServerError)
		}
		return
	}

	pkg.WriteJSONResponse(w, submission, http.StatusCreated)
}

func (h *Handler) readImage(fh *multipart.FileHeader) (oracle.Image, error) {
	if fh.Size > h.maxImageSize {
		return oracle.Image{}, fmt.Errorf("image %s too large", fh.Filename)
	}
	f, err := fh.Open()
	if err != nil {
		return oracle.Image{}, fmt.Errorf("open image %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxImageSize+1))
	if err != nil {
		return oracle.Image{}, fmt.Errorf("read image %s: %w", fh.Filename, err)
	}
	if int64(len(data)) > h.maxImageSize {
		return oracle.Image{}, fmt.Errorf("image %s too large", fh.Filename)
	}

	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return oracle.Image{}, fmt.Errorf("file %s is not an image", fh.Filename)
	}

	return oracle.Image{
		ContentType: contentType,
		Data:        data,
	}, nil
}

func pageParams(r *http.Request) (int, int) {
	page := pkg.ParsePositiveInt(r.URL.Query().Get("page"), 1)
	limit := pkg.ParsePositiveInt(r.URL.Query().Get("limit"), defaultPageLimit)
	return page, min(limit, maxPageLimit)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analysis.list")
	defer span.End()

	h.writeList(w, r, auth.UserID(ctx))
}

func (h *Handler) HandleUserList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analysis.userList")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	h.writeList(w, r.WithContext(ctx), userID)
}

func (h *Handler) writeList(w http.ResponseWriter, r *http.Request, ownerID string) {
	page, limit := pageParams(r)
	resp, err := h.service.List(r.Context(), ownerID, page, limit)
	if err != nil {
		log.Errorf("list analyses of %s: %s", ownerID, err)
		http.Error(w, "failed to get analyses", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponse(w, resp, http.StatusOK)
}

func (h *Handler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analysis.feed")
	defer span.End()

	userID := auth.UserID(ctx)
	page, limit := pageParams(r)
	resp, err := h.service.Feed(ctx, userID, page, limit)
	if err != nil {
		log.Errorf("feed of %s: %s", userID, err)
		http.Error(w, "failed to get feed", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponse(w, resp, http.StatusOK)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analysis.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(ctx, auth.UserID(ctx), id); err != nil {
		switch {
		case errors.Is(err, ErrSubmissionNotFound):
			http.Error(w, "analysis not found", http.StatusNotFound)
		case errors.Is(err, ErrNotOwner):
			http.Error(w, "not allowed to delete this analysis", http.StatusForbidden)
		default:
			log.Errorf("delete analysis %s: %s", id, err)
			http.Error(w, "failed to delete analysis", http.StatusInternalServerError)
		}
		return
	}

	pkg.WriteMessageResponse(w, "Analysis deleted", http.StatusOK)
}

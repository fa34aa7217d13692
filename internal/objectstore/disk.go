package objectstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/2beens/flexly/internal/telemetry/tracing"
	"github.com/2beens/flexly/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// DiskStore keeps objects in a local folder, served back by ServeHTTP. Used in development.
type DiskStore struct {
	rootPath string
	baseURL  string
	mutex    sync.RWMutex
}

func NewDiskStore(rootPath, baseURL string) (*DiskStore, error) {
	if rootPath == "" {
		return nil, errors.New("root path cannot be empty")
	}
	exists, err := pkg.PathExists(rootPath, true)
	if err != nil {
		return nil, fmt.Errorf("check root path: %w", err)
	}
	if !exists {
		if err := os.MkdirAll(rootPath, 0o755); err != nil {
			return nil, fmt.Errorf("create root path: %w", err)
		}
	}
	return &DiskStore{
		rootPath: rootPath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (ds *DiskStore) Put(ctx context.Context, key, contentType string, data []byte) (_ string, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "diskStore.put")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("object.key", key), attribute.Int("object.size", len(data)))

	key, err = CleanKey(key)
	if err != nil {
		return "", err
	}

	ds.mutex.Lock()
	defer ds.mutex.Unlock()

	fullPath := filepath.Join(ds.rootPath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("create object dir: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write object: %w", err)
	}

	log.Debugf("disk store: saved [%s] (%s, %d bytes)", key, contentType, len(data))
	return ds.baseURL + "/images/" + key, nil
}

func (ds *DiskStore) Get(ctx context.Context, key string) (_ []byte, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "diskStore.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	key, err = CleanKey(key)
	if err != nil {
		return nil, err
	}

	ds.mutex.RLock()
	defer ds.mutex.RUnlock()

	data, err := os.ReadFile(filepath.Join(ds.rootPath, filepath.FromSlash(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	return data, nil
}

func (ds *DiskStore) Delete(ctx context.Context, key string) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "diskStore.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	key, err = CleanKey(key)
	if err != nil {
		return err
	}

	ds.mutex.Lock()
	defer ds.mutex.Unlock()

	if err := os.Remove(filepath.Join(ds.rootPath, filepath.FromSlash(key))); err != nil {
		if os.IsNotExist(err) {
			return ErrObjectNotFound
		}
		return err
	}
	return nil
}

// KeyFromURL returns the object key of a URL produced by Put.
func (ds *DiskStore) KeyFromURL(url string) (string, bool) {
	prefix := ds.baseURL + "/images/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

// HandleGet serves GET /images/{key:.+}
func (ds *DiskStore) HandleGet(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	data, err := ds.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) || errors.Is(err, ErrInvalidKey) {
			http.Error(w, "image not found", http.StatusNotFound)
			return
		}
		log.Errorf("disk store: get [%s]: %s", key, err)
		http.Error(w, "failed to get image", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, http.DetectContentType(data), data, http.StatusOK)
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-manager/backend/logging"
	"task-manager/backend/models"
	"task-manager/backend/services"
)

// ResourceHandler is the HTTP surface for one resource kind. It decodes the
// request, resolves the acting user from the context and hands both to the
// ownership-scoped service; errors come back through the shared taxonomy
// and are translated here into the response envelope.
type ResourceHandler[T any, P interface {
	*T
	models.Document
}] struct {
	service *services.ResourceService[T, P]
}

func NewResourceHandler[T any, P interface {
	*T
	models.Document
}](service *services.ResourceService[T, P]) *ResourceHandler[T, P] {
	return &ResourceHandler[T, P]{service: service}
}

// Register mounts the verb set on a sub-resource path, e.g. /tasks.
func (h *ResourceHandler[T, P]) Register(r *mux.Router, path string) {
	r.HandleFunc(path, h.List).Methods(http.MethodGet)
	r.HandleFunc(path, h.Create).Methods(http.MethodPost)
	r.HandleFunc(path+"/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc(path+"/{id}", h.Update).Methods(http.MethodPut)
	r.HandleFunc(path+"/{id}", h.Delete).Methods(http.MethodDelete)
}

// resourceID parses the path id. A malformed id cannot resolve to any
// stored document, so it reports not-found rather than a format error.
func (h *ResourceHandler[T, P]) resourceID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.Fail(h.service.Kind().Display+" not found"))
		return primitive.NilObjectID, false
	}
	return id, true
}

// fail maps a service error onto the envelope. Unclassified errors are
// logged with their cause and surface only the opaque action message.
func (h *ResourceHandler[T, P]) fail(w http.ResponseWriter, r *http.Request, err error, action string) {
	kind := h.service.Kind()

	var validation *models.ValidationError
	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, models.Fail(validation.Message))
	case errors.Is(err, models.ErrNotFound):
		writeJSON(w, http.StatusNotFound, models.Fail(kind.Display+" not found"))
	case errors.Is(err, models.ErrForbidden):
		writeJSON(w, http.StatusForbidden, models.Fail("Not authorized"))
	default:
		logging.Logger.Errorf("Event ID: RESOURCE_OP_FAILED, Description: %s %s %s failed: %v", r.Method, r.URL.Path, kind.Name, err)
		writeJSON(w, http.StatusInternalServerError, models.Fail("Error "+action+" "+kind.Name))
	}
}

func (h *ResourceHandler[T, P]) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	docs, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err, "fetching")
		return
	}
	if docs == nil {
		docs = []*T{}
	}
	writeJSON(w, http.StatusOK, models.OKList(len(docs), docs))
}

func (h *ResourceHandler[T, P]) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := h.resourceID(w, r)
	if !ok {
		return
	}

	doc, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		h.fail(w, r, err, "fetching")
		return
	}
	writeJSON(w, http.StatusOK, models.OK(doc))
}

func (h *ResourceHandler[T, P]) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	doc := new(T)
	if err := json.NewDecoder(r.Body).Decode(doc); err != nil {
		writeJSON(w, http.StatusBadRequest, models.Fail("Invalid request payload"))
		return
	}

	created, err := h.service.Create(r.Context(), userID, doc)
	if err != nil {
		h.fail(w, r, err, "creating")
		return
	}
	writeJSON(w, http.StatusCreated, models.OKMessage(h.service.Kind().Display+" created successfully", created))
}

func (h *ResourceHandler[T, P]) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := h.resourceID(w, r)
	if !ok {
		return
	}

	patch := h.service.Kind().NewPatch()
	if err := json.NewDecoder(r.Body).Decode(patch); err != nil {
		writeJSON(w, http.StatusBadRequest, models.Fail("Invalid request payload"))
		return
	}

	updated, err := h.service.Update(r.Context(), userID, id, patch)
	if err != nil {
		h.fail(w, r, err, "updating")
		return
	}
	writeJSON(w, http.StatusOK, models.OKMessage(h.service.Kind().Display+" updated successfully", updated))
}

func (h *ResourceHandler[T, P]) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := h.resourceID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		h.fail(w, r, err, "deleting")
		return
	}
	writeJSON(w, http.StatusOK, models.OKMessage(h.service.Kind().Display+" deleted successfully", nil))
}

package handler

import (
	"encoding/json"
	"net/http"

	"go-shop-admin/internal/model"
	"go-shop-admin/internal/service"
	"go-shop-admin/pkg/apierror"
)

type ContactHandler struct {
	service *service.ContactService
}

func NewContactHandler(service *service.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// Submit accepts a public contact-form submission. The created record lands
// in the contacts tab as status "new".
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	created, err := h.service.Submit(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{"id": created.ID}, nil)
}

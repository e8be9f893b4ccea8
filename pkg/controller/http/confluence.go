package http

import (
	"net/http"

	"github.com/m-mizutani/jirabridge/pkg/domain/model"
)

func (h *handler) handleChecklist(w http.ResponseWriter, r *http.Request) {
	var req checklistRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	preview, err := h.uc.PreviewChecklist(req.ReleaseName, req.Format, req.Tickets)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, struct {
		Success bool `json:"success"`
		*model.ChecklistPreview
	}{true, preview})
}

func (h *handler) handleCreateReleasePage(w http.ResponseWriter, r *http.Request) {
	var req releasePageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	page, err := h.uc.CreateReleasePage(r.Context(), req.Credential, &req.ReleasePageInput)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, struct {
		Success bool `json:"success"`
		*model.ReleasePage
	}{true, page})
}

func (h *handler) handleDebugSpaces(w http.ResponseWriter, r *http.Request) {
	snapshot := h.uc.Spaces()
	writeJSON(w, r, http.StatusOK, struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
		*model.SpacesSnapshot
	}{true, len(snapshot.Spaces), snapshot})
}

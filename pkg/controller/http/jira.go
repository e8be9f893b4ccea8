package http

import (
	"net/http"

	"github.com/m-mizutani/jirabridge/pkg/domain/model"
)

func (h *handler) handleTestConnection(w http.ResponseWriter, r *http.Request) {
	var req model.Credential
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.uc.TestConnection(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"message": "Connected as " + user.DisplayName,
		"user":    user,
	})
}

func (h *handler) handleGetProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	project, err := h.uc.GetProject(r.Context(), req.Credential, req.ProjectKey)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"project": project,
	})
}

func (h *handler) handleParseTicket(w http.ResponseWriter, r *http.Request) {
	var req parseTicketRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"ticket":  h.uc.ParseTicket(req.Text),
	})
}

func (h *handler) handleCreateTicket(w http.ResponseWriter, r *http.Request) {
	var req createTicketRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	created, err := h.uc.CreateTicket(r.Context(), req.Credential, req.ProjectKey, req.Ticket)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, struct {
		Success bool `json:"success"`
		*model.CreatedTicket
	}{true, created})
}

func (h *handler) handleCreateTicketsBulk(w http.ResponseWriter, r *http.Request) {
	var req createTicketsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.uc.CreateTickets(r.Context(), req.Credential, req.ProjectKey, req.Tickets)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, struct {
		Success bool `json:"success"`
		*model.BulkResult
	}{true, result})
}

func (h *handler) handleSearchEpics(w http.ResponseWriter, r *http.Request) {
	var req searchEpicsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.uc.SearchEpics(r.Context(), req.Credential, req.ProjectKey, req.SearchTerm)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, struct {
		Success bool `json:"success"`
		*model.EpicSearchResult
	}{true, result})
}

func (h *handler) handleProjectMetadata(w http.ResponseWriter, r *http.Request) {
	var req projectMetadataRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	meta, err := h.uc.ProjectMetadata(r.Context(), req.Credential, req.ProjectKey, req.PreferredSprint)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, struct {
		Success bool `json:"success"`
		*model.ProjectMetadata
	}{true, meta})
}

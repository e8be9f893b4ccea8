package http

import (
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/jirabridge/pkg/domain/model"
)

func (h *handler) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		h.writeError(w, r, goerr.Wrap(model.ErrInvalidInput, "text is required"))
		return
	}

	result := h.uc.Translate(r.Context(), req.Text, req.Source, req.Target)
	writeJSON(w, r, http.StatusOK, struct {
		Success bool `json:"success"`
		*model.TranslationResult
	}{true, result})
}

func (h *handler) handleSlackNotify(w http.ResponseWriter, r *http.Request) {
	var req model.SlackMessage
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.uc.Notify(r.Context(), &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"success": true})
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/api/middleware"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/app/service"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common"
)

type NoteHandler struct {
	noteService *service.NoteService
}

func NewNoteHandler(ns *service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: ns}
}

func (h *NoteHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.createNote)
	r.Get("/topic/{topicID}", h.listByTopic)
	r.Get("/{noteID}", h.getNote)
	r.Delete("/{noteID}", h.deleteNote)
	r.Post("/{noteID}/like", h.likeNote)
	r.Post("/{noteID}/comments", h.addComment)
	r.Get("/{noteID}/comments", h.listComments)
}

func (h *NoteHandler) createNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	note, err := h.noteService.Create(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, note)
}

func (h *NoteHandler) listByTopic(w http.ResponseWriter, r *http.Request) {
	notes, err := h.noteService.ListByTopic(r.Context(), chi.URLParam(r, "topicID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) getNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.noteService.Get(r.Context(), chi.URLParam(r, "noteID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) deleteNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	role, _ := middleware.GetUserRoleFromContext(r.Context())

	if err := h.noteService.Delete(r.Context(), chi.URLParam(r, "noteID"), userID, role); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NoteHandler) likeNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	resp, err := h.noteService.Like(r.Context(), userID, chi.URLParam(r, "noteID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *NoteHandler) addComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	comment, err := h.noteService.AddComment(r.Context(), userID, chi.URLParam(r, "noteID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, comment)
}

func (h *NoteHandler) listComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.noteService.ListComments(r.Context(), chi.URLParam(r, "noteID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, comments)
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/api/middleware"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/app/service"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common"
)

type SolutionHandler struct {
	solutionService *service.SolutionService
}

func NewSolutionHandler(ss *service.SolutionService) *SolutionHandler {
	return &SolutionHandler{solutionService: ss}
}

func (h *SolutionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.createSolution)
	r.Get("/question/{questionID}", h.listByQuestion)
	r.Get("/{solutionID}", h.getSolution)
	r.Delete("/{solutionID}", h.deleteSolution)
	r.Post("/{solutionID}/like", h.likeSolution)
	r.Post("/{solutionID}/comments", h.addComment)
	r.Get("/{solutionID}/comments", h.listComments)
}

func (h *SolutionHandler) createSolution(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateSolutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	solution, err := h.solutionService.Create(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, solution)
}

func (h *SolutionHandler) listByQuestion(w http.ResponseWriter, r *http.Request) {
	solutions, err := h.solutionService.ListByQuestion(r.Context(), chi.URLParam(r, "questionID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, solutions)
}

func (h *SolutionHandler) getSolution(w http.ResponseWriter, r *http.Request) {
	solution, err := h.solutionService.Get(r.Context(), chi.URLParam(r, "solutionID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, solution)
}

func (h *SolutionHandler) deleteSolution(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	role, _ := middleware.GetUserRoleFromContext(r.Context())

	if err := h.solutionService.Delete(r.Context(), chi.URLParam(r, "solutionID"), userID, role); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SolutionHandler) likeSolution(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	resp, err := h.solutionService.Like(r.Context(), userID, chi.URLParam(r, "solutionID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *SolutionHandler) addComment(w http.ResponseWriter, r *http.Request) {
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

	comment, err := h.solutionService.AddComment(r.Context(), userID, chi.URLParam(r, "solutionID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, comment)
}

func (h *SolutionHandler) listComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.solutionService.ListComments(r.Context(), chi.URLParam(r, "solutionID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, comments)
}

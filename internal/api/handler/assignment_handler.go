package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/api/middleware"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/app/service"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common"
)

type AssignmentHandler struct {
	assignmentService *service.AssignmentService
}

func NewAssignmentHandler(as *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: as}
}

func (h *AssignmentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/course/{courseID}", h.listByCourse)
	r.Get("/{assignmentID}", h.getAssignment)

	r.Group(func(profRouter chi.Router) {
		profRouter.Use(middleware.ProfessorOnly)
		profRouter.Post("/", h.createAssignment)
		profRouter.Put("/{assignmentID}", h.updateAssignment)
		profRouter.Delete("/{assignmentID}", h.deleteAssignment)
	})
}

func (h *AssignmentHandler) createAssignment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	assignment, err := h.assignmentService.Create(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, assignment)
}

func (h *AssignmentHandler) listByCourse(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	role, _ := middleware.GetUserRoleFromContext(r.Context())

	assignments, err := h.assignmentService.ListByCourse(r.Context(), chi.URLParam(r, "courseID"), userID, role)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, assignments)
}

func (h *AssignmentHandler) getAssignment(w http.ResponseWriter, r *http.Request) {
	assignment, err := h.assignmentService.Get(r.Context(), chi.URLParam(r, "assignmentID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, assignment)
}

func (h *AssignmentHandler) updateAssignment(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	assignment, err := h.assignmentService.Update(r.Context(), chi.URLParam(r, "assignmentID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, assignment)
}

func (h *AssignmentHandler) deleteAssignment(w http.ResponseWriter, r *http.Request) {
	if err := h.assignmentService.Delete(r.Context(), chi.URLParam(r, "assignmentID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

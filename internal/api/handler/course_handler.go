package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/api/middleware"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/app/service"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common"
)

type CourseHandler struct {
	courseService *service.CourseService
}

func NewCourseHandler(cs *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: cs}
}

func (h *CourseHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listCourses)
	r.Get("/{courseID}", h.getCourse)
	r.Get("/slug/{courseSlug}", h.getCourseBySlug)
	r.Post("/{courseID}/enroll", h.enroll)

	r.Group(func(profRouter chi.Router) {
		profRouter.Use(middleware.ProfessorOnly)
		profRouter.Post("/", h.createCourse)
		profRouter.Put("/{courseID}", h.updateCourse)
		profRouter.Delete("/{courseID}", h.deleteCourse)
	})
}

func (h *CourseHandler) createCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	course, err := h.courseService.Create(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, course)
}

func (h *CourseHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	role, _ := middleware.GetUserRoleFromContext(r.Context())

	courses, err := h.courseService.List(r.Context(), userID, role)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, courses)
}

func (h *CourseHandler) getCourse(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	role, _ := middleware.GetUserRoleFromContext(r.Context())

	course, err := h.courseService.Get(r.Context(), chi.URLParam(r, "courseID"), userID, role)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) getCourseBySlug(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	role, _ := middleware.GetUserRoleFromContext(r.Context())

	course, err := h.courseService.GetBySlug(r.Context(), chi.URLParam(r, "courseSlug"), userID, role)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) updateCourse(w http.ResponseWriter, r *http.Request) {
	var req service.CourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	course, err := h.courseService.Update(r.Context(), chi.URLParam(r, "courseID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) deleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := h.courseService.Delete(r.Context(), chi.URLParam(r, "courseID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CourseHandler) enroll(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	resp, err := h.courseService.Enroll(r.Context(), userID, chi.URLParam(r, "courseID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/api/middleware"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/app/service"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common"
)

type QuestionHandler struct {
	questionService *service.QuestionService
}

func NewQuestionHandler(qs *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: qs}
}

func (h *QuestionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/assignment/{assignmentID}", h.listByAssignment)
	r.Get("/{questionID}", h.getQuestion)
	r.Get("/{questionID}/testcases", h.listTestcases)

	r.Group(func(profRouter chi.Router) {
		profRouter.Use(middleware.ProfessorOnly)
		profRouter.Post("/", h.createQuestion)
		profRouter.Put("/{questionID}", h.updateQuestion)
		profRouter.Delete("/{questionID}", h.deleteQuestion)
		profRouter.Post("/{questionID}/testcases", h.addTestcase)
	})
}

func (h *QuestionHandler) createQuestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	question, err := h.questionService.Create(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, question)
}

func (h *QuestionHandler) listByAssignment(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questionService.ListByAssignment(r.Context(), chi.URLParam(r, "assignmentID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, questions)
}

func (h *QuestionHandler) getQuestion(w http.ResponseWriter, r *http.Request) {
	question, err := h.questionService.Get(r.Context(), chi.URLParam(r, "questionID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, question)
}

func (h *QuestionHandler) updateQuestion(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	question, err := h.questionService.Update(r.Context(), chi.URLParam(r, "questionID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, question)
}

func (h *QuestionHandler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := h.questionService.Delete(r.Context(), chi.URLParam(r, "questionID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *QuestionHandler) addTestcase(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateTestcaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	tc, err := h.questionService.AddTestcase(r.Context(), userID, chi.URLParam(r, "questionID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, tc)
}

func (h *QuestionHandler) listTestcases(w http.ResponseWriter, r *http.Request) {
	role, _ := middleware.GetUserRoleFromContext(r.Context())

	testcases, err := h.questionService.ListTestcases(r.Context(), chi.URLParam(r, "questionID"), role)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, testcases)
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/api/middleware"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/app/service"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common"
)

type TopicHandler struct {
	topicService *service.TopicService
}

func NewTopicHandler(ts *service.TopicService) *TopicHandler {
	return &TopicHandler{topicService: ts}
}

func (h *TopicHandler) RegisterRoutes(r chi.Router) {
	r.Get("/course/{courseID}", h.listByCourse)
	r.Get("/{topicID}", h.getTopic)

	r.Group(func(profRouter chi.Router) {
		profRouter.Use(middleware.ProfessorOnly)
		profRouter.Post("/", h.createTopic)
		profRouter.Put("/{topicID}", h.updateTopic)
		profRouter.Delete("/{topicID}", h.deleteTopic)
	})
}

func (h *TopicHandler) createTopic(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	topic, err := h.topicService.Create(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, topic)
}

func (h *TopicHandler) listByCourse(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	role, _ := middleware.GetUserRoleFromContext(r.Context())

	topics, err := h.topicService.ListByCourse(r.Context(), chi.URLParam(r, "courseID"), userID, role)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, topics)
}

func (h *TopicHandler) getTopic(w http.ResponseWriter, r *http.Request) {
	topic, err := h.topicService.Get(r.Context(), chi.URLParam(r, "topicID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, topic)
}

func (h *TopicHandler) updateTopic(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	topic, err := h.topicService.Update(r.Context(), chi.URLParam(r, "topicID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, topic)
}

func (h *TopicHandler) deleteTopic(w http.ResponseWriter, r *http.Request) {
	if err := h.topicService.Delete(r.Context(), chi.URLParam(r, "topicID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/evangadi/forum-backend/internal/service"
	"github.com/evangadi/forum-backend/internal/util"
)

type AnswerHandler struct {
	answers *service.AnswerService
}

type AnswerCreateRequest struct {
	Answer     string `json:"answer"`
	QuestionID string `json:"question_id"`
}

type AnswerUpdateRequest struct {
	Answer string `json:"answer"`
}

func RegisterAnswers(e *echo.Echo, auth *service.AuthService, answers *service.AnswerService) {
	handler := &AnswerHandler{answers: answers}

	group := e.Group("/api/answers")
	group.POST("", handler.post, RequireAuth(auth))
	group.GET("/:questionid", handler.listForQuestion)
	group.PUT("/:answerid", handler.update, RequireAuth(auth))
	group.DELETE("/:answerid", handler.delete, RequireAuth(auth))
}

func (h *AnswerHandler) post(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Msg("Authentication invalid"))
	}

	var req AnswerCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Msg("Please provide all required fields"))
	}
	if req.Answer == "" || strings.TrimSpace(req.QuestionID) == "" {
		return c.JSON(http.StatusBadRequest, util.Msg("Please provide all required fields"))
	}
	body := strings.TrimSpace(req.Answer)
	if body == "" {
		return c.JSON(http.StatusBadRequest, util.Msg("Answer cannot be empty"))
	}
	questionID, err := uuid.Parse(strings.TrimSpace(req.QuestionID))
	if err != nil {
		return c.JSON(http.StatusNotFound, util.Msg("Question not found"))
	}

	if _, err := h.answers.Post(c.Request().Context(), user.ID, questionID, body); err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			return c.JSON(http.StatusNotFound, util.Msg("Question not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Msg("An unexpected error occurred."))
	}
	return c.JSON(http.StatusCreated, util.Msg("Answer posted successfully"))
}

func (h *AnswerHandler) listForQuestion(c echo.Context) error {
	questionID, err := uuid.Parse(strings.TrimSpace(c.Param("questionid")))
	if err != nil {
		return c.JSON(http.StatusNotFound, util.Msg("Question not found"))
	}

	items, err := h.answers.ListForQuestion(c.Request().Context(), questionID)
	if err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			return c.JSON(http.StatusNotFound, util.Msg("Question not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Msg("An unexpected error occurred."))
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"questionid": questionID,
		"answers":    items,
	})
}

func (h *AnswerHandler) update(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Msg("Authentication invalid"))
	}

	answerID, err := strconv.ParseInt(c.Param("answerid"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, util.Msg("Answer not found"))
	}

	var req AnswerUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Msg("Answer cannot be empty"))
	}
	body := strings.TrimSpace(req.Answer)
	if body == "" {
		return c.JSON(http.StatusBadRequest, util.Msg("Answer cannot be empty"))
	}

	if err := h.answers.Update(c.Request().Context(), user.ID, answerID, body); err != nil {
		switch {
		case errors.Is(err, service.ErrAnswerNotFound):
			return c.JSON(http.StatusNotFound, util.Msg("Answer not found"))
		case errors.Is(err, service.ErrNotAllowed):
			return c.JSON(http.StatusForbidden, util.Msg("Not allowed"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Msg("An unexpected error occurred."))
		}
	}
	return c.JSON(http.StatusOK, util.Msg("Answer updated"))
}

func (h *AnswerHandler) delete(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Msg("Authentication invalid"))
	}

	answerID, err := strconv.ParseInt(c.Param("answerid"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, util.Msg("Answer not found"))
	}

	if err := h.answers.Delete(c.Request().Context(), user.ID, answerID); err != nil {
		switch {
		case errors.Is(err, service.ErrAnswerNotFound):
			return c.JSON(http.StatusNotFound, util.Msg("Answer not found"))
		case errors.Is(err, service.ErrNotAllowed):
			return c.JSON(http.StatusForbidden, util.Msg("Not allowed"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Msg("An unexpected error occurred."))
		}
	}
	return c.JSON(http.StatusOK, util.Msg("Answer deleted"))
}

package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/evangadi/forum-backend/internal/service"
	"github.com/evangadi/forum-backend/internal/util"
)

const maxDescriptionLength = 1000

type QuestionHandler struct {
	questions *service.QuestionService
}

type QuestionCreateRequest struct {
	Question    string  `json:"question"`
	Description string  `json:"question_description"`
	Tag         *string `json:"tag"`
}

type QuestionUpdateRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Tag         *string `json:"tag"`
}

func RegisterQuestions(e *echo.Echo, auth *service.AuthService, questions *service.QuestionService) {
	handler := &QuestionHandler{questions: questions}

	group := e.Group("/api/questions")
	group.POST("", handler.create, RequireAuth(auth))
	group.GET("", handler.list)
	group.GET("/:questionid", handler.get)
	group.PUT("/:questionid", handler.update, RequireAuth(auth))
	group.DELETE("/:questionid", handler.delete, RequireAuth(auth))
}

func (h *QuestionHandler) create(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Msg("Authentication invalid"))
	}

	var req QuestionCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Msg("Please provide all required fields"))
	}
	if req.Question == "" || req.Description == "" {
		return c.JSON(http.StatusBadRequest, util.Msg("Please provide all required fields"))
	}
	title := strings.TrimSpace(req.Question)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return c.JSON(http.StatusBadRequest, util.Msg("Question and description cannot be empty"))
	}
	if len(description) > maxDescriptionLength {
		return c.JSON(http.StatusBadRequest, util.Msg("Description must be 1000 characters or fewer"))
	}

	question, err := h.questions.Create(c.Request().Context(), user.ID, title, description, req.Tag)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Msg("An unexpected error occurred."))
	}

	return c.JSON(http.StatusCreated, util.Envelope{
		"msg":        "Question created successfully",
		"questionid": question.ID,
	})
}

func (h *QuestionHandler) list(c echo.Context) error {
	search := c.QueryParam("q")
	items, err := h.questions.List(c.Request().Context(), search)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Msg("Error fetching questions"))
	}
	return c.JSON(http.StatusOK, util.Data("questions", items))
}

func (h *QuestionHandler) get(c echo.Context) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("questionid")))
	if err != nil {
		return c.JSON(http.StatusNotFound, util.Msg("Question not found"))
	}

	item, err := h.questions.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			return c.JSON(http.StatusNotFound, util.Msg("Question not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Msg("Error fetching question"))
	}
	return c.JSON(http.StatusOK, util.Data("question", item))
}

func (h *QuestionHandler) update(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Msg("Authentication invalid"))
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("questionid")))
	if err != nil {
		return c.JSON(http.StatusNotFound, util.Msg("Question not found"))
	}

	var req QuestionUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Msg("Please provide title and description"))
	}
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return c.JSON(http.StatusBadRequest, util.Msg("Please provide title and description"))
	}
	if len(description) > maxDescriptionLength {
		return c.JSON(http.StatusBadRequest, util.Msg("Description must be 1000 characters or fewer"))
	}

	if err := h.questions.Update(c.Request().Context(), user.ID, id, title, description, req.Tag); err != nil {
		switch {
		case errors.Is(err, service.ErrQuestionNotFound):
			return c.JSON(http.StatusNotFound, util.Msg("Question not found"))
		case errors.Is(err, service.ErrNotAllowed):
			return c.JSON(http.StatusForbidden, util.Msg("Not allowed"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Msg("An unexpected error occurred."))
		}
	}
	return c.JSON(http.StatusOK, util.Msg("Question updated"))
}

func (h *QuestionHandler) delete(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Msg("Authentication invalid"))
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("questionid")))
	if err != nil {
		return c.JSON(http.StatusNotFound, util.Msg("Question not found"))
	}

	if err := h.questions.Delete(c.Request().Context(), user.ID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrQuestionNotFound):
			return c.JSON(http.StatusNotFound, util.Msg("Question not found"))
		case errors.Is(err, service.ErrNotAllowed):
			return c.JSON(http.StatusForbidden, util.Msg("Not allowed"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Msg("An unexpected error occurred."))
		}
	}
	return c.JSON(http.StatusOK, util.Msg("Question deleted"))
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/stepwise-backend/internal/http/response"
	"github.com/yungbote/stepwise-backend/internal/modules/learning"
	"github.com/yungbote/stepwise-backend/internal/modules/learning/quiz"
)

type QuizHandler struct {
	uc learning.Usecases
}

func NewQuizHandler(uc learning.Usecases) *QuizHandler {
	return &QuizHandler{uc: uc}
}

type quizResponse struct {
	Success         bool                   `json:"success"`
	Score           int                    `json:"score"`
	Passed          bool                   `json:"passed"`
	PassingScore    int                    `json:"passing_score"`
	Feedback        []quiz.Feedback        `json:"feedback"`
	LessonCompleted bool                   `json:"lesson_completed"`
	Data            *learning.ProgressView `json:"data,omitempty"`
}

// POST /api/lessons/:lessonId/quiz and /api/quiz/:lessonId/submit
func (h *QuizHandler) Submit(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	lessonID, ok := uuidParam(c, "lessonId")
	if !ok {
		return
	}
	var req struct {
		Answers []int `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx := c.Request.Context()
	courseID, err := h.uc.LessonCourseID(ctx, lessonID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if err := h.uc.RequireAccess(ctx, rd, courseID); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	out, err := h.uc.SubmitQuiz(ctx, rd.UserID, lessonID, req.Answers)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizResponse{
		Success:         true,
		Score:           out.Score,
		Passed:          out.Passed,
		PassingScore:    out.PassingScore,
		Feedback:        out.Feedback,
		LessonCompleted: out.LessonCompleted,
		Data:            out.Progress,
	})
}

// GET /api/lessons/:lessonId/quiz/attempts
func (h *QuizHandler) ListAttempts(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	lessonID, ok := uuidParam(c, "lessonId")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	courseID, err := h.uc.LessonCourseID(ctx, lessonID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if err := h.uc.RequireAccess(ctx, rd, courseID); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	rows, err := h.uc.ListQuizAttempts(ctx, rd.UserID, lessonID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

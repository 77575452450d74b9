package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/stepwise-backend/internal/http/response"
	"github.com/yungbote/stepwise-backend/internal/modules/learning"
)

type LessonHandler struct {
	uc learning.Usecases
}

func NewLessonHandler(uc learning.Usecases) *LessonHandler {
	return &LessonHandler{uc: uc}
}

// GET /api/lessons/:lessonId
func (h *LessonHandler) GetLesson(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	lessonID, ok := uuidParam(c, "lessonId")
	if !ok {
		return
	}
	lesson, err := h.uc.GetLesson(c.Request.Context(), rd, lessonID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, lesson)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/stepwise-backend/internal/data/repos"
	"github.com/yungbote/stepwise-backend/internal/http/response"
	"github.com/yungbote/stepwise-backend/internal/modules/learning"
)

type CourseHandler struct {
	uc learning.Usecases
}

func NewCourseHandler(uc learning.Usecases) *CourseHandler {
	return &CourseHandler{uc: uc}
}

type questionRequest struct {
	Prompt       string   `json:"prompt" binding:"required"`
	Options      []string `json:"options" binding:"required,min=2,dive,required"`
	CorrectIndex *int     `json:"correct_index" binding:"required,min=0"`
	Explanation  string   `json:"explanation"`
}

type lessonRequest struct {
	Title        string            `json:"title" binding:"required"`
	ContentMD    string            `json:"content_md"`
	VideoURL     string            `json:"video_url" binding:"omitempty,url"`
	PassingScore int               `json:"passing_score" binding:"min=0,max=100"`
	Questions    []questionRequest `json:"questions" binding:"dive"`
}

type createCourseRequest struct {
	Title           string          `json:"title" binding:"required"`
	Description     string          `json:"description"`
	Style           string          `json:"style"`
	Level           string          `json:"level" binding:"required,oneof=Beginner Intermediate Advanced"`
	DurationMinutes int             `json:"duration_minutes" binding:"min=0"`
	PriceCents      int             `json:"price_cents" binding:"min=0"`
	Lessons         []lessonRequest `json:"lessons" binding:"dive"`
}

func (r createCourseRequest) input() learning.CourseInput {
	in := learning.CourseInput{
		Title:           r.Title,
		Description:     r.Description,
		Style:           r.Style,
		Level:           r.Level,
		DurationMinutes: r.DurationMinutes,
		PriceCents:      r.PriceCents,
	}
	for _, l := range r.Lessons {
		li := learning.LessonInput{
			Title:        l.Title,
			ContentMD:    l.ContentMD,
			VideoURL:     l.VideoURL,
			PassingScore: l.PassingScore,
		}
		for _, q := range l.Questions {
			qi := learning.QuestionInput{
				Prompt:      q.Prompt,
				Options:     q.Options,
				Explanation: q.Explanation,
			}
			if q.CorrectIndex != nil {
				qi.CorrectIndex = *q.CorrectIndex
			}
			li.Questions = append(li.Questions, qi)
		}
		in.Lessons = append(in.Lessons, li)
	}
	return in
}

// GET /api/courses?style=&level=
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.uc.ListCourses(c.Request.Context(), repos.CourseFilter{
		Style: c.Query("style"),
		Level: c.Query("level"),
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, courses)
}

// GET /api/courses/:courseId
func (h *CourseHandler) GetCourse(c *gin.Context) {
	courseID, ok := uuidParam(c, "courseId")
	if !ok {
		return
	}
	course, err := h.uc.GetCourse(c.Request.Context(), courseID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, course)
}

// POST /api/admin/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req createCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	created, err := h.uc.CreateCourse(c.Request.Context(), req.input())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	course, err := h.uc.GetCourse(c.Request.Context(), created.ID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, course)
}

// DELETE /api/admin/courses/:courseId
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	courseID, ok := uuidParam(c, "courseId")
	if !ok {
		return
	}
	if err := h.uc.DeleteCourse(c.Request.Context(), courseID); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/stepwise-backend/internal/http/response"
	"github.com/yungbote/stepwise-backend/internal/modules/learning"
)

type EnrollmentHandler struct {
	uc learning.Usecases
}

func NewEnrollmentHandler(uc learning.Usecases) *EnrollmentHandler {
	return &EnrollmentHandler{uc: uc}
}

// POST /api/enrollments/courses/:courseId
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	courseID, ok := uuidParam(c, "courseId")
	if !ok {
		return
	}
	e, err := h.uc.Enroll(c.Request.Context(), rd.UserID, courseID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, e)
}

// GET /api/enrollments
func (h *EnrollmentHandler) List(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	rows, err := h.uc.ListEnrollments(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// POST /api/enrollments/:enrollmentId/cancel
func (h *EnrollmentHandler) Cancel(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	enrollmentID, ok := uuidParam(c, "enrollmentId")
	if !ok {
		return
	}
	e, err := h.uc.CancelEnrollment(c.Request.Context(), rd, enrollmentID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, e)
}

// PATCH /api/admin/enrollments/:enrollmentId/status
func (h *EnrollmentHandler) SetStatus(c *gin.Context) {
	enrollmentID, ok := uuidParam(c, "enrollmentId")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	e, err := h.uc.SetEnrollmentStatus(c.Request.Context(), enrollmentID, req.Status)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, e)
}

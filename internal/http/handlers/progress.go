package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/stepwise-backend/internal/http/response"
	"github.com/yungbote/stepwise-backend/internal/modules/learning"
	"github.com/yungbote/stepwise-backend/internal/platform/ctxutil"
)

type ProgressHandler struct {
	uc learning.Usecases
}

func NewProgressHandler(uc learning.Usecases) *ProgressHandler {
	return &ProgressHandler{uc: uc}
}

type progressTarget struct {
	caller   *ctxutil.RequestData
	userID   uuid.UUID
	courseID uuid.UUID
	lessonID uuid.UUID
}

// target parses :userId/:courseId[/:lessonId] and allows only the user
// themself or an admin.
func (h *ProgressHandler) target(c *gin.Context, withLesson bool) (progressTarget, bool) {
	rd, ok := caller(c)
	if !ok {
		return progressTarget{}, false
	}
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return progressTarget{}, false
	}
	courseID, ok := uuidParam(c, "courseId")
	if !ok {
		return progressTarget{}, false
	}
	t := progressTarget{caller: rd, userID: userID, courseID: courseID}
	if withLesson {
		if t.lessonID, ok = uuidParam(c, "lessonId"); !ok {
			return progressTarget{}, false
		}
	}
	if rd.UserID != userID && !rd.IsAdmin() {
		response.RespondError(c, http.StatusForbidden, "forbidden", errors.New("cannot access another user's progress"))
		return progressTarget{}, false
	}
	return t, true
}

// POST /api/progress/:userId/courses/:courseId/lessons/:lessonId
func (h *ProgressHandler) MarkComplete(c *gin.Context) {
	t, ok := h.target(c, true)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if err := h.uc.RequireAccess(ctx, t.caller, t.courseID); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	view, err := h.uc.MarkLessonComplete(ctx, t.userID, t.courseID, t.lessonID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, view)
}

// DELETE /api/progress/:userId/courses/:courseId/lessons/:lessonId
func (h *ProgressHandler) Unmark(c *gin.Context) {
	t, ok := h.target(c, true)
	if !ok {
		return
	}
	view, err := h.uc.UnmarkLesson(c.Request.Context(), t.userID, t.courseID, t.lessonID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, view)
}

// PUT /api/progress/:userId/courses/:courseId/lessons/:lessonId/note
func (h *ProgressHandler) SetNote(c *gin.Context) {
	t, ok := h.target(c, true)
	if !ok {
		return
	}
	var req struct {
		Note *string `json:"note" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	view, err := h.uc.AddNote(c.Request.Context(), t.userID, t.courseID, t.lessonID, *req.Note)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, view)
}

// GET /api/progress/:userId/courses/:courseId
func (h *ProgressHandler) Get(c *gin.Context) {
	t, ok := h.target(c, false)
	if !ok {
		return
	}
	view, err := h.uc.GetProgress(c.Request.Context(), t.userID, t.courseID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, view)
}

// GET /api/progress/:userId/courses/:courseId/certificate
func (h *ProgressHandler) DownloadCertificate(c *gin.Context) {
	t, ok := h.target(c, false)
	if !ok {
		return
	}
	doc, cert, err := h.uc.DownloadCertificate(c.Request.Context(), t.userID, t.courseID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", cert.CertificateNumber+".pdf"))
	c.Data(http.StatusOK, "application/pdf", doc)
}

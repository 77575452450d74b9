package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/stepwise-backend/internal/http/response"
	"github.com/yungbote/stepwise-backend/internal/modules/learning"
)

type CertificateHandler struct {
	uc learning.Usecases
}

func NewCertificateHandler(uc learning.Usecases) *CertificateHandler {
	return &CertificateHandler{uc: uc}
}

// GET /api/certificates/:certificateId/verify
func (h *CertificateHandler) Verify(c *gin.Context) {
	v, err := h.uc.VerifyCertificate(c.Request.Context(), c.Param("certificateId"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, v)
}

// POST /api/admin/certificates/:certificateId/revoke
func (h *CertificateHandler) Revoke(c *gin.Context) {
	cert, err := h.uc.RevokeCertificate(c.Request.Context(), c.Param("certificateId"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, cert)
}

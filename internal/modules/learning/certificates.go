package learning

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/stepwise-backend/internal/domain"
	"github.com/yungbote/stepwise-backend/internal/modules/learning/certificate"
	"github.com/yungbote/stepwise-backend/internal/platform/apierr"
	"github.com/yungbote/stepwise-backend/internal/platform/dbctx"
)

type issuedCertificate struct {
	cert *types.Certificate
	doc  []byte
}

type CertificateVerification struct {
	CertificateID string    `json:"certificate_id"`
	RecipientName string    `json:"recipient_name"`
	CourseTitle   string    `json:"course_title"`
	IssuedAt      time.Time `json:"issued_at"`
	Status        string    `json:"status"`
	Valid         bool      `json:"valid"`
}

func certificateData(c *types.Certificate) certificate.Data {
	return certificate.Data{
		CertificateNumber: c.CertificateNumber,
		RecipientName:     c.RecipientName,
		CourseTitle:       c.CourseTitle,
		IssuedAt:          c.IssuedAt,
	}
}

// issueCertificate is a no-op (nil, nil) unless the record is complete and
// still uncertified. The compare-and-set on certificate_issued decides which
// of several concurrent callers wins; a render failure aborts the caller's
// transaction.
func (u Usecases) issueCertificate(dbc dbctx.Context, rec *types.ProgressRecord, ref courseRef) (*issuedCertificate, error) {
	if rec == nil || rec.CertificateIssued || rec.CompletedAt == nil {
		return nil, nil
	}
	if Percentage(rec, ref.lessonIDs) != 100 {
		return nil, nil
	}

	number, err := certificate.NewNumber()
	if err != nil {
		return nil, apierr.Internal("certificate_number_failed", err)
	}
	issuedAt := u.now().Truncate(time.Second)
	claimed, err := u.deps.Progress.ClaimCertificate(dbc, rec.ID, number, issuedAt)
	if err != nil {
		return nil, apierr.Internal("claim_certificate_failed", err)
	}
	if !claimed {
		return nil, nil
	}

	cert := &types.Certificate{
		CertificateNumber: number,
		UserID:            rec.UserID,
		CourseID:          rec.CourseID,
		RecipientName:     ref.user.Name,
		CourseTitle:       ref.course.Title,
		IssuedAt:          issuedAt,
		Status:            types.CertificateIssued,
	}
	doc, err := u.deps.Renderer.Render(certificateData(cert))
	if err != nil {
		return nil, apierr.Internal("render_certificate_failed", err)
	}
	cert.DocumentSHA256 = certificate.Checksum(doc)
	if _, err := u.deps.Certificates.Create(dbc, cert); err != nil {
		return nil, apierr.Internal("create_certificate_failed", err)
	}
	if _, err := u.deps.Enrollments.CompleteActive(dbc, rec.UserID, rec.CourseID); err != nil {
		return nil, apierr.Internal("complete_enrollment_failed", err)
	}
	u.deps.Log.Info("certificate issued",
		"certificate_number", number,
		"user_id", rec.UserID,
		"course_id", rec.CourseID,
	)
	return &issuedCertificate{cert: cert, doc: doc}, nil
}

func archiveKey(c *types.Certificate) string {
	return fmt.Sprintf("certificates/%s/%s.pdf", c.UserID, c.CertificateNumber)
}

// archiveCertificate copies the issued PDF to object storage. Failures are
// logged and leave archive_key empty.
func (u Usecases) archiveCertificate(ctx context.Context, ic *issuedCertificate) {
	if ic == nil || u.deps.Archive == nil || !u.deps.Archive.Enabled() {
		return
	}
	key := archiveKey(ic.cert)
	if err := u.deps.Archive.UploadFile(ctx, key, "application/pdf", ic.doc); err != nil {
		u.deps.Log.Warn("certificate archive failed", "certificate_number", ic.cert.CertificateNumber, "error", err)
		return
	}
	if err := u.deps.Certificates.SetArchiveKey(dbctx.Context{Ctx: ctx}, ic.cert.ID, key); err != nil {
		u.deps.Log.Warn("certificate archive key not saved", "certificate_number", ic.cert.CertificateNumber, "error", err)
		return
	}
	ic.cert.ArchiveKey = key
}

// RenderCertificate re-derives the PDF for a stored certificate.
func (u Usecases) RenderCertificate(ctx context.Context, userID, courseID uuid.UUID, certificateNumber string) ([]byte, error) {
	cert, err := u.deps.Certificates.GetByNumber(dbctx.Context{Ctx: ctx}, certificateNumber)
	if err != nil {
		return nil, apierr.Internal("load_certificate_failed", err)
	}
	if cert == nil || cert.UserID != userID || cert.CourseID != courseID {
		return nil, apierr.NotFound("certificate_not_found", "certificate not found")
	}
	doc, err := u.deps.Renderer.Render(certificateData(cert))
	if err != nil {
		return nil, apierr.Internal("render_certificate_failed", err)
	}
	return doc, nil
}

// DownloadCertificate returns the PDF for the pair once it has been issued.
func (u Usecases) DownloadCertificate(ctx context.Context, userID, courseID uuid.UUID) ([]byte, *types.Certificate, error) {
	dbc := dbctx.Context{Ctx: ctx}
	rec, err := u.deps.Progress.Get(dbc, userID, courseID, false)
	if err != nil {
		return nil, nil, apierr.Internal("load_progress_failed", err)
	}
	if rec == nil {
		return nil, nil, apierr.NotFound("progress_not_found", "no progress recorded for this course")
	}
	if !rec.CertificateIssued || rec.CertificateID == "" {
		return nil, nil, apierr.NotFound("certificate_not_issued", "certificate has not been issued yet")
	}
	cert, err := u.deps.Certificates.GetByNumber(dbc, rec.CertificateID)
	if err != nil {
		return nil, nil, apierr.Internal("load_certificate_failed", err)
	}
	if cert == nil {
		return nil, nil, apierr.NotFound("certificate_not_found", "certificate not found")
	}
	if cert.Status == types.CertificateRevoked {
		return nil, nil, apierr.NotFound("certificate_revoked", "certificate has been revoked")
	}
	doc, err := u.RenderCertificate(ctx, userID, courseID, cert.CertificateNumber)
	if err != nil {
		return nil, nil, err
	}
	return doc, cert, nil
}

func (u Usecases) VerifyCertificate(ctx context.Context, number string) (*CertificateVerification, error) {
	if !certificate.ValidNumber(number) {
		return nil, apierr.NotFound("certificate_not_found", "certificate not found")
	}
	cert, err := u.deps.Certificates.GetByNumber(dbctx.Context{Ctx: ctx}, number)
	if err != nil {
		return nil, apierr.Internal("load_certificate_failed", err)
	}
	if cert == nil {
		return nil, apierr.NotFound("certificate_not_found", "certificate not found")
	}
	return &CertificateVerification{
		CertificateID: cert.CertificateNumber,
		RecipientName: cert.RecipientName,
		CourseTitle:   cert.CourseTitle,
		IssuedAt:      cert.IssuedAt,
		Status:        cert.Status,
		Valid:         cert.Status == types.CertificateIssued,
	}, nil
}

// RevokeCertificate marks the certificate revoked. The progress record keeps
// its certified state.
func (u Usecases) RevokeCertificate(ctx context.Context, number string) (*types.Certificate, error) {
	var out *types.Certificate
	err := u.inTx(ctx, func(dbc dbctx.Context) error {
		cert, err := u.deps.Certificates.GetByNumber(dbc, number)
		if err != nil {
			return apierr.Internal("load_certificate_failed", err)
		}
		if cert == nil {
			return apierr.NotFound("certificate_not_found", "certificate not found")
		}
		if cert.Status != types.CertificateRevoked {
			if err := u.deps.Certificates.UpdateStatus(dbc, cert.ID, types.CertificateRevoked); err != nil {
				return apierr.Internal("revoke_certificate_failed", err)
			}
			cert.Status = types.CertificateRevoked
		}
		out = cert
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

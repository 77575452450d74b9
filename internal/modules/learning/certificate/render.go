// Package certificate renders course completion certificates as PDF.
package certificate

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font"

	"github.com/yungbote/stepwise-backend/internal/platform/logger"
)

// Data is everything printed on a certificate. Render output depends on
// nothing else.
type Data struct {
	CertificateNumber string
	RecipientName     string
	CourseTitle       string
	IssuedAt          time.Time
}

type Renderer interface {
	Render(d Data) ([]byte, error)
}

type RendererConfig struct {
	IssuerName string
	// SealFontPath is an optional TrueType font for the seal label.
	SealFontPath string
}

type pdfRenderer struct {
	log        *logger.Logger
	issuerName string

	sealOnce sync.Once
	seal     []byte
	sealErr  error
	sealFace font.Face
}

func NewRenderer(cfg RendererConfig, log *logger.Logger) (Renderer, error) {
	r := &pdfRenderer{
		log:        log.With("service", "CertificateRenderer"),
		issuerName: strings.TrimSpace(cfg.IssuerName),
	}
	if r.issuerName == "" {
		r.issuerName = "Stepwise Dance Academy"
	}
	if cfg.SealFontPath != "" {
		face, err := loadFontFace(cfg.SealFontPath, 28)
		if err != nil {
			return nil, fmt.Errorf("could not load seal font: %w", err)
		}
		r.sealFace = face
	}
	return r, nil
}

func (r *pdfRenderer) sealPNG() ([]byte, error) {
	r.sealOnce.Do(func() {
		r.seal, r.sealErr = drawSeal("CERTIFIED", r.sealFace)
	})
	return r.seal, r.sealErr
}

func (r *pdfRenderer) Render(d Data) ([]byte, error) {
	if d.CertificateNumber == "" || d.IssuedAt.IsZero() {
		return nil, fmt.Errorf("certificate number and issue date are required")
	}
	seal, err := r.sealPNG()
	if err != nil {
		return nil, err
	}

	issued := d.IssuedAt.UTC()
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetCreationDate(issued)
	pdf.SetModificationDate(issued)
	pdf.SetCatalogSort(true)
	pdf.SetCompression(true)
	pdf.SetTitle("Certificate of Completion "+d.CertificateNumber, true)
	pdf.SetAuthor(r.issuerName, true)
	pdf.SetSubject(d.CourseTitle, true)
	pdf.SetCreator("stepwise", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	w, h := pdf.GetPageSize()

	pdf.SetDrawColor(122, 92, 16)
	pdf.SetLineWidth(2)
	pdf.Rect(10, 10, w-20, h-20, "D")
	pdf.SetLineWidth(0.5)
	pdf.Rect(14, 14, w-28, h-28, "D")

	pdf.SetTextColor(40, 40, 40)
	pdf.SetFont("Times", "B", 34)
	pdf.SetXY(20, 32)
	pdf.CellFormat(w-40, 16, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetXY(20, 58)
	pdf.CellFormat(w-40, 8, "This certifies that", "", 1, "C", false, 0, "")

	pdf.SetFont("Times", "BI", 30)
	pdf.SetXY(20, 70)
	pdf.CellFormat(w-40, 16, tr(d.RecipientName), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetXY(20, 92)
	pdf.CellFormat(w-40, 8, "has successfully completed the course", "", 1, "C", false, 0, "")

	pdf.SetFont("Times", "B", 22)
	pdf.SetXY(20, 104)
	pdf.MultiCell(w-40, 10, tr(d.CourseTitle), "", "C", false)

	pdf.RegisterImageOptionsReader("seal", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(seal))
	pdf.ImageOptions("seal", w/2-20, h-78, 40, 40, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetXY(30, h-48)
	pdf.CellFormat(90, 6, "Issued "+issued.Format("January 2, 2006"), "", 0, "L", false, 0, "")
	pdf.SetXY(w-120, h-48)
	pdf.CellFormat(90, 6, tr(r.issuerName), "", 0, "R", false, 0, "")

	pdf.SetFont("Courier", "", 10)
	pdf.SetXY(20, h-30)
	pdf.CellFormat(w-40, 6, "Certificate ID "+d.CertificateNumber, "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render certificate pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func Checksum(doc []byte) string {
	sum := sha256.Sum256(doc)
	return hex.EncodeToString(sum[:])
}

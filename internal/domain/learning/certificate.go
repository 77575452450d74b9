package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CertificateIssued  = "issued"
	CertificateRevoked = "revoked"
)

type Certificate struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CertificateNumber string    `gorm:"column:certificate_number;uniqueIndex;not null" json:"certificate_id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_certificate_user_course,priority:1" json:"user_id"`
	CourseID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_certificate_user_course,priority:2" json:"course_id"`
	RecipientName     string    `gorm:"column:recipient_name;not null" json:"recipient_name"`
	CourseTitle       string    `gorm:"column:course_title;not null" json:"course_title"`
	IssuedAt          time.Time `gorm:"column:issued_at;not null" json:"issued_at"`
	Status            string    `gorm:"column:status;not null;default:'issued'" json:"status"`
	DocumentSHA256    string    `gorm:"column:document_sha256" json:"document_sha256,omitempty"`
	ArchiveKey        string    `gorm:"column:archive_key" json:"archive_key,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Certificate) TableName() string { return "certificate" }

func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = CertificateIssued
	}
	return nil
}

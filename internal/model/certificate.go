package model

import "time"

type CertificateStatus string

const (
	CertificateActive  CertificateStatus = "ACTIVE"
	CertificateRevoked CertificateStatus = "REVOKED"
)

// Certificate 人工签发的结业证书，与成绩记录互相独立
// swagger:model Certificate
type Certificate struct {
	BaseModel
	StudentID    uint              `gorm:"index;type:bigint unsigned" json:"studentId"`
	CourseID     *uint             `gorm:"type:bigint unsigned" json:"courseId,omitempty"`
	ProgramID    *uint             `gorm:"type:bigint unsigned" json:"programId,omitempty"`
	SerialNumber string            `gorm:"size:36;unique" json:"serialNumber"`
	Status       CertificateStatus `gorm:"type:enum('ACTIVE','REVOKED');default:'ACTIVE'" json:"status"`
	IssuedBy     uint              `gorm:"type:bigint unsigned" json:"issuedBy"`
	IssuedAt     time.Time         `json:"issuedAt"`
	RevokedAt    *time.Time        `json:"revokedAt,omitempty"`
}

func (Certificate) TableName() string {
	return "certificates"
}

package entity

import (
	"time"

	"gorm.io/datatypes"
)

// 报告状态常量
const (
	ReportStatusProcessing = "PROCESSING"
	ReportStatusCompleted  = "COMPLETED"
	ReportStatusFailed     = "FAILED"
)

// Report 报告持久化模型
type Report struct {
	ID           string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Tool         string         `gorm:"type:varchar(32);not null;index" json:"tool"`
	FileName     string         `gorm:"type:varchar(255)" json:"file_name"`
	Status       string         `gorm:"type:varchar(16);not null;index" json:"status"`
	Result       datatypes.JSON `gorm:"type:json" json:"result,omitempty"`
	ErrorMessage string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// TableName 指定表名
func (Report) TableName() string {
	return "reports"
}

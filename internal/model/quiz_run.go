package model

import (
	"time"

	"gorm.io/gorm"
)

// QuizRun 存储一次已完成测验的结果记录
type QuizRun struct {
	gorm.Model
	SessionID      string    `gorm:"size:36;index" json:"sessionId"`
	Mode           string    `gorm:"size:20" json:"mode"`
	Score          int       `gorm:"not null" json:"score"`
	Total          int       `gorm:"not null" json:"total"`
	ScorePercent   float64   `json:"scorePercent"`
	ReadinessLevel string    `gorm:"size:64" json:"readinessLevel"`
	CompletedAt    time.Time `json:"completedAt"`
}

func (QuizRun) TableName() string {
	return "quiz_runs"
}

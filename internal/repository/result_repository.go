package repository

import (
	"aws_quiz_backend/internal/model"

	"gorm.io/gorm"
)

// ResultRepository persists records of completed quiz runs.
type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

func (r *ResultRepository) Create(run *model.QuizRun) error {
	return r.DB.Create(run).Error
}

func (r *ResultRepository) ListRecent(limit int) ([]model.QuizRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []model.QuizRun
	err := r.DB.Order("completed_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}

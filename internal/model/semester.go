package model

import (
	"time"

	"github.com/google/uuid"
)

// Semester 学期表，提供课程循环与学习计划的学期边界
type Semester struct {
	SemesterID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"semesterId"`
	Name       string    `gorm:"type:varchar(64);not null" json:"name"`
	StartDate  time.Time `gorm:"type:date;not null" json:"startDate"`
	EndDate    time.Time `gorm:"type:date;not null" json:"endDate"`
	IsActive   bool      `gorm:"not null;default:false" json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName 指定表名
func (Semester) TableName() string {
	return "semesters"
}

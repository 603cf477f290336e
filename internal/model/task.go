package model

import (
	"time"

	"github.com/google/uuid"
)

// Task 任务表，作业/项目导入时生成的伴生待办
type Task struct {
	TaskID      uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"taskId"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"`
	TaskName    string     `gorm:"type:varchar(255);not null" json:"taskName"`
	CourseName  string     `gorm:"type:varchar(128)" json:"courseName"`
	DueDate     *time.Time `json:"dueDate"`
	Colour      string     `gorm:"type:varchar(16)" json:"colour"`
	Description string     `gorm:"type:text" json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName 指定表名
func (Task) TableName() string {
	return "tasks"
}

package repository

import "gorm.io/gorm"

// Repository 聚合所有数据访问接口
type Repository struct {
	User     UserRepository
	Semester SemesterRepository
	Calendar CalendarRepository
	Task     TaskRepository
}

// NewRepository 构造数据访问层
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:     NewUserRepository(db),
		Semester: NewSemesterRepository(db),
		Calendar: NewCalendarRepository(db),
		Task:     NewTaskRepository(db),
	}
}

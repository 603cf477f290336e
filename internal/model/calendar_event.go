package model

import (
	"time"

	"github.com/google/uuid"
)

// CalendarEvent 日历事件表
//
// RRule 非空表示按周循环的课程事件；TaskID 非空表示与任务关联的截止事件。
type CalendarEvent struct {
	CalendarID    uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"calendarId"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"`
	TaskID        *uuid.UUID `gorm:"type:uuid" json:"taskId"`
	Title         string     `gorm:"type:varchar(255);not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	Location      string     `gorm:"type:varchar(255)" json:"location"`
	StartDatetime time.Time  `gorm:"not null" json:"startDatetime"`
	EndDatetime   time.Time  `gorm:"not null" json:"endDatetime"`
	AllDay        bool       `gorm:"not null;default:false" json:"allDay"`
	RRule         string     `gorm:"column:rrule;type:varchar(255)" json:"rrule,omitempty"`
	TzID          string     `gorm:"column:tzid;type:varchar(64)" json:"tzid,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// TableName 指定表名
func (CalendarEvent) TableName() string {
	return "calendar_events"
}

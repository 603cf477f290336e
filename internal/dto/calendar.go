package dto

import "time"

// CreateEventRequest 创建日历事件请求
type CreateEventRequest struct {
	Title         string     `json:"title" binding:"required,max=255"`
	Description   string     `json:"description"`
	Location      string     `json:"location"`
	StartDatetime time.Time  `json:"startDatetime" binding:"required"`
	EndDatetime   time.Time  `json:"endDatetime" binding:"required"`
	AllDay        bool       `json:"allDay"`
	RRule         string     `json:"rrule"`
	TzID          string     `json:"tzid"`
	TaskID        *string    `json:"taskId"`
}

// UpdateEventRequest 更新日历事件请求，nil 字段不变
type UpdateEventRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	Location      *string    `json:"location"`
	StartDatetime *time.Time `json:"startDatetime"`
	EndDatetime   *time.Time `json:"endDatetime"`
	AllDay        *bool      `json:"allDay"`
	RRule         *string    `json:"rrule"`
	TzID          *string    `json:"tzid"`
}

// ListEventsQuery 事件列表查询参数
type ListEventsQuery struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

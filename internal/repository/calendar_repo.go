package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"study-scheduler/internal/model"
)

// CalendarRepository 日历事件数据访问接口
type CalendarRepository interface {
	Create(ctx context.Context, event *model.CalendarEvent) error
	GetByID(ctx context.Context, calendarID uuid.UUID) (*model.CalendarEvent, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.CalendarEvent, error)
	ListByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]model.CalendarEvent, error)
	Update(ctx context.Context, event *model.CalendarEvent) error
	Delete(ctx context.Context, calendarID uuid.UUID) error
}

type calendarRepository struct {
	db *gorm.DB
}

// NewCalendarRepository 构造日历事件仓储
func NewCalendarRepository(db *gorm.DB) CalendarRepository {
	return &calendarRepository{db: db}
}

func (r *calendarRepository) Create(ctx context.Context, event *model.CalendarEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *calendarRepository) GetByID(ctx context.Context, calendarID uuid.UUID) (*model.CalendarEvent, error) {
	var event model.CalendarEvent
	if err := r.db.WithContext(ctx).First(&event, "calendar_id = ?", calendarID).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *calendarRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.CalendarEvent, error) {
	var events []model.CalendarEvent
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_datetime ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *calendarRepository) ListByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]model.CalendarEvent, error) {
	var events []model.CalendarEvent
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND start_datetime >= ? AND start_datetime < ?", userID, from, to).
		Order("start_datetime ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *calendarRepository) Update(ctx context.Context, event *model.CalendarEvent) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *calendarRepository) Delete(ctx context.Context, calendarID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CalendarEvent{}, "calendar_id = ?", calendarID).Error
}

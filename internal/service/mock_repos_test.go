package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"study-scheduler/internal/model"
	"study-scheduler/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == uuid.Nil {
		user.UserID = uuid.New()
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, userID uuid.UUID) (*model.User, error) {
	if u, ok := m.users[userID]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByNetlink(_ context.Context, netlink string) (*model.User, error) {
	for _, u := range m.users {
		if u.Netlink == netlink {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock SemesterRepository ──

type mockSemesterRepo struct {
	semesters map[uuid.UUID]*model.Semester
}

func newMockSemesterRepo() *mockSemesterRepo {
	return &mockSemesterRepo{semesters: make(map[uuid.UUID]*model.Semester)}
}

func (m *mockSemesterRepo) Create(_ context.Context, semester *model.Semester) error {
	if semester.SemesterID == uuid.Nil {
		semester.SemesterID = uuid.New()
	}
	m.semesters[semester.SemesterID] = semester
	return nil
}

func (m *mockSemesterRepo) GetByID(_ context.Context, semesterID uuid.UUID) (*model.Semester, error) {
	if s, ok := m.semesters[semesterID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSemesterRepo) GetActive(_ context.Context) (*model.Semester, error) {
	for _, s := range m.semesters {
		if s.IsActive {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSemesterRepo) List(_ context.Context) ([]model.Semester, error) {
	var result []model.Semester
	for _, s := range m.semesters {
		result = append(result, *s)
	}
	return result, nil
}

// ── Mock CalendarRepository ──

type mockCalendarRepo struct {
	events map[uuid.UUID]*model.CalendarEvent
	order  []uuid.UUID

	// failOnTitle 非空时，标题包含该子串的创建/删除返回错误（模拟部分失败）
	failOnTitle string
}

func newMockCalendarRepo() *mockCalendarRepo {
	return &mockCalendarRepo{events: make(map[uuid.UUID]*model.CalendarEvent)}
}

var errMockStorage = errors.New("模拟存储故障")

func (m *mockCalendarRepo) Create(_ context.Context, event *model.CalendarEvent) error {
	if m.failOnTitle != "" && strings.Contains(event.Title, m.failOnTitle) {
		return errMockStorage
	}
	if event.CalendarID == uuid.Nil {
		event.CalendarID = uuid.New()
	}
	m.events[event.CalendarID] = event
	m.order = append(m.order, event.CalendarID)
	return nil
}

func (m *mockCalendarRepo) GetByID(_ context.Context, calendarID uuid.UUID) (*model.CalendarEvent, error) {
	if e, ok := m.events[calendarID]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCalendarRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.CalendarEvent, error) {
	var result []model.CalendarEvent
	for _, id := range m.order {
		if e, ok := m.events[id]; ok && e.UserID == userID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockCalendarRepo) ListByUserInRange(_ context.Context, userID uuid.UUID, from, to time.Time) ([]model.CalendarEvent, error) {
	var result []model.CalendarEvent
	for _, id := range m.order {
		e, ok := m.events[id]
		if !ok || e.UserID != userID {
			continue
		}
		if e.StartDatetime.Before(from) || !e.StartDatetime.Before(to) {
			continue
		}
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockCalendarRepo) Update(_ context.Context, event *model.CalendarEvent) error {
	if _, ok := m.events[event.CalendarID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.events[event.CalendarID] = event
	return nil
}

func (m *mockCalendarRepo) Delete(_ context.Context, calendarID uuid.UUID) error {
	if e, ok := m.events[calendarID]; ok {
		if m.failOnTitle != "" && strings.Contains(e.Title, m.failOnTitle) {
			return errMockStorage
		}
		delete(m.events, calendarID)
		return nil
	}
	return nil
}

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	tasks map[uuid.UUID]*model.Task
	order []uuid.UUID
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[uuid.UUID]*model.Task)}
}

func (m *mockTaskRepo) Create(_ context.Context, task *model.Task) error {
	if task.TaskID == uuid.Nil {
		task.TaskID = uuid.New()
	}
	m.tasks[task.TaskID] = task
	m.order = append(m.order, task.TaskID)
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, taskID uuid.UUID) (*model.Task, error) {
	if t, ok := m.tasks[taskID]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Task, error) {
	var result []model.Task
	for _, id := range m.order {
		if t, ok := m.tasks[id]; ok && t.UserID == userID {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTaskRepo) Update(_ context.Context, task *model.Task) error {
	if _, ok := m.tasks[task.TaskID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.tasks[task.TaskID] = task
	return nil
}

func (m *mockTaskRepo) Delete(_ context.Context, taskID uuid.UUID) error {
	delete(m.tasks, taskID)
	return nil
}

// ── 测试装配 ──

func newTestRepo() (*repository.Repository, *mockCalendarRepo, *mockTaskRepo) {
	calendarRepo := newMockCalendarRepo()
	taskRepo := newMockTaskRepo()
	return &repository.Repository{
		User:     newMockUserRepo(),
		Semester: newMockSemesterRepo(),
		Calendar: calendarRepo,
		Task:     taskRepo,
	}, calendarRepo, taskRepo
}

// ── Fake StudyPlanner ──

// fakePlanner 可编程的计划生成器：sessions 为 nil 时返回 err
type fakePlanner struct {
	sessions []model.StudySession
	err      error
}

func (f *fakePlanner) GeneratePlan(_ context.Context, _ []model.AssignmentItem, _ []model.CalendarEvent) ([]model.StudySession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions, nil
}

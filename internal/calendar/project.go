package calendar

import (
	"fmt"
	"sort"
	"time"

	"campus-calendar/backend/internal/model"
)

// ── 投影渲染模型 ──

const (
	// DisplayBackground 背景条目（节假日），渲染在前景日程之后、不可交互
	DisplayBackground = "background"

	// HolidayColor 节假日背景色
	HolidayColor = "#fdeaea"

	dateLayout = "2006-01-02"
)

// EntryProps 日历条目的扩展元数据，供下游过滤与打印使用
type EntryProps struct {
	ScheduleID   string `json:"schedule_id,omitempty"`
	DepartmentID string `json:"department_id,omitempty"`
	Department   string `json:"department,omitempty"`
	Visibility   string `json:"visibility,omitempty"`
	Printable    bool   `json:"printable"`
	Description  string `json:"description,omitempty"`
	Holiday      bool   `json:"holiday,omitempty"`
}

// Entry 统一渲染模型：背景（节假日）条目或前景（日程）条目。
// JSON 形态与前端日历组件的事件对象约定一致；
// End 为【不含端点】的次日日期（全天事件惯例），单日条目省略。
type Entry struct {
	ID      string     `json:"id,omitempty"`
	Title   string     `json:"title"`
	Start   string     `json:"start"` // "2006-01-02"
	End     string     `json:"end,omitempty"`
	Color   string     `json:"color,omitempty"`
	Display string     `json:"display,omitempty"`
	Props   EntryProps `json:"extendedProps"`
}

// Project 将日程、年度设置与部门合并为有序的可渲染条目序列。
//
// 输出顺序：背景（节假日）条目在前，前景（日程）条目在后；
// 节假日按键升序（固定节假日 "MMDD"、浮动节假日 "YYYY-MM-DD"），
// 日程保持入参顺序。相同输入两次调用产出完全相同的序列。
//
// 对类型正确的输入全函数不失败：引用未知部门的日程以默认配色输出，
// 无法解析的节假日键直接跳过。
func Project(schedules []model.Schedule, settings model.CalendarSettings, departments []model.Department) []Entry {
	deptIndex := make(map[string]model.Department, len(departments))
	for _, d := range departments {
		deptIndex[d.DepartmentID] = d
	}

	entries := make([]Entry, 0, len(settings.FixedHolidays)+len(settings.VariableHolidays)+len(schedules))

	// ── 背景条目：固定节假日（月日编码 → 学年年份） ──
	for _, code := range sortedKeys(settings.FixedHolidays) {
		date, ok := fixedHolidayDate(code, settings.AcademicYear)
		if !ok {
			continue
		}
		entries = append(entries, holidayEntry(settings.FixedHolidays[code], date))
	}

	// ── 背景条目：浮动节假日（完整日期） ──
	for _, key := range sortedKeys(settings.VariableHolidays) {
		date, err := time.Parse(dateLayout, key)
		if err != nil {
			continue
		}
		entries = append(entries, holidayEntry(settings.VariableHolidays[key], date))
	}

	// ── 前景条目：日程 ──
	for _, s := range schedules {
		entries = append(entries, scheduleEntry(s, deptIndex))
	}

	return entries
}

// fixedHolidayDate 将 4 位月日编码锚定到学年年份。
// 编码非法或日号超出当月天数（如 "0230"）时返回 ok=false。
func fixedHolidayDate(code string, year int) (time.Time, bool) {
	if len(code) != 4 {
		return time.Time{}, false
	}
	var month, day int
	if _, err := fmt.Sscanf(code, "%02d%02d", &month, &day); err != nil {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if int(date.Month()) != month {
		return time.Time{}, false
	}
	return date, true
}

func holidayEntry(name string, date time.Time) Entry {
	return Entry{
		Title:   name,
		Start:   date.Format(dateLayout),
		Color:   HolidayColor,
		Display: DisplayBackground,
		Props:   EntryProps{Holiday: true},
	}
}

func scheduleEntry(s model.Schedule, deptIndex map[string]model.Department) Entry {
	color := model.DefaultDepartmentColor
	props := EntryProps{
		ScheduleID:  s.ScheduleID,
		Visibility:  s.Visibility,
		Printable:   s.Printable,
		Description: s.Description,
	}

	if s.DepartmentID != nil {
		props.DepartmentID = *s.DepartmentID
		// 未知部门不报错，保持默认配色输出
		if dept, ok := deptIndex[*s.DepartmentID]; ok {
			color = dept.Color
			props.Department = dept.Name
		}
	}

	entry := Entry{
		ID:    s.ScheduleID,
		Title: s.Title,
		Start: s.StartDate.Format(dateLayout),
		Color: color,
		Props: props,
	}

	// 多日日程补充不含端点的结束日期；单日省略 End
	start := dateOnly(s.StartDate)
	end := dateOnly(s.EndDate)
	if end.After(start) {
		entry.End = end.AddDate(0, 0, 1).Format(dateLayout)
	}

	return entry
}

func sortedKeys(m model.StringMap) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

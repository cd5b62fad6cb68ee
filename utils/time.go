package utils

import (
	"time"
)

// ParseClock 解析 HH:MM 格式的时间并应用到指定日期
func ParseClock(clock string, date time.Time) (time.Time, error) {
	if clock == "" {
		return date, nil
	}

	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return date, err
	}

	return time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		parsed.Hour(),
		parsed.Minute(),
		0,
		0,
		date.Location(),
	), nil
}

// DateKey 返回某时刻所在日期的 YYYY-MM-DD 表示
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// StartOfDay 返回某时刻所在日期零点
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package utils

import (
	"fmt"
	"strings"

	"Opora/internal/model"
)

// FormatPractice 渲染练习为 Telegram HTML 文本
func FormatPractice(p *model.Practice) string {
	var sb strings.Builder

	sb.WriteString("<b>")
	sb.WriteString(p.Title)
	sb.WriteString("</b>\n\n")
	sb.WriteString(p.Description)

	steps := p.StepList()
	if len(steps) > 0 {
		sb.WriteString("\n")
		for i, step := range steps {
			fmt.Fprintf(&sb, "\n%d. %s", i+1, step)
		}
	}

	if p.TimerSeconds != nil && *p.TimerSeconds > 0 {
		fmt.Fprintf(&sb, "\n\n⏱ Таймер: %s", FormatDuration(*p.TimerSeconds))
	}

	return sb.String()
}

// FormatDuration 渲染秒数为可读时长
func FormatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%d сек", seconds)
	}
	if seconds%60 == 0 {
		return fmt.Sprintf("%d мин", seconds/60)
	}
	return fmt.Sprintf("%d мин %d сек", seconds/60, seconds%60)
}

// FormatChecklist 渲染清单与勾选状态
func FormatChecklist(title string, items []model.ChecklistItem, done map[int64]bool) string {
	var sb strings.Builder

	sb.WriteString("<b>")
	sb.WriteString(title)
	sb.WriteString("</b>\n")

	for _, item := range items {
		mark := "☐"
		if done[item.ID] {
			mark = "☑"
		}
		fmt.Fprintf(&sb, "\n%s %s", mark, item.Title)
	}

	return sb.String()
}

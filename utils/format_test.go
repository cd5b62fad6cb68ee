package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"Opora/internal/model"
)

func TestFormatPractice(t *testing.T) {
	timer := 90
	p := &model.Practice{
		Title:        "Пять ощущений",
		Description:  "Заземление через органы чувств: 5-4-3-2-1.",
		Steps:        datatypes.JSON(`["5 вещей, которые видите.","4, которые можете потрогать."]`),
		TimerSeconds: &timer,
	}

	text := FormatPractice(p)
	assert.Contains(t, text, "<b>Пять ощущений</b>")
	assert.Contains(t, text, "1. 5 вещей, которые видите.")
	assert.Contains(t, text, "2. 4, которые можете потрогать.")
	assert.Contains(t, text, "⏱ Таймер: 1 мин 30 сек")
}

func TestFormatPractice_NoStepsNoTimer(t *testing.T) {
	p := &model.Practice{
		Title:       "Пауза",
		Description: "Просто пауза.",
	}

	text := FormatPractice(p)
	assert.Equal(t, "<b>Пауза</b>\n\nПросто пауза.", text)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{30, "30 сек"},
		{60, "1 мин"},
		{90, "1 мин 30 сек"},
		{180, "3 мин"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds))
	}
}

func TestFormatChecklist(t *testing.T) {
	items := []model.ChecklistItem{
		{ID: 1, Title: "Почувствовать стопы"},
		{ID: 2, Title: "Расслабить плечи"},
	}
	text := FormatChecklist("Заземление", items, map[int64]bool{2: true})

	assert.Contains(t, text, "<b>Заземление</b>")
	assert.Contains(t, text, "☐ Почувствовать стопы")
	assert.Contains(t, text, "☑ Расслабить плечи")
}

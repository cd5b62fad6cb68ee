package handler

import (
	"Opora/internal/model"
	"Opora/internal/model/dto"
	"Opora/utils"
)

// renderPractice 转换为网关可直接发送的载荷
func renderPractice(p *model.Practice) *dto.RenderablePractice {
	if p == nil {
		return nil
	}
	return &dto.RenderablePractice{
		ID:           p.ID,
		CategoryCode: p.CategoryCode,
		Title:        p.Title,
		Description:  p.Description,
		Steps:        p.StepList(),
		TimerSeconds: p.TimerSeconds,
		Text:         utils.FormatPractice(p),
	}
}

// badgeTitles 成就标题列表
func badgeTitles(badges []model.Achievement) []string {
	titles := make([]string, 0, len(badges))
	for _, b := range badges {
		titles = append(titles, b.Title)
	}
	return titles
}

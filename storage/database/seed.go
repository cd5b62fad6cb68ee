package database

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Opora/internal/model"
	"Opora/pkg/logger"
)

type seedPractice struct {
	CategoryCode string
	Title        string
	Description  string
	Steps        []string
	TimerSeconds int
}

type seedChecklist struct {
	Code  string
	Title string
	Items []string
}

var seedCategories = []model.Category{
	{Code: "body", Title: "Тело"},
	{Code: "emotion", Title: "Эмоции"},
	{Code: "mind", Title: "Мышление"},
	{Code: "attention", Title: "Внимание"},
}

var seedPractices = []seedPractice{
	{
		CategoryCode: "body",
		Title:        "Проверка тела",
		Description:  "Короткая пауза для сканирования ощущений в теле.",
		Steps: []string{
			"Сядьте удобно и закройте глаза.",
			"Отметьте точки напряжения: шея, плечи, челюсть.",
			"Сделайте 3 спокойных вдоха и выдоха.",
		},
		TimerSeconds: 60,
	},
	{
		CategoryCode: "emotion",
		Title:        "Назови чувство",
		Description:  "Отметьте и назовите текущее чувство без оценки.",
		Steps: []string{
			"Остановитесь на минуту.",
			"Спросите себя: что я чувствую?",
			"Назовите чувство и где оно в теле.",
		},
		TimerSeconds: 60,
	},
	{
		CategoryCode: "attention",
		Title:        "Пять ощущений",
		Description:  "Заземление через органы чувств: 5-4-3-2-1.",
		Steps: []string{
			"5 вещей, которые видите.",
			"4, которые можете потрогать.",
			"3, которые слышите.",
			"2, которые чувствуете запахом.",
			"1 вкус.",
		},
		TimerSeconds: 90,
	},
}

var seedChecklists = []seedChecklist{
	{
		Code:  "grounding",
		Title: "Заземление",
		Items: []string{
			"Почувствовать стопы",
			"Расслабить плечи",
			"Сделать глубокий вдох",
		},
	},
}

var seedAchievements = []model.Achievement{
	{Code: "streak_7", Title: "7 дней подряд", Description: "Практики 7 дней без пропусков"},
	{Code: "first_journal", Title: "Первая запись", Description: "Сделана первая запись в дневнике"},
}

// Seed 幂等写入初始内容，已存在的行跳过
func Seed() error {
	db := DB()
	if db == nil {
		return gorm.ErrInvalidDB
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seedCategories).Error; err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}

		achievements := seedAchievements
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&achievements).Error; err != nil {
			return fmt.Errorf("failed to seed achievements: %w", err)
		}

		for _, sp := range seedPractices {
			var count int64
			if err := tx.Model(&model.Practice{}).
				Where("category_code = ? AND title = ?", sp.CategoryCode, sp.Title).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			stepsJSON, err := json.Marshal(sp.Steps)
			if err != nil {
				return err
			}

			timer := sp.TimerSeconds
			practice := model.Practice{
				CategoryCode: sp.CategoryCode,
				Title:        sp.Title,
				Description:  sp.Description,
				Steps:        datatypes.JSON(stepsJSON),
				TimerSeconds: &timer,
				IsActive:     true,
			}
			if err := tx.Create(&practice).Error; err != nil {
				return fmt.Errorf("failed to seed practice %q: %w", sp.Title, err)
			}
		}

		for _, sc := range seedChecklists {
			checklist := model.Checklist{Code: sc.Code, Title: sc.Title}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&checklist).Error; err != nil {
				return fmt.Errorf("failed to seed checklist %q: %w", sc.Code, err)
			}

			var count int64
			if err := tx.Model(&model.ChecklistItem{}).
				Where("checklist_code = ?", sc.Code).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			for i, title := range sc.Items {
				item := model.ChecklistItem{
					ChecklistCode: sc.Code,
					Title:         title,
					OrderIndex:    i + 1,
				}
				if err := tx.Create(&item).Error; err != nil {
					return fmt.Errorf("failed to seed checklist item %q: %w", title, err)
				}
			}
		}

		logger.Logger.Info("Database seed completed")
		return nil
	})
}

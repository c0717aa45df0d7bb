package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mapadmin/internal/model"
)

// FAQRepository persists FAQ metadata, categories and questions.
type FAQRepository interface {
	Metadata(ctx context.Context) (*model.FAQMetadata, error)
	Categories(ctx context.Context) ([]model.FAQCategory, error)
	// Save upserts the metadata row and every category and question in one transaction.
	// Categories and questions with a known id are updated, the rest are created.
	Save(ctx context.Context, meta *model.FAQMetadata, categories []model.FAQCategory) error
	DeleteCategory(ctx context.Context, id uint) error
}

type faqRepository struct {
	db *gorm.DB
}

// NewFAQRepository builds a GORM-backed repository.
func NewFAQRepository(db *gorm.DB) FAQRepository {
	return &faqRepository{db: db}
}

func (r *faqRepository) Metadata(ctx context.Context) (*model.FAQMetadata, error) {
	var meta model.FAQMetadata
	if err := r.db.WithContext(ctx).Order("id").First(&meta).Error; err != nil {
		return nil, err
	}
	return &meta, nil
}

func (r *faqRepository) Categories(ctx context.Context) ([]model.FAQCategory, error) {
	var categories []model.FAQCategory
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Order("id").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *faqRepository) Save(ctx context.Context, meta *model.FAQMetadata, categories []model.FAQCategory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		meta.ID = model.FAQMetadataRowID
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(meta).Error; err != nil {
			return err
		}

		for i := range categories {
			category := &categories[i]
			if err := saveCategory(tx, category); err != nil {
				return err
			}
			for j := range category.Questions {
				question := &category.Questions[j]
				question.CategoryID = category.ID
				if err := saveQuestion(tx, question); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func saveCategory(tx *gorm.DB, category *model.FAQCategory) error {
	if category.ID != 0 {
		found, err := exists(tx, &model.FAQCategory{}, "id = ?", category.ID)
		if err != nil {
			return err
		}
		if found {
			return tx.Model(&model.FAQCategory{}).Where("id = ?", category.ID).
				Updates(map[string]interface{}{"name": category.Name, "description": category.Description}).Error
		}
	}
	created := model.FAQCategory{Name: category.Name, Description: category.Description}
	if err := tx.Omit(clause.Associations).Create(&created).Error; err != nil {
		return err
	}
	category.ID = created.ID
	return nil
}

func saveQuestion(tx *gorm.DB, question *model.FAQQuestion) error {
	if question.ID != 0 {
		found, err := exists(tx, &model.FAQQuestion{}, "id = ? AND category_id = ?", question.ID, question.CategoryID)
		if err != nil {
			return err
		}
		if found {
			return tx.Model(&model.FAQQuestion{}).
				Where("id = ? AND category_id = ?", question.ID, question.CategoryID).
				Updates(map[string]interface{}{"question": question.Question, "answer": question.Answer}).Error
		}
	}
	created := model.FAQQuestion{CategoryID: question.CategoryID, Question: question.Question, Answer: question.Answer}
	if err := tx.Create(&created).Error; err != nil {
		return err
	}
	question.ID = created.ID
	return nil
}

// DeleteCategory removes the category and its questions.
func (r *faqRepository) DeleteCategory(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&model.FAQQuestion{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.FAQCategory{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

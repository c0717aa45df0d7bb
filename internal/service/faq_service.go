package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"mapadmin/internal/cache"
	apperrors "mapadmin/internal/errors"
	"mapadmin/internal/model"
	"mapadmin/internal/repository"
)

// FAQPage is the FAQ heading block with every category and its questions.
type FAQPage struct {
	Metadata   model.FAQMetadata   `json:"metadata"`
	Categories []model.FAQCategory `json:"categories"`
}

// FAQQuestionInput is a question to save; a zero ID creates a new one.
type FAQQuestionInput struct {
	ID       uint
	Question string
	Answer   string
}

// FAQCategoryInput is a category to save; a zero ID creates a new one.
type FAQCategoryInput struct {
	ID          uint
	Name        string
	Description string
	Questions   []FAQQuestionInput
}

// SaveFAQInput is the whole FAQ page as submitted by the dashboard.
type SaveFAQInput struct {
	Heading           string
	Subheading        string
	SearchPlaceholder string
	Categories        []FAQCategoryInput
}

// FAQService manages the FAQ page.
type FAQService interface {
	Get(ctx context.Context) (*FAQPage, error)
	Save(ctx context.Context, in SaveFAQInput) error
	DeleteCategory(ctx context.Context, id uint) error
}

type faqService struct {
	repo  repository.FAQRepository
	cache *cache.Client
	log   zerolog.Logger
}

// NewFAQService builds a FAQService. cache may be nil.
func NewFAQService(repo repository.FAQRepository, c *cache.Client, log zerolog.Logger) FAQService {
	return &faqService{repo: repo, cache: c, log: log.With().Str("service", "faq").Logger()}
}

func (s *faqService) Get(ctx context.Context) (*FAQPage, error) {
	var cached FAQPage
	if s.cache.GetJSON(ctx, faqCacheKey, &cached) {
		return &cached, nil
	}

	page := &FAQPage{}
	meta, err := s.repo.Metadata(ctx)
	switch {
	case err == nil:
		page.Metadata = *meta
	case !isNotFound(err):
		return nil, storeError(s.log, "get faq metadata", err)
	}

	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, storeError(s.log, "list faq categories", err)
	}
	if len(categories) == 0 {
		return nil, apperrors.ErrFAQNotFound
	}
	for i := range categories {
		if categories[i].Questions == nil {
			categories[i].Questions = []model.FAQQuestion{}
		}
	}
	page.Categories = categories

	s.cache.SetJSON(ctx, faqCacheKey, page)
	return page, nil
}

// Save validates the whole page before writing any of it.
func (s *faqService) Save(ctx context.Context, in SaveFAQInput) error {
	if strings.TrimSpace(in.Heading) == "" || strings.TrimSpace(in.Subheading) == "" || strings.TrimSpace(in.SearchPlaceholder) == "" {
		return apperrors.Invalid("heading, subheading, and searchPlaceholder are required")
	}

	categories := make([]model.FAQCategory, 0, len(in.Categories))
	for _, c := range in.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return apperrors.Invalid("each category must have a name")
		}
		category := model.FAQCategory{ID: c.ID, Name: c.Name, Description: c.Description}
		for _, q := range c.Questions {
			if strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.Answer) == "" {
				return apperrors.Invalid("each question must have a 'question' and 'answer' field")
			}
			category.Questions = append(category.Questions, model.FAQQuestion{
				ID:       q.ID,
				Question: q.Question,
				Answer:   q.Answer,
			})
		}
		categories = append(categories, category)
	}

	meta := &model.FAQMetadata{
		ID:                model.FAQMetadataRowID,
		Heading:           in.Heading,
		Subheading:        in.Subheading,
		SearchPlaceholder: in.SearchPlaceholder,
	}
	if err := s.repo.Save(ctx, meta, categories); err != nil {
		return storeError(s.log, "save faq", err)
	}

	_ = s.cache.Delete(ctx, faqCacheKey)
	return nil
}

func (s *faqService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return lookupError(s.log, "delete faq category", err, apperrors.ErrFAQNotFound)
	}
	_ = s.cache.Delete(ctx, faqCacheKey)
	return nil
}

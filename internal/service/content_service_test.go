package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "mapadmin/internal/errors"
	"mapadmin/internal/model"
)

func TestFAQService_Get(t *testing.T) {
	t.Run("no categories", func(t *testing.T) {
		repo := new(MockFAQRepository)
		repo.On("Metadata", mock.Anything).Return(&model.FAQMetadata{Heading: "FAQ"}, nil)
		repo.On("Categories", mock.Anything).Return([]model.FAQCategory{}, nil)

		service := NewFAQService(repo, nil, zerolog.Nop())
		_, err := service.Get(context.Background())
		assert.ErrorIs(t, err, apperrors.ErrFAQNotFound)
	})

	t.Run("missing metadata is empty", func(t *testing.T) {
		repo := new(MockFAQRepository)
		repo.On("Metadata", mock.Anything).Return(nil, gorm.ErrRecordNotFound)
		repo.On("Categories", mock.Anything).Return([]model.FAQCategory{{ID: 1, Name: "Billing"}}, nil)

		service := NewFAQService(repo, nil, zerolog.Nop())
		page, err := service.Get(context.Background())
		require.NoError(t, err)

		assert.Empty(t, page.Metadata.Heading)
		require.Len(t, page.Categories, 1)
		assert.NotNil(t, page.Categories[0].Questions)
	})
}

func TestFAQService_Save(t *testing.T) {
	valid := SaveFAQInput{
		Heading:           "Help",
		Subheading:        "Answers",
		SearchPlaceholder: "Search...",
		Categories: []FAQCategoryInput{{
			ID:   3,
			Name: "Account",
			Questions: []FAQQuestionInput{
				{ID: 8, Question: "How do I reset?", Answer: "Use the link."},
				{Question: "New?", Answer: "Yes."},
			},
		}},
	}

	t.Run("saves metadata row and categories", func(t *testing.T) {
		repo := new(MockFAQRepository)
		repo.On("Save", mock.Anything,
			mock.MatchedBy(func(m *model.FAQMetadata) bool {
				return m.ID == model.FAQMetadataRowID && m.SearchPlaceholder == "Search..."
			}),
			mock.MatchedBy(func(c []model.FAQCategory) bool {
				return len(c) == 1 && c[0].ID == 3 && len(c[0].Questions) == 2 && c[0].Questions[1].ID == 0
			}),
		).Return(nil)

		service := NewFAQService(repo, nil, zerolog.Nop())
		require.NoError(t, service.Save(context.Background(), valid))
		repo.AssertExpectations(t)
	})

	t.Run("question without answer writes nothing", func(t *testing.T) {
		in := valid
		in.Categories = []FAQCategoryInput{{Name: "Broken", Questions: []FAQQuestionInput{{Question: "Why?"}}}}

		repo := new(MockFAQRepository)
		service := NewFAQService(repo, nil, zerolog.Nop())

		var validationErr *apperrors.ValidationError
		assert.ErrorAs(t, service.Save(context.Background(), in), &validationErr)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing heading", func(t *testing.T) {
		in := valid
		in.Heading = ""

		service := NewFAQService(new(MockFAQRepository), nil, zerolog.Nop())
		var validationErr *apperrors.ValidationError
		assert.ErrorAs(t, service.Save(context.Background(), in), &validationErr)
	})
}

func TestContactService_Save(t *testing.T) {
	t.Run("creates when absent", func(t *testing.T) {
		repo := new(MockContactRepository)
		repo.On("First", mock.Anything).Return(nil, gorm.ErrRecordNotFound)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(c *model.ContactInfo) bool {
			return c.Heading == "Talk to us" && len(c.Emails) == 1
		})).Return(nil)

		service := NewContactService(repo, nil, zerolog.Nop())
		info, created, err := service.Save(context.Background(), ContactInput{
			Heading: strPtr("Talk to us"),
			Emails:  []string{"help@example.com"},
		})
		require.NoError(t, err)

		assert.True(t, created)
		assert.Equal(t, "Talk to us", info.Heading)
		repo.AssertExpectations(t)
	})

	t.Run("updates only supplied fields", func(t *testing.T) {
		existing := model.DefaultContactInfo()
		existing.ID = 1
		repo := new(MockContactRepository)
		repo.On("First", mock.Anything).Return(&existing, nil)
		repo.On("Save", mock.Anything, &existing).Return(nil)

		service := NewContactService(repo, nil, zerolog.Nop())
		info, created, err := service.Save(context.Background(), ContactInput{FormHeading: strPtr("Write to us")})
		require.NoError(t, err)

		assert.False(t, created)
		assert.Equal(t, "Write to us", info.FormHeading)
		assert.Equal(t, "Get in Touch", info.Heading)
		assert.Equal(t, "Dashboard City", info.Address.Data().City)
	})
}

func TestContactService_Get_NotFound(t *testing.T) {
	repo := new(MockContactRepository)
	repo.On("First", mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	service := NewContactService(repo, nil, zerolog.Nop())
	_, err := service.Get(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrContactNotFound)
}

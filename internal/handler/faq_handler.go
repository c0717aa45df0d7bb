package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mapadmin/internal/service"
)

// FAQHandler handles the FAQ page.
type FAQHandler struct {
	faqService service.FAQService
}

// NewFAQHandler creates a new FAQ handler.
func NewFAQHandler(faqService service.FAQService) *FAQHandler {
	return &FAQHandler{faqService: faqService}
}

// FAQQuestionRequest is one question; omit id to create it.
type FAQQuestionRequest struct {
	ID       uint   `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQCategoryRequest is one category; omit id to create it.
type FAQCategoryRequest struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Questions   []FAQQuestionRequest `json:"questions"`
}

// SaveFAQRequest is the whole FAQ page.
type SaveFAQRequest struct {
	Heading           string               `json:"heading"`
	Subheading        string               `json:"subheading"`
	SearchPlaceholder string               `json:"searchPlaceholder"`
	Categories        []FAQCategoryRequest `json:"categories"`
}

func (r SaveFAQRequest) input() service.SaveFAQInput {
	in := service.SaveFAQInput{
		Heading:           r.Heading,
		Subheading:        r.Subheading,
		SearchPlaceholder: r.SearchPlaceholder,
		Categories:        make([]service.FAQCategoryInput, 0, len(r.Categories)),
	}
	for _, cat := range r.Categories {
		questions := make([]service.FAQQuestionInput, 0, len(cat.Questions))
		for _, q := range cat.Questions {
			questions = append(questions, service.FAQQuestionInput{ID: q.ID, Question: q.Question, Answer: q.Answer})
		}
		in.Categories = append(in.Categories, service.FAQCategoryInput{
			ID:          cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
			Questions:   questions,
		})
	}
	return in
}

// Get godoc
// @Summary Get the FAQ page
// @Tags faq
// @Produce json
// @Success 200 {object} service.FAQPage
// @Failure 404 {object} errors.ErrorResponse
// @Router /faq [get]
func (h *FAQHandler) Get(c echo.Context) error {
	page, err := h.faqService.Get(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, page)
}

// Save godoc
// @Summary Save the FAQ heading, categories and questions
// @Description Items with an id are updated, items without one are created.
// @Tags faq
// @Accept json
// @Produce json
// @Param request body SaveFAQRequest true "FAQ page"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /faq [put]
func (h *FAQHandler) Save(c echo.Context) error {
	var req SaveFAQRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.faqService.Save(c.Request().Context(), req.input()); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "FAQ saved successfully"})
}

// DeleteCategory godoc
// @Summary Delete an FAQ category and its questions
// @Tags faq
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /faq/{id} [delete]
func (h *FAQHandler) DeleteCategory(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.faqService.DeleteCategory(c.Request().Context(), id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Category deleted successfully"})
}

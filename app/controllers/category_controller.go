package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/backoffice/app/services"
	"github.com/shashiranjanraj/backoffice/pkg/ctx"
)

type CategoryController struct {
	categories *services.CategoryService
	urls       Locator
}

func NewCategoryController(categories *services.CategoryService, urls Locator) *CategoryController {
	return &CategoryController{categories: categories, urls: urls}
}

func (cc *CategoryController) Index(c *ctx.Context) {
	categories, page, err := cc.categories.List(c.Context(), listParams(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.List("Categories fetched successfully", "categories", categories, page)
}

// Store answers 200 rather than 201; existing admin clients expect it.
func (cc *CategoryController) Store(c *ctx.Context) {
	var in services.CreateCategoryInput
	if !c.BindEnvelope("categoryData", &in) {
		return
	}

	category, err := cc.categories.Create(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	cc.urls.locate(c, "categories.show", category.ID)
	c.Payload(http.StatusOK, "Category added successfully", "category", category)
}

func (cc *CategoryController) Show(c *ctx.Context) {
	category, err := cc.categories.Get(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Payload(http.StatusOK, "Category fetched successfully", "category", category)
}

func (cc *CategoryController) Update(c *ctx.Context) {
	var in services.UpdateCategoryInput
	if !c.BindEnvelope("categoryData", &in) {
		return
	}

	category, err := cc.categories.Update(c.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Payload(http.StatusOK, "Category updated successfully", "category", category)
}

func (cc *CategoryController) Destroy(c *ctx.Context) {
	category, err := cc.categories.Delete(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Payload(http.StatusOK, "Category deleted successfully", "category", category)
}

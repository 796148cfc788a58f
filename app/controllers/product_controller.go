package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/backoffice/app/services"
	"github.com/shashiranjanraj/backoffice/pkg/ctx"
)

type ProductController struct {
	products *services.ProductService
	urls     Locator
}

func NewProductController(products *services.ProductService, urls Locator) *ProductController {
	return &ProductController{products: products, urls: urls}
}

func (pc *ProductController) Index(c *ctx.Context) {
	products, page, err := pc.products.List(c.Context(), listParams(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.List("Products fetched successfully", "products", products, page)
}

func (pc *ProductController) Store(c *ctx.Context) {
	var in services.CreateProductInput
	if !c.BindEnvelope("productData", &in) {
		return
	}

	product, err := pc.products.Create(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	pc.urls.locate(c, "products.show", product.ID)
	c.Payload(http.StatusCreated, "Product added successfully", "product", product)
}

func (pc *ProductController) Show(c *ctx.Context) {
	product, err := pc.products.Get(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Payload(http.StatusOK, "Product fetched successfully", "product", product)
}

func (pc *ProductController) Update(c *ctx.Context) {
	var in services.UpdateProductInput
	if !c.BindEnvelope("productData", &in) {
		return
	}

	product, err := pc.products.Update(c.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Payload(http.StatusOK, "Product updated successfully", "product", product)
}

func (pc *ProductController) Destroy(c *ctx.Context) {
	product, err := pc.products.Delete(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Payload(http.StatusOK, "Product deleted successfully", "product", product)
}

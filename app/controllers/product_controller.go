package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/groovecrate/vinylstore/app/models"
	"github.com/groovecrate/vinylstore/app/services"
	"github.com/groovecrate/vinylstore/pkg/bind"
	"github.com/groovecrate/vinylstore/pkg/middleware"
	"github.com/groovecrate/vinylstore/pkg/response"
	"github.com/groovecrate/vinylstore/pkg/storage"
)

// maxCoverBytes caps cover image uploads.
const maxCoverBytes = 5 << 20 // 5 MB

var coverExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
}

// URLResolver reverses a named route into a path; the router provides it.
type URLResolver func(name string, params map[string]string) (string, error)

// ProductController handles the catalog endpoints.
type ProductController struct {
	catalog *services.CatalogService
	disk    storage.Disk
	urlFor  URLResolver
}

func NewProductController(catalog *services.CatalogService, disk storage.Disk, urlFor URLResolver) *ProductController {
	return &ProductController{catalog: catalog, disk: disk, urlFor: urlFor}
}

func productID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// List returns every product as a bare JSON array, which is what the
// storefront consumes.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	products, err := c.catalog.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	response.JSON(w, http.StatusOK, products)
}

// Get returns one product.
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := c.catalog.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, product)
}

// Create adds a product to the catalog. Admin only.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CreateProductInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.catalog.Create(r.Context(), middleware.SessionFromCtx(r.Context()), in)
	if err != nil {
		respondError(w, err)
		return
	}

	if c.urlFor != nil {
		if loc, err := c.urlFor("products.get", map[string]string{
			"id": strconv.FormatUint(uint64(product.ID), 10),
		}); err == nil {
			w.Header().Set("Location", loc)
		}
	}
	response.Created(w, product)
}

// Update applies the fields present in the body; anything omitted keeps its
// stored value. Admin only.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	var in services.UpdateProductInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.catalog.Update(r.Context(), middleware.SessionFromCtx(r.Context()), id, in)
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, product)
}

// Delete removes a product. Admin only.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	if err := c.catalog.Delete(r.Context(), middleware.SessionFromCtx(r.Context()), id); err != nil {
		respondError(w, err)
		return
	}
	response.Message(w, "Product deleted")
}

// Purchase buys one unit. Public: any visitor can purchase. 409 when the
// product is out of stock.
func (c *ProductController) Purchase(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := c.catalog.Purchase(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, product)
}

// UploadCover stores a cover image on the configured disk and records its
// public URL on the product. Admin only. Expects multipart form field "cover".
func (c *ProductController) UploadCover(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	// The service makes the authoritative capability check before the record
	// is touched; this early reject just keeps anonymous callers from writing
	// files to the disk.
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		response.Unauthorized(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxCoverBytes)
	file, header, err := r.FormFile("cover")
	if err != nil {
		response.Error(w, http.StatusBadRequest, `Missing "cover" file field`)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !coverExtensions[ext] {
		response.Error(w, http.StatusBadRequest, "Unsupported image type")
		return
	}

	path := fmt.Sprintf("covers/%d%s", id, ext)
	if err := c.disk.Put(r.Context(), path, file); err != nil {
		respondError(w, err)
		return
	}

	product, err := c.catalog.AttachCover(r.Context(), sess, id, c.disk.URL(path))
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, product)
}

package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/brightBediako/farmlink-api/middleware"
	"github.com/brightBediako/farmlink-api/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductController handles HTTP requests for catalog operations. Product
// creation accepts multipart form data so that images can be uploaded in
// the same request.
type ProductController struct {
	productService *services.ProductService
	uploader       services.ImageUploader
}

func NewProductController(productService *services.ProductService, uploader services.ImageUploader) *ProductController {
	return &ProductController{productService: productService, uploader: uploader}
}

// CreateProduct handles POST /products (multipart form).
func (pc *ProductController) CreateProduct(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	price, err := strconv.ParseFloat(ctx.PostForm("price"), 64)
	if err != nil || price < 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
		return
	}
	totalQty, err := strconv.Atoi(ctx.PostForm("total_qty"))
	if err != nil || totalQty < 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid total quantity"})
		return
	}

	req := &services.CreateProductRequest{
		Name:        ctx.PostForm("name"),
		Description: ctx.PostForm("description"),
		Category:    ctx.PostForm("category"),
		Sizes:       splitCSV(ctx.PostForm("sizes")),
		Colors:      splitCSV(ctx.PostForm("colors")),
		Price:       price,
		TotalQty:    totalQty,
	}
	if req.Name == "" || req.Category == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Name and category are required"})
		return
	}

	form, err := ctx.MultipartForm()
	if err == nil && form != nil {
		for _, fileHeader := range form.File["images"] {
			file, err := fileHeader.Open()
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
				return
			}
			url, err := pc.uploader.UploadImage(ctx.Request.Context(), file, fileHeader.Filename)
			file.Close()
			if err != nil {
				zap.L().Error("image upload failed", zap.String("filename", fileHeader.Filename), zap.Error(err))
				ctx.JSON(http.StatusBadGateway, gin.H{"error": "Image upload failed"})
				return
			}
			req.Images = append(req.Images, url)
		}
	}

	product, svcErr := pc.productService.Create(ctx.Request.Context(), userID, req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"product": product})
}

// ListProducts handles GET /products with optional filters.
func (pc *ProductController) ListProducts(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)
	filters := &services.ProductFilters{
		Name:     ctx.Query("name"),
		Category: ctx.Query("category"),
		Size:     ctx.Query("size"),
		Color:    ctx.Query("color"),
		Page:     page,
		Limit:    limit,
	}

	if priceRange := ctx.Query("price"); priceRange != "" {
		parts := strings.SplitN(priceRange, "-", 2)
		if len(parts) == 2 {
			min, errMin := strconv.ParseFloat(parts[0], 64)
			max, errMax := strconv.ParseFloat(parts[1], 64)
			if errMin != nil || errMax != nil || min > max {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price range"})
				return
			}
			filters.PriceMin = min
			filters.PriceMax = max
			filters.HasPrice = true
		}
	}

	resp, svcErr := pc.productService.List(ctx.Request.Context(), filters)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetProduct handles GET /products/:id.
func (pc *ProductController) GetProduct(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	product, svcErr := pc.productService.GetByID(ctx.Request.Context(), id)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"product": product, "qty_left": product.QtyLeft()})
}

// UpdateProduct handles PUT /products/:id (owner or admin).
func (pc *ProductController) UpdateProduct(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var req services.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product, svcErr := pc.productService.Update(ctx.Request.Context(), id, userID, middleware.GetRole(ctx), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"product": product})
}

// DeleteProduct handles DELETE /products/:id (owner or admin).
func (pc *ProductController) DeleteProduct(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	if svcErr := pc.productService.Delete(ctx.Request.Context(), id, userID, middleware.GetRole(ctx)); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// GetVendorProducts handles GET /products/mine.
func (pc *ProductController) GetVendorProducts(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	products, svcErr := pc.productService.GetVendorProducts(ctx.Request.Context(), userID, middleware.GetRole(ctx))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

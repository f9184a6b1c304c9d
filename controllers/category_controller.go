package controllers

import (
	"net/http"

	"github.com/brightBediako/farmlink-api/middleware"
	"github.com/brightBediako/farmlink-api/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryController handles HTTP requests for category operations.
type CategoryController struct {
	categoryService *services.CategoryService
	uploader        services.ImageUploader
}

func NewCategoryController(categoryService *services.CategoryService, uploader services.ImageUploader) *CategoryController {
	return &CategoryController{categoryService: categoryService, uploader: uploader}
}

// CreateCategory handles POST /categories (multipart form, admin only).
func (cc *CategoryController) CreateCategory(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	name := ctx.PostForm("name")
	if name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return
	}

	imageURL := ""
	if fileHeader, err := ctx.FormFile("image"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
			return
		}
		defer file.Close()

		imageURL, err = cc.uploader.UploadImage(ctx.Request.Context(), file, fileHeader.Filename)
		if err != nil {
			zap.L().Error("image upload failed", zap.String("filename", fileHeader.Filename), zap.Error(err))
			ctx.JSON(http.StatusBadGateway, gin.H{"error": "Image upload failed"})
			return
		}
	}

	category, svcErr := cc.categoryService.Create(ctx.Request.Context(), userID, name, imageURL)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"category": category})
}

// ListCategories handles GET /categories.
func (cc *CategoryController) ListCategories(ctx *gin.Context) {
	categories, svcErr := cc.categoryService.GetAll(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetCategory handles GET /categories/:id.
func (cc *CategoryController) GetCategory(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
		return
	}

	category, svcErr := cc.categoryService.GetByID(ctx.Request.Context(), id)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"category": category})
}

// UpdateCategory handles PUT /categories/:id (admin only).
func (cc *CategoryController) UpdateCategory(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	category, svcErr := cc.categoryService.Update(ctx.Request.Context(), id, req.Name)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory handles DELETE /categories/:id (admin only).
func (cc *CategoryController) DeleteCategory(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
		return
	}

	if svcErr := cc.categoryService.Delete(ctx.Request.Context(), id); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

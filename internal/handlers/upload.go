package handlers

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	maxImageSize = 5 << 20
	thumbWidth   = 400
)

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

var uploadScopes = map[string]struct{}{
	"products":      {},
	"offers":        {},
	"slider":        {},
	"custom-orders": {},
}

// Uploader stores admin image uploads under <root>/uploads/<scope>/ and keeps
// a resized thumbnail next to each original.
type Uploader struct {
	Root string
}

func validateImageFile(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		return "", fmt.Errorf("image file extension is required")
	}
	if _, ok := allowedImageExtensions[ext]; !ok {
		return "", fmt.Errorf("unsupported image type: %s", ext)
	}
	if file.Size > maxImageSize {
		return "", fmt.Errorf("image file too large (max 5MB)")
	}
	return ext, nil
}

func (u Uploader) saveImage(c *gin.Context, file *multipart.FileHeader, scope string) (string, string, error) {
	ext, err := validateImageFile(file)
	if err != nil {
		return "", "", err
	}

	name := primitive.NewObjectID().Hex()
	dir := filepath.Join(u.Root, "uploads", scope)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[UPLOAD] mkdir %s: %v", dir, err)
		return "", "", err
	}

	fullPath := filepath.Join(dir, name+ext)
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		log.Printf("[UPLOAD] save %s: %v", fullPath, err)
		return "", "", err
	}

	relPath := filepath.ToSlash(filepath.Join("uploads", scope, name+ext))

	// Thumbnail generation is best effort. Webp decoding is not supported
	// so those keep the original as their only rendition.
	thumbRel := ""
	if ext != ".webp" {
		img, err := imaging.Open(fullPath)
		if err != nil {
			log.Printf("[UPLOAD] thumbnail decode %s: %v", fullPath, err)
			return relPath, "", nil
		}
		thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
		thumbPath := filepath.Join(dir, name+"_thumb"+ext)
		if err := imaging.Save(thumb, thumbPath); err != nil {
			log.Printf("[UPLOAD] thumbnail save %s: %v", thumbPath, err)
			return relPath, "", nil
		}
		thumbRel = filepath.ToSlash(filepath.Join("uploads", scope, name+"_thumb"+ext))
	}

	return relPath, thumbRel, nil
}

// UploadImage accepts one multipart image under the "image" field and returns
// the stored paths. The scope selects the target subdirectory.
func (u Uploader) UploadImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/uploads"
		defer handlePanic(c, route)

		scope := c.DefaultQuery("scope", "products")
		if _, ok := uploadScopes[scope]; !ok {
			respondWithError(c, http.StatusBadRequest, route, "unknown upload scope")
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "image file is required")
			return
		}

		relPath, thumbRel, err := u.saveImage(c, file, scope)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		resp := gin.H{"url": "/" + relPath}
		if thumbRel != "" {
			resp["thumbnailUrl"] = "/" + thumbRel
		}
		c.JSON(http.StatusCreated, resp)
	}
}

type deleteUploadRequest struct {
	Path string `json:"path" binding:"required"`
}

// DeleteUpload removes a previously uploaded file. Paths are constrained to
// the uploads tree so a crafted path can never reach outside it.
func (u Uploader) DeleteUpload() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/uploads"
		defer handlePanic(c, route)

		var req deleteUploadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "path is required")
			return
		}

		if err := safeDeleteUpload(u.Root, req.Path); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "file deleted"})
	}
}

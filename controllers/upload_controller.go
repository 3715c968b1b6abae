package controllers

import (
	"errors"
	"net/http"

	"github.com/Govind-619/ebook-store/services"
	"github.com/Govind-619/ebook-store/utils"
	"github.com/gin-gonic/gin"
)

// maxUploadBody caps the whole multipart body: the largest file plus room for headers
const maxUploadBody = utils.MaxPDFSize + 1<<20

// UploadController accepts cover images and PDFs
type UploadController struct {
	uploads *services.UploadService
}

func NewUploadController(uploads *services.UploadService) *UploadController {
	return &UploadController{uploads: uploads}
}

// Upload stores the multipart field "file"
func (uc *UploadController) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBody)

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			utils.RespondError(c, utils.TooLargeError(utils.ErrFileTooLarge))
		case errors.Is(err, http.ErrMissingFile):
			utils.RespondError(c, utils.ValidationError("No file uploaded"))
		default:
			utils.RespondError(c, utils.ValidationError("Invalid multipart upload: "+err.Error()))
		}
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.RespondError(c, utils.InternalError("Failed to read uploaded file", err))
		return
	}
	defer file.Close()

	stored, err := uc.uploads.Store(file, header.Size, header.Header.Get("Content-Type"), header.Filename)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.OK(c, gin.H{
		"success":  true,
		"message":  utils.MsgUploadSuccess,
		"fileUrl":  stored.URL,
		"filename": stored.Filename,
		"size":     stored.Size,
		"mimetype": stored.MimeType,
	})
}

// Test reports that the upload endpoint is reachable
func (uc *UploadController) Test(c *gin.Context) {
	utils.OK(c, gin.H{
		"success": true,
		"message": "Upload service is running",
		"limits": gin.H{
			"image": utils.MaxImageSize,
			"pdf":   utils.MaxPDFSize,
		},
	})
}

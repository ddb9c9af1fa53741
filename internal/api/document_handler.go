package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dutchcoders/go-clamd"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hirePortal/internal/database"
	"hirePortal/internal/storage"
)

var allowedDocumentExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
}

// DocumentHandler 负责候选人附件（简历等）的上传与访问。
// 上传前经 clamd 扫描，存储在 MinIO 的 candidate-docs/ 前缀下。
type DocumentHandler struct {
	candidates    database.CandidateStore
	storage       *storage.Client
	logger        *slog.Logger
	clamdAddr     string
	maxUploadSize int64
}

// NewDocumentHandler 返回 DocumentHandler 实例。
func NewDocumentHandler(candidates database.CandidateStore, storageClient *storage.Client, logger *slog.Logger, clamdAddr string, maxUploadSize int64) *DocumentHandler {
	return &DocumentHandler{
		candidates:    candidates,
		storage:       storageClient,
		logger:        logger,
		clamdAddr:     clamdAddr,
		maxUploadSize: maxUploadSize,
	}
}

// Upload 处理候选人附件上传，上传前扫描病毒。
func (h *DocumentHandler) Upload(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	logger := loggerFromContext(c).With(slog.Int("candidate_id", id))

	if _, err := h.candidates.GetByID(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			NotFound(c, "Candidate not found")
			return
		}
		logger.Error("candidate lookup failed", slog.Any("error", err))
		Internal(c, "failed to upload document")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "missing file")
		return
	}
	if h.maxUploadSize > 0 && file.Size > h.maxUploadSize {
		BadRequest(c, "file too large")
		return
	}

	extension := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedDocumentExtensions[extension] {
		BadRequest(c, "unsupported file type")
		return
	}

	clamdClient := clamd.NewClamd(h.clamdAddr)

	fileReader, err := file.Open()
	if err != nil {
		Internal(c, "failed to open file")
		return
	}

	abortChan := make(chan bool)
	scanChan, err := clamdClient.ScanStream(fileReader, abortChan)
	fileReader.Close()
	if err != nil {
		logger.Error("scan file", slog.String("error", err.Error()))
		Internal(c, "failed to scan file")
		return
	}
	defer close(abortChan)

	for result := range scanChan {
		if result.Status != clamd.RES_OK {
			BadRequest(c, "malicious file detected")
			return
		}
	}

	fileReader, err = file.Open()
	if err != nil {
		Internal(c, "failed to reopen file")
		return
	}
	defer fileReader.Close()

	objectKey := fmt.Sprintf("candidate-docs/%d/%s%s", id, uuid.NewString(), extension)
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if _, err := h.storage.UploadFile(ctx, objectKey, fileReader, file.Size, contentType); err != nil {
		logger.Error("upload file", slog.String("error", err.Error()))
		Internal(c, "failed to upload file")
		return
	}

	logger.Info("document uploaded", slog.String("object_key", objectKey))
	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"objectKey": objectKey,
		"fileName":  file.Filename,
	})
}

// List 列出候选人的全部附件及其限时下载链接。
func (h *DocumentHandler) List(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	logger := loggerFromContext(c).With(slog.Int("candidate_id", id))

	if _, err := h.candidates.GetByID(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			NotFound(c, "Candidate not found")
			return
		}
		logger.Error("candidate lookup failed", slog.Any("error", err))
		Internal(c, "failed to list documents")
		return
	}

	prefix := fmt.Sprintf("candidate-docs/%d/", id)
	objects, err := h.storage.ListObjects(ctx, prefix, 50)
	if err != nil {
		logger.Error("list documents", slog.String("error", err.Error()))
		Internal(c, "failed to list documents")
		return
	}

	sort.Slice(objects, func(i, j int) bool {
		return objects[i].LastModified.After(objects[j].LastModified)
	})

	items := make([]gin.H, 0, len(objects))
	for _, obj := range objects {
		url, err := h.storage.GeneratePresignedURL(ctx, obj.Key, 15*time.Minute)
		if err != nil {
			logger.Error("generate document url", slog.String("objectKey", obj.Key), slog.String("error", err.Error()))
			continue
		}
		items = append(items, gin.H{
			"objectKey":    obj.Key,
			"url":          url,
			"size":         obj.Size,
			"lastModified": obj.LastModified,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(items),
		"data":    items,
	})
}

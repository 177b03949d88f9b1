package handler

import (
	"io"
	"log"
	"net/http"

	"github.com/geeta-ai/geeta-be/middleware"
	"github.com/geeta-ai/geeta-be/service"
	"github.com/geeta-ai/geeta-be/types"
	"github.com/geeta-ai/geeta-be/utils"
	"github.com/gin-gonic/gin"
)

type DocumentHandler interface {
	HandleUpload(c *gin.Context)
	HandleUploadZip(c *gin.Context)
	HandleList(c *gin.Context)
	HandleToggle(c *gin.Context)
	HandleRemove(c *gin.Context)
	HandleEnableAll(c *gin.Context)
	HandleDisableAll(c *gin.Context)
	HandleClear(c *gin.Context)
}

type documentHandler struct {
	fileService *service.FileService
	sessions    *service.SessionService
	uploadDir   string
}

func NewDocumentHandler(fileService *service.FileService, sessions *service.SessionService, uploadDir string) DocumentHandler {
	return &documentHandler{
		fileService: fileService,
		sessions:    sessions,
		uploadDir:   uploadDir,
	}
}

// session resolves the authenticated user's session or writes an error
// response and returns ok=false.
func (h *documentHandler) session(c *gin.Context) (string, *service.Session, bool) {
	username := c.GetString(middleware.ContextKeyUsername)
	session, err := h.sessions.GetSession(c, username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: "Failed to load session",
		})
		return "", nil, false
	}
	return username, session, true
}

func (h *documentHandler) save(c *gin.Context, username string, session *service.Session) bool {
	if err := h.sessions.SaveSession(c, username, session); err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: "Failed to save session",
		})
		return false
	}
	return true
}

func (h *documentHandler) HandleUpload(c *gin.Context) {
	username, session, ok := h.session(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid multipart form",
		})
		return
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "No files provided",
		})
		return
	}

	var files []service.UploadedFile
	result := types.BatchResult{Total: len(fileHeaders)}
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			result.Errors = append(result.Errors, "failed to open "+fh.Filename)
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			result.Errors = append(result.Errors, "failed to read "+fh.Filename)
			continue
		}
		files = append(files, service.UploadedFile{Name: fh.Filename, Data: data})
		if h.uploadDir != "" {
			if _, err := utils.SaveUploadWithTimestamp(fh.Filename, data, h.uploadDir); err != nil {
				log.Printf("Warning: failed to archive upload %s: %v", fh.Filename, err)
			}
		}
	}

	loaded := h.fileService.LoadBatch(session.Store, files)
	result.Loaded = loaded.Loaded
	result.IDs = loaded.IDs
	result.Errors = append(result.Errors, loaded.Errors...)

	if !h.save(c, username, session) {
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   result,
	})
}

func (h *documentHandler) HandleUploadZip(c *gin.Context) {
	username, session, ok := h.session(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "No zip file provided",
		})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Failed to open zip file",
		})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Failed to read zip file",
		})
		return
	}

	result, err := h.fileService.LoadZip(session.Store, data)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}

	if !h.save(c, username, session) {
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   result,
	})
}

func (h *documentHandler) HandleList(c *gin.Context) {
	_, session, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.ListDocumentsResponse{
			Documents: session.Store.List(),
		},
	})
}

func (h *documentHandler) HandleToggle(c *gin.Context) {
	username, session, ok := h.session(c)
	if !ok {
		return
	}
	var req types.ToggleDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}
	session.Store.Toggle(req.ID, req.Enabled)
	if !h.save(c, username, session) {
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.ListDocumentsResponse{
			Documents: session.Store.List(),
		},
	})
}

func (h *documentHandler) HandleRemove(c *gin.Context) {
	username, session, ok := h.session(c)
	if !ok {
		return
	}
	var req types.RemoveDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}
	session.Store.Remove(req.ID)
	if !h.save(c, username, session) {
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.ListDocumentsResponse{
			Documents: session.Store.List(),
		},
	})
}

func (h *documentHandler) HandleEnableAll(c *gin.Context) {
	username, session, ok := h.session(c)
	if !ok {
		return
	}
	session.Store.EnableAll()
	if !h.save(c, username, session) {
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.ListDocumentsResponse{
			Documents: session.Store.List(),
		},
	})
}

func (h *documentHandler) HandleDisableAll(c *gin.Context) {
	username, session, ok := h.session(c)
	if !ok {
		return
	}
	session.Store.DisableAll()
	if !h.save(c, username, session) {
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.ListDocumentsResponse{
			Documents: session.Store.List(),
		},
	})
}

func (h *documentHandler) HandleClear(c *gin.Context) {
	username, session, ok := h.session(c)
	if !ok {
		return
	}
	session.Store.Clear()
	if !h.save(c, username, session) {
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status:  true,
		Message: "All documents removed",
	})
}

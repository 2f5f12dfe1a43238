package handler

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/canstudy/tracker/internal/ctxkeys"
	"github.com/canstudy/tracker/internal/service"
	"github.com/canstudy/tracker/internal/validation"
)

const maxUploadSize = 10 << 20

type DocumentHandler struct {
	documentService *service.DocumentService
}

func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

func (h *DocumentHandler) Documents(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	documents, err := h.documentService.Documents(user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"documents": documents})
}

func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var input service.DocumentInput
	err := decodeJSON(w, r, &input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	document, err := h.documentService.Create(user.ID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "document": document})
}

func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var update service.DocumentUpdate
	err := decodeJSON(w, r, &update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	document, err := h.documentService.Update(user.ID, r.PathValue("id"), update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "document": document})
}

func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.documentService.Delete(user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Upload attaches the multipart "file" field to a checklist document.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	// Headroom over the file limit for the multipart envelope.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+(1<<20))
	err := r.ParseMultipartForm(maxUploadSize)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "File too large or malformed upload"})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No file uploaded"})
		return
	}
	defer func() { _ = file.Close() }()

	err = validation.ValidateFile(header, validation.UploadConstraints...)
	if err != nil {
		writeError(w, r, validation.Field("file", err))
		return
	}

	mimeType := mime.TypeByExtension(filepath.Ext(header.Filename))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	document, err := h.documentService.Upload(user.ID, r.PathValue("id"), service.Upload{
		Filename: header.Filename,
		MimeType: mimeType,
		Size:     header.Size,
		Body:     file,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "document": document})
}

// File redirects to object storage or streams from local disk.
func (h *DocumentHandler) File(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	file, url, body, err := h.documentService.Download(user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if url != "" {
		http.Redirect(w, r, url, http.StatusFound)
		return
	}
	defer func() { _ = body.Close() }()

	w.Header().Set("Content-Type", file.MimeType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": file.OriginalName}))
	if file.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(file.Size, 10))
	}

	_, err = io.Copy(w, body)
	if err != nil {
		slog.Warn("failed to stream document file", "error", err, "file_id", file.ID)
	}
}

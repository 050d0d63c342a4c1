package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/server/models"
)

const (
	msgFileNotFound = "File not found"
	msgFileDeleted  = "File deleted successfully"
	msgFileRenamed  = "File title updated successfully"
)

type fileView struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Title        string    `json:"title"`
	UploadStatus string    `json:"uploadStatus"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func newFileView(f *models.File) fileView {
	return fileView{
		ID:           f.ID,
		UserID:       f.UserID,
		Title:        f.Title,
		UploadStatus: f.UploadStatus,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

type renameRequest struct {
	Title string `json:"title"`
}

type urlResponse struct {
	URL string `json:"url"`
}

// createFile answers with the new file under "files", the key the web
// client reads for both create and list.
func (s *Server) createFile(w http.ResponseWriter, r *http.Request) {
	f, err := s.files.CreateForOwner(r.Context(), actor(r))
	if err != nil {
		s.writeError(w, r, err, msgFileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]fileView{"files": newFileView(f)})
}

func (s *Server) listFiles(w http.ResponseWriter, r *http.Request) {
	list, err := s.files.ListForOwner(r.Context(), actor(r))
	if err != nil {
		s.writeError(w, r, err, msgFileNotFound)
		return
	}

	views := make([]fileView, 0, len(list))
	for _, f := range list {
		views = append(views, newFileView(f))
	}
	writeJSON(w, http.StatusOK, map[string][]fileView{"files": views})
}

func (s *Server) getFile(w http.ResponseWriter, r *http.Request) {
	f, err := s.files.Get(r.Context(), actor(r), r.PathValue("fileID"))
	if err != nil {
		s.writeError(w, r, err, msgFileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]fileView{"file": newFileView(f)})
}

func (s *Server) deleteFile(w http.ResponseWriter, r *http.Request) {
	if err := s.files.Delete(r.Context(), actor(r), r.PathValue("fileID")); err != nil {
		s.writeError(w, r, err, msgFileNotFound)
		return
	}
	writeMessage(w, http.StatusOK, msgFileDeleted)
}

func (s *Server) renameFile(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, msgFileNotFound)
		return
	}

	f, err := s.files.Rename(r.Context(), actor(r), r.PathValue("fileID"), req.Title)
	if err != nil {
		s.writeError(w, r, err, msgFileNotFound)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string   `json:"message"`
		File    fileView `json:"file"`
	}{msgFileRenamed, newFileView(f)})
}

func (s *Server) uploadURL(w http.ResponseWriter, r *http.Request) {
	url, err := s.files.UploadURL(r.Context(), actor(r), r.PathValue("fileID"))
	if err != nil {
		s.writeError(w, r, err, msgFileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, urlResponse{URL: url})
}

func (s *Server) completeUpload(w http.ResponseWriter, r *http.Request) {
	f, err := s.files.CompleteUpload(r.Context(), actor(r), r.PathValue("fileID"))
	if err != nil {
		s.writeError(w, r, err, msgFileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]fileView{"file": newFileView(f)})
}

func (s *Server) downloadURL(w http.ResponseWriter, r *http.Request) {
	url, err := s.files.DownloadURL(r.Context(), actor(r), r.PathValue("fileID"))
	if err != nil {
		s.writeError(w, r, err, msgFileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, urlResponse{URL: url})
}

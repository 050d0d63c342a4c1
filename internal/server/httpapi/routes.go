package httpapi

import "net/http"

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.health)

	mux.HandleFunc("GET /api/users/ping", s.ping)
	mux.HandleFunc("POST /api/users/signup", s.signUp)
	mux.HandleFunc("POST /api/users/signin", s.signIn)
	mux.HandleFunc("GET /api/users/signout", s.signOut)
	mux.HandleFunc("POST /api/users/signout", s.signOut)
	mux.Handle("GET /api/users/me", s.requireSession(s.me))
	mux.Handle("DELETE /api/users/me", s.requireSession(s.deleteMe))

	mux.Handle("POST /api/files", s.requireSession(s.createFile))
	mux.Handle("GET /api/files", s.requireSession(s.listFiles))
	mux.Handle("GET /api/files/{fileID}", s.requireSession(s.getFile))
	mux.Handle("DELETE /api/files/{fileID}", s.requireSession(s.deleteFile))
	mux.Handle("PATCH /api/files/{fileID}", s.requireSession(s.renameFile))
	mux.Handle("PUT /api/files/{fileID}/content", s.requireSession(s.uploadURL))
	mux.Handle("GET /api/files/{fileID}/content", s.requireSession(s.downloadURL))
	mux.Handle("POST /api/files/{fileID}/content/complete", s.requireSession(s.completeUpload))

	return mux
}

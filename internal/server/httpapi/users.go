package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/server/models"
)

const msgUserNotFound = "User not found"

// userView is the public shape of a user. The password field is always
// null so clients can rely on its presence but never see the hash.
type userView struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	AvatarImage string    `json:"avatarImage,omitempty"`
	Password    *string   `json:"password"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newUserView(u *models.User) userView {
	return userView{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		AvatarImage: u.AvatarImage,
		CreatedAt:   u.CreatedAt,
	}
}

type signUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	AvatarImage string `json:"avatarImage"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"pong": true})
}

func (s *Server) signUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, msgUserNotFound)
		return
	}

	u, err := s.users.Register(r.Context(), req.Email, req.Password, req.Name, req.AvatarImage)
	if err != nil {
		s.writeError(w, r, err, msgUserNotFound)
		return
	}

	writeJSON(w, http.StatusOK, newUserView(u))
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, msgUserNotFound)
		return
	}

	u, token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err, msgUserNotFound)
		return
	}

	s.session.Attach(w, token)
	writeJSON(w, http.StatusOK, newUserView(u))
}

// signOut only clears the cookie. Tokens are stateless, so a copy kept by
// the client stays valid until it expires.
func (s *Server) signOut(w http.ResponseWriter, r *http.Request) {
	s.session.Clear(w)
	writeMessage(w, http.StatusOK, msgSuccess)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.GetByID(r.Context(), actor(r))
	if err != nil {
		s.writeError(w, r, err, msgUserNotFound)
		return
	}
	writeJSON(w, http.StatusOK, newUserView(u))
}

func (s *Server) deleteMe(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Delete(r.Context(), actor(r)); err != nil {
		s.writeError(w, r, err, msgUserNotFound)
		return
	}
	s.session.Clear(w)
	writeMessage(w, http.StatusOK, msgSuccess)
}

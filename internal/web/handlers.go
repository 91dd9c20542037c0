// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/inkwell/inkwell/internal/auth"
	"github.com/inkwell/inkwell/internal/blog"
)

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type articleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type articleResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

func toArticleResponse(a *blog.Article) articleResponse {
	return articleResponse{
		ID:        a.ID.String(),
		Title:     a.Title,
		Content:   a.Content,
		Author:    a.Author,
		CreatedAt: a.CreatedAt,
	}
}

func toArticleResponses(articles []*blog.Article) []articleResponse {
	out := make([]articleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, toArticleResponse(a))
	}
	return out
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return false
	}
	return true
}

// articleID parses the {id} path segment. A token that is not a valid
// ULID cannot name any row, so it reports not-found rather than a
// request-shape error.
func articleID(w http.ResponseWriter, r *http.Request) (ulid.ULID, bool) {
	id, err := ulid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, blog.ErrNotFound)
		return ulid.ULID{}, false
	}
	return id, true
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := s.auth.Register(r.Context(), auth.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Confirm:  req.Confirm,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, userResponse{
		ID:       user.ID.String(),
		Username: user.Username,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if s.metrics != nil && errors.Is(err, auth.ErrInvalidCredentials) {
			s.metrics.LoginsTotal.WithLabelValues("failure").Inc()
		}
		writeError(w, r, err)
		return
	}
	if s.metrics != nil {
		s.metrics.LoginsTotal.WithLabelValues("success").Inc()
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.sessionTTL / time.Second),
	})
	writeJSON(w, r, http.StatusOK, loginResponse{Token: token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.Logout(sessionToken(r))

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	writeJSON(w, r, http.StatusNoContent, nil)
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := s.blog.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toArticleResponses(articles))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	session, _ := SessionFromContext(r.Context())
	articles, err := s.blog.ListByAuthor(r.Context(), session.Username)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toArticleResponses(articles))
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(w, r)
	if !ok {
		return
	}
	article, err := s.blog.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toArticleResponse(article))
}

func (s *Server) handleCreateArticle(w http.ResponseWriter, r *http.Request) {
	var req articleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, _ := SessionFromContext(r.Context())
	article, err := s.blog.Create(r.Context(), session.Username, req.Title, req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toArticleResponse(article))
}

func (s *Server) handleUpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(w, r)
	if !ok {
		return
	}
	var req articleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, _ := SessionFromContext(r.Context())
	if err := s.blog.Update(r.Context(), id, session.Username, req.Title, req.Content); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(w, r)
	if !ok {
		return
	}

	session, _ := SessionFromContext(r.Context())
	if err := s.blog.Delete(r.Context(), id, session.Username); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusNoContent, nil)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("q")
	articles, err := s.blog.SearchByTitle(r.Context(), keyword)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toArticleResponses(articles))
}

package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/vedran77/chirp/internal/service"
)

type TweetHandler struct {
	tweetService *service.TweetService
}

func NewTweetHandler(tweetService *service.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateTweetInput
	if !decodeBody(w, r, &input) {
		return
	}

	tweet, err := h.tweetService.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, "create tweet", err)
		return
	}

	writeOK(w, http.StatusOK, map[string]any{"tweet": tweet})
}

// List handles GET /tweets/all/{token}.
func (h *TweetHandler) List(w http.ResponseWriter, r *http.Request) {
	token, ok := pathParam(w, r, "token")
	if !ok {
		return
	}

	tweets, err := h.tweetService.List(r.Context(), token)
	if err != nil {
		writeServiceError(w, r, "list tweets", err)
		return
	}

	writeOK(w, http.StatusOK, map[string]any{"tweets": tweets})
}

// Trends handles GET /tweets/trends/{token}.
func (h *TweetHandler) Trends(w http.ResponseWriter, r *http.Request) {
	token, ok := pathParam(w, r, "token")
	if !ok {
		return
	}

	trends, err := h.tweetService.Trends(r.Context(), token)
	if err != nil {
		writeServiceError(w, r, "trends", err)
		return
	}

	writeOK(w, http.StatusOK, map[string]any{"trends": trends})
}

// SearchHashtag handles GET /tweets/hashtag/{token}/{query}.
func (h *TweetHandler) SearchHashtag(w http.ResponseWriter, r *http.Request) {
	token, ok := pathParam(w, r, "token")
	if !ok {
		return
	}
	query, ok := pathParam(w, r, "query")
	if !ok {
		return
	}

	tweets, err := h.tweetService.SearchHashtag(r.Context(), token, query)
	if err != nil {
		writeServiceError(w, r, "search hashtag", err)
		return
	}

	writeOK(w, http.StatusOK, map[string]any{"tweets": tweets})
}

func (h *TweetHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	var input service.TweetActionInput
	if !decodeBody(w, r, &input) {
		return
	}

	if _, err := h.tweetService.ToggleLike(r.Context(), input); err != nil {
		writeServiceError(w, r, "toggle like", err)
		return
	}

	writeOK(w, http.StatusOK, nil)
}

func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var input service.TweetActionInput
	if !decodeBody(w, r, &input) {
		return
	}

	if err := h.tweetService.Delete(r.Context(), input); err != nil {
		writeServiceError(w, r, "delete tweet", err)
		return
	}

	writeOK(w, http.StatusOK, nil)
}

// pathParam returns the decoded URL parameter. chi matches against RawPath
// when the request carries one, so parameters are still escaped in that case.
func pathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	raw := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return raw, true
	}
	v, err := url.PathUnescape(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request path")
		return "", false
	}
	return v, true
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danilomoraisgustavo/myworlds/internal/content"
	"github.com/danilomoraisgustavo/myworlds/internal/models"
	"github.com/danilomoraisgustavo/myworlds/internal/slug"
	"github.com/danilomoraisgustavo/myworlds/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const maxLimit = 100

// ContentGenerator produces content for the AI endpoint.
type ContentGenerator interface {
	Generate(ctx context.Context, req content.Request) (*content.Result, error)
}

// Handlers holds the API handlers.
type Handlers struct {
	store     storage.Repository
	generator ContentGenerator
}

// NewHandlers creates new API handlers.
func NewHandlers(store storage.Repository, generator ContentGenerator) *Handlers {
	return &Handlers{store: store, generator: generator}
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// getLimit returns the limit query parameter, or 0 (no limit) when absent or invalid.
func getLimit(r *http.Request) int {
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			if parsed > maxLimit {
				return maxLimit
			}
			return parsed
		}
	}
	return 0
}

func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}

// ============================================================================
// ARTICLE HANDLERS
// ============================================================================

// articlePayload is the body accepted by article create and update.
type articlePayload struct {
	Title           string            `json:"title"`
	Slug            string            `json:"slug"`
	Excerpt         string            `json:"excerpt"`
	Content         string            `json:"content"`
	CoverImage      string            `json:"cover_image"`
	Category        models.Category   `json:"category"`
	Tags            []string          `json:"tags"`
	Status          models.Status     `json:"status"`
	Featured        bool              `json:"featured"`
	Generation      models.Generation `json:"generation"`
	MetaDescription string            `json:"meta_description"`
}

var errTitleContentRequired = errors.New("title e content são obrigatórios")

// toArticle validates the payload and applies the editor defaults.
func (p articlePayload) toArticle() (*models.Article, error) {
	if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Content) == "" {
		return nil, errTitleContentRequired
	}

	a := &models.Article{
		Title:           p.Title,
		Slug:            strings.TrimSpace(p.Slug),
		Excerpt:         p.Excerpt,
		Content:         p.Content,
		CoverImage:      p.CoverImage,
		Category:        p.Category,
		Tags:            p.Tags,
		Status:          p.Status,
		Featured:        p.Featured,
		Generation:      p.Generation,
		MetaDescription: p.MetaDescription,
	}

	if a.Slug == "" {
		a.Slug = slug.Slugify(a.Title)
	}
	if a.Category == "" {
		a.Category = models.CategoryNews
	}
	if a.Status == "" {
		a.Status = models.StatusDraft
	}
	if a.Generation == "" {
		a.Generation = models.GenerationAll
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}

	if !a.Category.Valid() {
		return nil, errors.New("categoria inválida: " + string(a.Category))
	}
	if !a.Status.Valid() {
		return nil, errors.New("status inválido: " + string(a.Status))
	}
	if !a.Generation.Valid() {
		return nil, errors.New("geração inválida: " + string(a.Generation))
	}
	return a, nil
}

// GetArticles returns articles filtered by status, category, generation and featured.
func (h *Handlers) GetArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := storage.ArticleFilter{
		Status:     models.Status(q.Get("status")),
		Category:   models.Category(q.Get("category")),
		Generation: models.Generation(q.Get("generation")),
		Limit:      getLimit(r),
	}
	switch q.Get("featured") {
	case "true":
		featured := true
		filter.Featured = &featured
	case "false":
		featured := false
		filter.Featured = &featured
	}

	articles, err := h.store.ListArticles(r.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list articles")
		respondError(w, http.StatusInternalServerError, "Erro ao listar artigos")
		return
	}

	respondJSON(w, http.StatusOK, articles)
}

// GetArticle returns an article by id and counts the view.
func (h *Handlers) GetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := h.store.ViewArticle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.articleError(w, err, "Erro ao buscar artigo")
		return
	}

	respondJSON(w, http.StatusOK, article)
}

// GetArticleBySlug returns a single article by slug.
func (h *Handlers) GetArticleBySlug(w http.ResponseWriter, r *http.Request) {
	s := chi.URLParam(r, "slug")
	if s == "" {
		respondError(w, http.StatusBadRequest, "Slug is required")
		return
	}

	article, err := h.store.GetArticleBySlug(r.Context(), s)
	if err != nil {
		h.articleError(w, err, "Erro ao buscar artigo")
		return
	}

	respondJSON(w, http.StatusOK, article)
}

// CreateArticle stores a new article.
func (h *Handlers) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var payload articlePayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	article, err := payload.toArticle()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.CreateArticle(r.Context(), article); err != nil {
		h.articleError(w, err, "Erro ao criar artigo")
		return
	}

	respondJSON(w, http.StatusCreated, article)
}

// UpdateArticle replaces an article's editable fields.
func (h *Handlers) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	var payload articlePayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	article, err := payload.toArticle()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	article.ID = chi.URLParam(r, "id")

	updated, err := h.store.UpdateArticle(r.Context(), article)
	if err != nil {
		h.articleError(w, err, "Erro ao atualizar artigo")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteArticle removes an article.
func (h *Handlers) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteArticle(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.articleError(w, err, "Erro ao apagar artigo")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handlers) articleError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, "Artigo não encontrado")
	case errors.Is(err, storage.ErrDuplicateSlug):
		respondError(w, http.StatusConflict, "Slug já existe")
	default:
		log.Error().Err(err).Msg(message)
		respondError(w, http.StatusInternalServerError, message)
	}
}

// ============================================================================
// TOURNAMENT HANDLERS
// ============================================================================

type tournamentPayload struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Rules       string            `json:"rules"`
	Location    string            `json:"location"`
	StartsAt    *time.Time        `json:"starts_at"`
	CoverImage  string            `json:"cover_image"`
	Generation  models.Generation `json:"generation"`
	Status      models.Status     `json:"status"`
}

// GetTournaments returns all tournaments.
func (h *Handlers) GetTournaments(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.store.ListTournaments(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list tournaments")
		respondError(w, http.StatusInternalServerError, "Failed to list tournaments")
		return
	}

	respondJSON(w, http.StatusOK, tournaments)
}

// CreateTournament stores a new tournament.
func (h *Handlers) CreateTournament(w http.ResponseWriter, r *http.Request) {
	var payload tournamentPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(payload.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if payload.Generation != "" && !payload.Generation.Valid() {
		respondError(w, http.StatusBadRequest, "invalid generation")
		return
	}
	if payload.Status != "" && !payload.Status.Valid() {
		respondError(w, http.StatusBadRequest, "invalid status")
		return
	}

	t := &models.Tournament{
		Name:        payload.Name,
		Description: payload.Description,
		Rules:       payload.Rules,
		Location:    payload.Location,
		StartsAt:    payload.StartsAt,
		CoverImage:  payload.CoverImage,
		Generation:  payload.Generation,
		Status:      payload.Status,
	}

	if err := h.store.CreateTournament(r.Context(), t); err != nil {
		log.Error().Err(err).Msg("Failed to create tournament")
		respondError(w, http.StatusInternalServerError, "Failed to create tournament")
		return
	}

	respondJSON(w, http.StatusCreated, t)
}

// ============================================================================
// AI HANDLERS
// ============================================================================

// GenerateContent runs the content generator for a topic.
func (h *Handlers) GenerateContent(w http.ResponseWriter, r *http.Request) {
	var req content.Request
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Topic) == "" {
		respondError(w, http.StatusBadRequest, "topic is required")
		return
	}

	result, err := h.generator.Generate(r.Context(), req)
	if err != nil {
		log.Error().Err(err).Str("topic", req.Topic).Msg("Failed to generate content")
		respondError(w, http.StatusInternalServerError, "Failed to generate content with AI")
		return
	}

	respondJSON(w, http.StatusOK, result.Payload())
}

// ============================================================================
// GENERAL HANDLERS
// ============================================================================

// GetCategories returns the site sections.
func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.DefaultCategories)
}

// GetStats returns general statistics.
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetStats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch stats")
		respondError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// HealthCheck returns service health.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Backend My-World's-Pokemon is running",
	})
}

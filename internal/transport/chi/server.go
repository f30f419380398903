package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/painaidee/discovery/internal/domain"
	"github.com/painaidee/discovery/internal/domain/search/request"
	"github.com/painaidee/discovery/internal/domain/search/result"
	healthuc "github.com/painaidee/discovery/internal/usecase/health"
	locationuc "github.com/painaidee/discovery/internal/usecase/location"
	relateduc "github.com/painaidee/discovery/internal/usecase/related"
	searchuc "github.com/painaidee/discovery/internal/usecase/search"
)

// Error codes returned in the JSON error body.
const (
	codeBadRequest        = "bad_request"
	codeValidationFailed  = "validation_failed"
	codeNotFound          = "not_found"
	codeProviderError     = "similarity_provider_error"
	codeCorpusUnavailable = "corpus_unavailable"
	codeInternalError     = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the discovery engine over HTTP.
type Server struct {
	search        *searchuc.Service
	related       *relateduc.Service
	locations     *locationuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler

	defaultLimit    int
	maxLimit        int
	relatedDefaults relateduc.Config
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	related *relateduc.Service,
	locations *locationuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:          search,
		related:         related,
		locations:       locations,
		health:          health,
		logger:          logger,
		defaultLimit:    request.DefaultLimit,
		maxLimit:        request.MaxLimit,
		relatedDefaults: relateduc.DefaultConfig(),
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidLimit, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidCoordinates, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrPostNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrLocationNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrSimilarityProviderError, http.StatusBadGateway, codeProviderError),
		sentinelHandler(domain.ErrCorpusUnavailable, http.StatusServiceUnavailable, codeCorpusUnavailable),
	}
	return s
}

// WithSearchLimits overrides the configured default and maximum result
// limits for POST /v1/search.
func (s *Server) WithSearchLimits(defaultLimit, maxLimit int) *Server {
	if defaultLimit > 0 {
		s.defaultLimit = defaultLimit
	}
	if maxLimit > 0 {
		s.maxLimit = maxLimit
	}
	return s
}

// WithRelatedDefaults overrides the configured related-posts defaults.
func (s *Server) WithRelatedDefaults(cfg relateduc.Config) *Server {
	s.relatedDefaults = cfg
	return s
}

// Routes mounts all API handlers on the given router.
func (s *Server) Routes(r chirouter.Router) {
	r.Post("/v1/search", s.SearchPosts)
	r.Get("/v1/suggest", s.Suggest)
	r.Get("/v1/trending", s.Trending)
	r.Get("/v1/posts/{id}/related", s.RelatedPosts)
	r.Get("/v1/locations/search", s.SearchLocations)
	r.Get("/v1/locations/{id}/nearby", s.NearbyLocations)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type searchRequestDTO struct {
	Query    string      `json:"query"`
	Language string      `json:"language"`
	Limit    *int        `json:"limit"`
	Filters  *filtersDTO `json:"filters"`
}

type filtersDTO struct {
	Provinces  []string `json:"provinces"`
	Categories []string `json:"categories"`
	Amenities  []string `json:"amenities"`
}

// SearchPosts handles POST /v1/search.
func (s *Server) SearchPosts(w http.ResponseWriter, r *http.Request) {
	var req searchRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// An omitted limit gets the default; an explicit non-positive one is
	// the caller's mistake and is rejected by request.New.
	limit := s.defaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	var filters request.Filters
	if req.Filters != nil {
		filters = request.Filters{
			Provinces:  req.Filters.Provinces,
			Categories: req.Filters.Categories,
			Amenities:  req.Filters.Amenities,
		}
	}

	searchReq, err := request.New(req.Query, req.Language, limit, filters)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp, err := s.search.Search(r.Context(), &searchReq)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponseToDTO(resp))
}

// Suggest handles GET /v1/suggest. Matches the raw prefix without expansion,
// ordered by match quality.
func (s *Server) Suggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit, err := queryLimit(r, locationuc.DefaultLimit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	candidates, err := s.locations.Suggest(r.Context(), query, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]suggestionDTO, len(candidates))
	for i, c := range candidates {
		items[i] = suggestionDTO{
			Location:     locationToDTO(c.Location),
			MatchedTerms: c.MatchedTerms,
		}
	}

	writeJSON(w, http.StatusOK, suggestResponseDTO{Suggestions: items})
}

// Trending handles GET /v1/trending.
func (s *Server) Trending(w http.ResponseWriter, r *http.Request) {
	language := r.URL.Query().Get("language")
	writeJSON(w, http.StatusOK, trendingResponseDTO{
		Trending: s.search.Trending(language),
	})
}

// RelatedPosts handles GET /v1/posts/{id}/related.
func (s *Server) RelatedPosts(w http.ResponseWriter, r *http.Request) {
	id := chirouter.URLParam(r, "id")

	cfg := s.relatedDefaults
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "limit must be an integer")
			return
		}
		cfg.MaxResults = n
	}
	if v := r.URL.Query().Get("min_similarity"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "min_similarity must be a number")
			return
		}
		cfg.MinSimilarityThreshold = f
	}

	results, err := s.related.FindRelated(r.Context(), id, cfg)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]resultDTO, len(results))
	for i := range results {
		items[i] = resultToDTO(&results[i])
	}

	writeJSON(w, http.StatusOK, relatedResponseDTO{
		SourceID: id,
		Related:  items,
	})
}

// SearchLocations handles GET /v1/locations/search.
func (s *Server) SearchLocations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit, err := queryLimit(r, locationuc.DefaultLimit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	locations, err := s.locations.Search(r.Context(), query, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]locationDTO, len(locations))
	for i, loc := range locations {
		items[i] = locationToDTO(loc)
	}

	writeJSON(w, http.StatusOK, locationListDTO{Locations: items})
}

// NearbyLocations handles GET /v1/locations/{id}/nearby.
func (s *Server) NearbyLocations(w http.ResponseWriter, r *http.Request) {
	id := chirouter.URLParam(r, "id")

	radiusKm := 50.0
	if v := r.URL.Query().Get("radius_km"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "radius_km must be a number")
			return
		}
		radiusKm = f
	}
	limit, err := queryLimit(r, locationuc.DefaultLimit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	nearby, err := s.locations.Nearby(r.Context(), id, radiusKm, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]nearbyDTO, len(nearby))
	for i, n := range nearby {
		items[i] = nearbyDTO{
			Location:   locationToDTO(n.Location),
			DistanceKm: n.DistanceKm,
		}
	}

	writeJSON(w, http.StatusOK, nearbyResponseDTO{
		CenterID: id,
		RadiusKm: radiusKm,
		Nearby:   items,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponseDTO{
		Status: string(report.Status),
		Checks: report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// queryLimit parses the optional limit query parameter.
func queryLimit(r *http.Request, fallback int) (int, error) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, domain.ErrInvalidLimit
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponseDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponseDTO{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrInvalidLimit,
		domain.ErrInvalidCoordinates,
		domain.ErrPostNotFound,
		domain.ErrLocationNotFound,
		domain.ErrSimilarityProviderError,
		domain.ErrCorpusUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

type searchResponseDTO struct {
	Results          []resultDTO `json:"results"`
	TotalCount       int         `json:"totalCount"`
	Query            string      `json:"query"`
	ProcessingTimeMs float64     `json:"processingTimeMs"`
	ExpandedTerms    []string    `json:"expandedTerms,omitempty"`
}

type resultDTO struct {
	Post               postDTO    `json:"post"`
	Score              float64    `json:"score"`
	Metrics            metricsDTO `json:"metrics"`
	MatchedTerms       []string   `json:"matchedTerms,omitempty"`
	HighlightedCaption string     `json:"highlightedCaption,omitempty"`
}

type metricsDTO struct {
	Semantic   float64 `json:"semantic"`
	Popularity float64 `json:"popularity"`
	Recency    float64 `json:"recency"`
	Relevance  float64 `json:"relevance"`
}

type postDTO struct {
	ID         string         `json:"id"`
	Author     authorDTO      `json:"author"`
	Media      []mediaDTO     `json:"media,omitempty"`
	Caption    string         `json:"caption"`
	Tags       []string       `json:"tags,omitempty"`
	LocationID string         `json:"locationId,omitempty"`
	Location   locationRefDTO `json:"location"`
	Geo        *geoPointDTO   `json:"geo,omitempty"`
	LikeCount  int            `json:"likeCount"`
	Comments   int            `json:"commentCount"`
	Shares     int            `json:"shareCount"`
	Views      int            `json:"viewCount"`
	CreatedAt  *time.Time     `json:"createdAt,omitempty"`
	Language   string         `json:"language,omitempty"`
}

type authorDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
	Verified bool   `json:"verified"`
}

type mediaDTO struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	ThumbURL    string `json:"thumbUrl,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	DurationSec int    `json:"durationSec,omitempty"`
}

type locationRefDTO struct {
	Name      string `json:"name"`
	NameLocal string `json:"nameLocal,omitempty"`
	Province  string `json:"province,omitempty"`
}

type geoPointDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type locationDTO struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	NameLocal       string       `json:"nameLocal,omitempty"`
	Aliases         []string     `json:"aliases,omitempty"`
	Province        string       `json:"province,omitempty"`
	Region          string       `json:"region,omitempty"`
	Category        string       `json:"category,omitempty"`
	Tags            []string     `json:"tags,omitempty"`
	Geo             *geoPointDTO `json:"geo,omitempty"`
	PopularityScore float64      `json:"popularityScore"`
	Description     string       `json:"description,omitempty"`
}

type suggestionDTO struct {
	Location     locationDTO `json:"location"`
	MatchedTerms []string    `json:"matchedTerms,omitempty"`
}

type suggestResponseDTO struct {
	Suggestions []suggestionDTO `json:"suggestions"`
}

type trendingResponseDTO struct {
	Trending []string `json:"trending"`
}

type relatedResponseDTO struct {
	SourceID string      `json:"sourceId"`
	Related  []resultDTO `json:"related"`
}

type locationListDTO struct {
	Locations []locationDTO `json:"locations"`
}

type nearbyDTO struct {
	Location   locationDTO `json:"location"`
	DistanceKm float64     `json:"distanceKm"`
}

type nearbyResponseDTO struct {
	CenterID string      `json:"centerId"`
	RadiusKm float64     `json:"radiusKm"`
	Nearby   []nearbyDTO `json:"nearby"`
}

type healthResponseDTO struct {
	Status string                          `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}

func searchResponseToDTO(resp result.Response) searchResponseDTO {
	items := make([]resultDTO, len(resp.Results))
	for i := range resp.Results {
		items[i] = resultToDTO(&resp.Results[i])
	}
	return searchResponseDTO{
		Results:          items,
		TotalCount:       resp.TotalCount,
		Query:            resp.Query,
		ProcessingTimeMs: resp.ProcessingTimeMs,
		ExpandedTerms:    resp.ExpandedTerms,
	}
}

func resultToDTO(r *result.Result) resultDTO {
	m := r.Metrics()
	return resultDTO{
		Post:  postToDTO(r.Post()),
		Score: m.Final,
		Metrics: metricsDTO{
			Semantic:   m.Semantic,
			Popularity: m.Popularity,
			Recency:    m.Recency,
			Relevance:  m.Relevance,
		},
		MatchedTerms:       r.MatchedTerms(),
		HighlightedCaption: r.HighlightedCaption(),
	}
}

func postToDTO(p domain.Post) postDTO {
	dto := postDTO{
		ID:      p.ID,
		Caption: p.Caption,
		Tags:    p.Tags,
		Author: authorDTO{
			ID:       p.Author.ID,
			Name:     p.Author.Name,
			Avatar:   p.Author.Avatar,
			Verified: p.Author.Verified,
		},
		LocationID: p.LocationID,
		Location: locationRefDTO{
			Name:      p.Location.Name,
			NameLocal: p.Location.NameLocal,
			Province:  p.Location.Province,
		},
		LikeCount: p.Counters.Likes,
		Comments:  p.Counters.Comments,
		Shares:    p.Counters.Shares,
		Views:     p.Counters.Views,
		Language:  p.Language,
	}

	if len(p.Media) > 0 {
		dto.Media = make([]mediaDTO, len(p.Media))
		for i, m := range p.Media {
			dto.Media[i] = mediaDTO{
				ID:          m.ID,
				Type:        string(m.Type),
				URL:         m.URL,
				ThumbURL:    m.ThumbURL,
				Width:       m.Width,
				Height:      m.Height,
				DurationSec: m.DurationSec,
			}
		}
	}
	if p.Geo != nil {
		dto.Geo = &geoPointDTO{Lat: p.Geo.Lat, Lng: p.Geo.Lng}
	}
	if !p.CreatedAt.IsZero() {
		t := p.CreatedAt
		dto.CreatedAt = &t
	}
	return dto
}

func locationToDTO(loc domain.Location) locationDTO {
	dto := locationDTO{
		ID:              loc.ID,
		Name:            loc.Name,
		NameLocal:       loc.NameLocal,
		Aliases:         loc.Aliases,
		Province:        loc.Province,
		Region:          loc.Region,
		Category:        loc.Category,
		Tags:            loc.Tags,
		PopularityScore: loc.PopularityScore,
		Description:     loc.Description,
	}
	if loc.Geo != (domain.GeoPoint{}) {
		dto.Geo = &geoPointDTO{Lat: loc.Geo.Lat, Lng: loc.Geo.Lng}
	}
	return dto
}

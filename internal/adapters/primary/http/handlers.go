package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/fredcamaral/slidecraft/internal/adapters/secondary/pptx"
	"github.com/fredcamaral/slidecraft/internal/domain/entities"
	"github.com/fredcamaral/slidecraft/internal/domain/ports"
	"github.com/fredcamaral/slidecraft/internal/domain/services"
)

const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// defaultQuickSlides is used when a quick request leaves num_slides unset
const defaultQuickSlides = 10

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string    `json:"error"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// HealthResponse reports server status
type HealthResponse struct {
	Status  string    `json:"status"`
	Version string    `json:"version"`
	Builds  int       `json:"builds"`
	Clients int       `json:"clients"`
	Time    time.Time `json:"time"`
}

// ThemeResponse is a catalog theme with hex colors
type ThemeResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Style       string            `json:"style"`
	Palette     map[string]string `json:"palette"`
	Fonts       entities.Fonts    `json:"fonts"`
}

// TemplateSummary describes a library template without its slides
type TemplateSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Theme       string `json:"theme"`
	SlideCount  int    `json:"slide_count"`
	FieldCount  int    `json:"field_count"`
}

// TemplateField is one placeholder with its display label
type TemplateField struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// TemplateDetail is a library template with its fields
type TemplateDetail struct {
	entities.TemplateSkeleton
	Fields []TemplateField `json:"fields"`
}

// DeckOptions are the styling and export choices shared by generated decks
type DeckOptions struct {
	Theme        string               `json:"theme,omitempty"`
	BrandKit     entities.BrandKitRef `json:"brand_kit,omitempty"`
	Format       string               `json:"format,omitempty"`
	TemplatePath string               `json:"template_path,omitempty"`
	Exports      []string             `json:"exports,omitempty"`
}

// BuildDeckRequest is a full build configuration plus requested exports
type BuildDeckRequest struct {
	entities.BuildConfig
	Exports []string `json:"exports,omitempty"`
}

// GenerateDeckRequest drives quick and model-backed generation
type GenerateDeckRequest struct {
	entities.GenerationRequest
	DeckOptions
}

// TemplateDeckRequest fills a library template
type TemplateDeckRequest struct {
	Values map[string]string `json:"values"`
	DeckOptions
}

// DeckResponse describes a finished build
type DeckResponse struct {
	ID          string               `json:"id"`
	ThemeName   string               `json:"theme_name"`
	SlideCount  int                  `json:"slide_count"`
	SlideTypes  []entities.SlideType `json:"slide_types"`
	Duration    string               `json:"duration"`
	CreatedAt   time.Time            `json:"created_at"`
	DownloadURL string               `json:"download_url"`
	Exports     map[string]string    `json:"exports,omitempty"`
}

// requestError is a client mistake reported with its message
type requestError struct {
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(format string, args ...interface{}) error {
	return &requestError{message: fmt.Sprintf(format, args...)}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
		Builds:  s.registry.Len(),
		Clients: s.connMgr.Count(),
		Time:    time.Now(),
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if s.services.Metrics == nil {
		s.handleError(w, errors.New("metrics are not enabled"), http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, s.services.Metrics.Snapshot())
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	themes := services.Themes()
	response := make([]ThemeResponse, 0, len(themes))
	for _, theme := range themes {
		palette := make(map[string]string, len(entities.ColorRoles))
		for role, c := range theme.Palette.Roles() {
			palette[string(role)] = "#" + c.Hex()
		}
		response = append(response, ThemeResponse{
			ID:          theme.ID,
			Name:        theme.Name,
			Description: theme.Description,
			Style:       theme.Style,
			Palette:     palette,
			Fonts:       theme.Fonts,
		})
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	summaries := []TemplateSummary{}
	for _, t := range s.services.Templates.List() {
		if category != "" && t.Category != category {
			continue
		}
		summaries = append(summaries, TemplateSummary{
			ID:          t.ID,
			Name:        t.Name,
			Category:    t.Category,
			Description: t.Description,
			Theme:       t.Theme,
			SlideCount:  len(t.Slides),
			FieldCount:  len(s.services.Templates.FieldNames(t)),
		})
	}
	s.writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	skeleton, ok := s.services.Templates.Get(id)
	if !ok {
		s.handleError(w, fmt.Errorf("template %q not found", id), http.StatusNotFound)
		return
	}

	names := s.services.Templates.FieldNames(skeleton)
	fields := make([]TemplateField, len(names))
	for i, name := range names {
		fields[i] = TemplateField{Name: name, Label: services.FieldLabel(name)}
	}
	s.writeJSON(w, http.StatusOK, TemplateDetail{TemplateSkeleton: skeleton, Fields: fields})
}

func (s *Server) handleUploads(w http.ResponseWriter, r *http.Request) {
	templates, err := pptx.FindCustomTemplates(s.services.UploadsDir)
	if err != nil {
		s.handleError(w, err, http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, templates)
}

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	records := s.registry.List()
	decks := make([]DeckResponse, len(records))
	for i, record := range records {
		decks[i] = deckResponse(record)
	}
	s.writeJSON(w, http.StatusOK, decks)
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	record, ok := s.registry.Get(mux.Vars(r)["id"])
	if !ok {
		s.handleError(w, errors.New("unknown build"), http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, deckResponse(record))
}

// handleBuildDeck builds a deck from an explicit slide list
func (s *Server) handleBuildDeck(w http.ResponseWriter, r *http.Request) {
	var req BuildDeckRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleRequestError(w, err)
		return
	}

	config := req.BuildConfig
	config.OutputDir = ""
	if err := s.restrictPaths(&config); err != nil {
		s.handleRequestError(w, err)
		return
	}

	s.buildAndRespond(r.Context(), w, config, req.Exports)
}

// handleQuickDeck builds a deck from rule-based segmentation
func (s *Server) handleQuickDeck(w http.ResponseWriter, r *http.Request) {
	var req GenerateDeckRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleRequestError(w, err)
		return
	}
	if req.NumSlides == 0 {
		req.NumSlides = defaultQuickSlides
	}

	s.generateAndRespond(w, r, s.services.Quick, req)
}

// handleGenerateDeck builds a deck from language model output
func (s *Server) handleGenerateDeck(w http.ResponseWriter, r *http.Request) {
	if s.services.Generator == nil {
		s.handleError(w, errors.New("no language model configured"), http.StatusServiceUnavailable)
		return
	}

	var req GenerateDeckRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleRequestError(w, err)
		return
	}

	s.generateAndRespond(w, r, s.services.Generator, req)
}

func (s *Server) generateAndRespond(w http.ResponseWriter, r *http.Request, generator ports.SlideGenerator, req GenerateDeckRequest) {
	config := req.DeckOptions.buildConfig(nil)
	config.Title = strings.TrimSpace(req.Topic)
	if err := s.restrictPaths(&config); err != nil {
		s.handleRequestError(w, err)
		return
	}

	slides, err := generator.Generate(r.Context(), req.GenerationRequest)
	if err != nil {
		s.handleBuildError(w, err)
		return
	}
	config.Slides = slides

	s.buildAndRespond(r.Context(), w, config, req.Exports)
}

// handleTemplateDeck fills a library template and builds it
func (s *Server) handleTemplateDeck(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	skeleton, ok := s.services.Templates.Get(id)
	if !ok {
		s.handleError(w, fmt.Errorf("template %q not found", id), http.StatusNotFound)
		return
	}

	var req TemplateDeckRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleRequestError(w, err)
		return
	}

	values := make(map[string]string, len(req.Values))
	for field, value := range req.Values {
		if s.services.Sanitizer != nil {
			value = s.services.Sanitizer.Sanitize(value)
		}
		values[field] = value
	}

	if req.Theme == "" {
		req.Theme = skeleton.Theme
	}
	config := req.DeckOptions.buildConfig(s.services.Templates.Substitute(skeleton, values))
	config.Title = skeleton.Name
	if err := s.restrictPaths(&config); err != nil {
		s.handleRequestError(w, err)
		return
	}

	s.buildAndRespond(r.Context(), w, config, req.Exports)
}

func (o DeckOptions) buildConfig(slides []entities.SlideContent) entities.BuildConfig {
	return entities.BuildConfig{
		Theme:        o.Theme,
		BrandKit:     o.BrandKit,
		Format:       o.Format,
		TemplatePath: o.TemplatePath,
		Slides:       slides,
	}
}

// restrictPaths keeps client-supplied file references inside the uploads directory
func (s *Server) restrictPaths(config *entities.BuildConfig) error {
	if config.BrandKit.Path != "" {
		return badRequest("brand kit files are not accepted over the API; send the kit inline")
	}

	if config.TemplatePath != "" {
		path, err := s.uploadsPath(config.TemplatePath, "template_path")
		if err != nil {
			return err
		}
		config.TemplatePath = path
	}

	if kit := config.BrandKit.Kit; kit != nil && kit.LogoPath != "" {
		if !logoExtensions[strings.ToLower(filepath.Ext(kit.LogoPath))] {
			return badRequest("logo_path must be a .png, .jpg or .jpeg file")
		}
		path, err := s.uploadsPath(kit.LogoPath, "logo_path")
		if err != nil {
			return err
		}
		confined := *kit
		confined.LogoPath = path
		config.BrandKit.Kit = &confined
	}
	return nil
}

var logoExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

// uploadsPath resolves a bare file name, or a path already inside the
// uploads directory, to its location there
func (s *Server) uploadsPath(path, field string) (string, error) {
	uploads := s.services.UploadsDir
	if uploads == "" {
		uploads = pptx.DefaultUploadsDir
	}
	name := filepath.Base(path)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return "", badRequest("%s must name a file in the uploads directory", field)
	}
	if name != path && filepath.Clean(filepath.Dir(path)) != filepath.Clean(uploads) {
		return "", badRequest("%s must name a file in the uploads directory", field)
	}
	return filepath.Join(uploads, name), nil
}

// buildAndRespond runs the build, its exports and registers the result
func (s *Server) buildAndRespond(ctx context.Context, w http.ResponseWriter, config entities.BuildConfig, exports []string) {
	if err := s.checkExports(exports); err != nil {
		s.handleRequestError(w, err)
		return
	}

	result, err := s.services.Builder.Build(ctx, config, s.buildObserver())
	if err != nil {
		s.handleBuildError(w, err)
		return
	}

	record := &BuildRecord{Result: result, Exports: map[string]string{}, Created: time.Now()}
	for _, format := range exports {
		path, err := s.services.Exports.Export(ctx, result, format, "")
		if err != nil {
			s.logger.Warn("Export %s for build %s failed: %v", format, result.ID, err)
			continue
		}
		record.Exports[format] = path
	}

	s.registry.Add(record)
	s.logger.Success("Built %d slides (%s) as %s", result.SlideCount, result.ThemeName, result.ID)
	s.writeJSON(w, http.StatusCreated, deckResponse(record))
}

func (s *Server) checkExports(exports []string) error {
	if len(exports) == 0 {
		return nil
	}
	if s.services.Exports == nil {
		return badRequest("exports are not available on this server")
	}
	supported := s.services.Exports.GetSupportedFormats()
	for _, format := range exports {
		if !slices.Contains(supported, format) {
			return badRequest("unsupported export format %q (supported: %s)", format, strings.Join(supported, ", "))
		}
	}
	return nil
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	record, ok := s.registry.Get(mux.Vars(r)["id"])
	if !ok {
		s.handleError(w, errors.New("unknown build"), http.StatusNotFound)
		return
	}
	s.serveFile(w, r, record.Result.Path, pptxContentType)
}

func (s *Server) handleExportDownload(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	record, ok := s.registry.Get(vars["id"])
	if !ok {
		s.handleError(w, errors.New("unknown build"), http.StatusNotFound)
		return
	}
	path, ok := record.Exports[vars["format"]]
	if !ok {
		s.handleError(w, fmt.Errorf("build has no %s export", vars["format"]), http.StatusNotFound)
		return
	}

	contentType := "application/octet-stream"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		contentType = "image/png"
	case ".pdf":
		contentType = "application/pdf"
	}
	s.serveFile(w, r, path, contentType)
}

func (s *Server) serveFile(w http.ResponseWriter, r *http.Request, path, contentType string) {
	// #nosec G304 - path comes from the build registry, never from the request
	file, err := os.Open(path)
	if err != nil {
		s.handleError(w, err, http.StatusNotFound)
		return
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		s.handleError(w, err, http.StatusInternalServerError)
		return
	}

	name := filepath.Base(path)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeContent(w, r, name, info.ModTime(), file)
}

func deckResponse(record *BuildRecord) DeckResponse {
	result := record.Result
	exports := make(map[string]string, len(record.Exports))
	for format := range record.Exports {
		exports[format] = fmt.Sprintf("/api/decks/%s/exports/%s", result.ID, format)
	}
	return DeckResponse{
		ID:          result.ID,
		ThemeName:   result.ThemeName,
		SlideCount:  result.SlideCount,
		SlideTypes:  result.SlideTypes,
		Duration:    result.Duration,
		CreatedAt:   result.CreatedAt,
		DownloadURL: fmt.Sprintf("/api/decks/%s/download", result.ID),
		Exports:     exports,
	}
}

// decodeJSON reads a size-limited JSON body
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest("invalid JSON body: %v", err)
	}
	return nil
}

// handleBuildError maps build error types to status codes
func (s *Server) handleBuildError(w http.ResponseWriter, err error) {
	var buildErr *entities.BuildError
	if !errors.As(err, &buildErr) {
		s.handleError(w, err, http.StatusInternalServerError)
		return
	}

	status := http.StatusInternalServerError
	switch buildErr.Type {
	case entities.ErrorTypeValidation, entities.ErrorTypeTemplate:
		status = http.StatusBadRequest
	case entities.ErrorTypeConfiguration:
		status = http.StatusUnprocessableEntity
	case entities.ErrorTypeGeneration:
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		s.handleError(w, err, status)
		return
	}
	s.logger.Warn("Build rejected (status %d): %v", status, err)
	writeError(w, status, buildErr.Message)
}

// handleRequestError reports client mistakes with their own message
func (s *Server) handleRequestError(w http.ResponseWriter, err error) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		s.logger.Debug("Bad request: %v", err)
		writeError(w, http.StatusBadRequest, reqErr.message)
		return
	}
	s.handleError(w, err, http.StatusInternalServerError)
}

// handleError handles error responses with sanitized messages
func (s *Server) handleError(w http.ResponseWriter, err error, status int) {
	var message string
	switch status {
	case http.StatusBadRequest:
		message = "Invalid request"
	case http.StatusNotFound:
		message = "Resource not found"
	case http.StatusMethodNotAllowed:
		message = "Method not allowed"
	case http.StatusTooManyRequests:
		message = "Too many requests"
	case http.StatusServiceUnavailable:
		message = "Service unavailable"
	case http.StatusBadGateway:
		message = "Upstream service failed"
	case http.StatusInternalServerError:
		message = "Internal server error"
	default:
		message = "An error occurred"
	}

	// The cause stays server-side
	s.logger.Error("HTTP error (status %d): %v", status, err)
	writeError(w, status, message)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Time:    time.Now(),
	})
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to encode JSON response: %v", err)
	}
}

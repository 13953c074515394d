package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/tempsuisse/platform/internal/ai"
	"github.com/tempsuisse/platform/internal/cv"
	"github.com/tempsuisse/platform/internal/export"
	"github.com/tempsuisse/platform/internal/render"
	"github.com/tempsuisse/platform/internal/schemas"
	"github.com/tempsuisse/platform/internal/session"
)

// maxImportSize bounds the raw JSON a user can import as a document.
const maxImportSize = 1 << 20

// getSession resolves the {id} path segment to a live session. It writes a
// 404 and returns nil when the session is unknown or already evicted.
func (s *Server) getSession(w http.ResponseWriter, r *http.Request) *session.Session {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, "session not found")
		return nil
	}
	sess := s.sessions.Get(id)
	if sess == nil {
		s.errorResponse(w, http.StatusNotFound, "session not found")
		return nil
	}
	return sess
}

// SessionResponse is the body returned when a session is created.
type SessionResponse struct {
	SessionID string `json:"session_id"`
	Template  string `json:"template"`
}

// handleCreateSession starts a fresh editing session.
func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.sessions.Create()
	s.jsonResponse(w, http.StatusCreated, SessionResponse{
		SessionID: sess.ID.String(),
		Template:  string(sess.Template()),
	})
}

// handleImportSession recreates a session from previously saved document
// JSON. The payload is schema-validated before it is accepted.
func (s *Server) handleImportSession(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := schemas.ValidateDocument(raw); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	doc := cv.NewDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid document JSON: "+err.Error())
		return
	}
	doc.NormalizeImported()

	sess := s.sessions.CreateFrom(doc)
	s.jsonResponse(w, http.StatusCreated, SessionResponse{
		SessionID: sess.ID.String(),
		Template:  string(sess.Template()),
	})
}

// handleDeleteSession discards a session and everything in it.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, "session not found")
		return
	}
	s.sessions.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// handleGetDocument returns the raw document JSON for manual saving.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Snapshot())
}

// CatalogResponse lists every closed choice the editor offers.
type CatalogResponse struct {
	OptionalFields []cv.OptionalField `json:"optionalFields"`
	Months         []string           `json:"months"`
	Years          []string           `json:"years"`
	LanguageLevels []string           `json:"languageLevels"`
	Templates      []string           `json:"templates"`
}

// handleCatalog returns the option catalogs the editor renders from.
func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	templates := make([]string, 0, len(render.TemplateIDs()))
	for _, id := range render.TemplateIDs() {
		templates = append(templates, string(id))
	}
	s.jsonResponse(w, http.StatusOK, CatalogResponse{
		OptionalFields: cv.Fields(),
		Months:         cv.Months(),
		Years:          cv.Years(),
		LanguageLevels: cv.LanguageLevels(),
		Templates:      templates,
	})
}

// PersonalFieldRequest is the body of PUT .../personal.
type PersonalFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (s *Server) handleSetPersonalField(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}

	var req PersonalFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	err := sess.Update(func(doc *cv.Document) error {
		return doc.SetPersonalField(req.Field, req.Value)
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}
	if s.photos == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "photo upload is not configured")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	file, _, err := r.FormFile("photo")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "photo file is required")
		return
	}
	defer file.Close()

	url, err := s.photos.Upload(r.Context(), file, sess.ID.String())
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "photo upload failed: "+err.Error())
		return
	}

	_ = sess.Update(func(doc *cv.Document) error {
		doc.SetPhoto(url)
		return nil
	})
	s.jsonResponse(w, http.StatusOK, map[string]string{"photo": url})
}

func (s *Server) handleDeletePhoto(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}

	hadPhoto := sess.Snapshot().Photo != ""
	_ = sess.Update(func(doc *cv.Document) error {
		doc.ClearPhoto()
		return nil
	})

	// Remove the hosted asset too; the document is already cleared, so a
	// storage failure only leaves an orphan behind.
	if hadPhoto && s.photos != nil {
		if err := s.photos.Delete(r.Context(), sess.ID.String()); err != nil {
			log.Printf("Error deleting photo for session %s: %v", sess.ID, err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleOptionalField(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}

	field := r.PathValue("field")
	err := sess.Update(func(doc *cv.Document) error {
		return doc.ToggleOptionalField(field)
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	doc := sess.Snapshot()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"enabledFields":  doc.EnabledFields,
		"optionalFields": doc.OptionalFields,
	})
}

// OptionalFieldRequest is the body of PUT .../optional-fields/{field}.
type OptionalFieldRequest struct {
	Value string `json:"value"`
}

func (s *Server) handleSetOptionalField(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}

	var req OptionalFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	field := r.PathValue("field")
	err := sess.Update(func(doc *cv.Document) error {
		return doc.SetOptionalFieldValue(field, req.Value)
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SkillRequest is the body of POST .../skills.
type SkillRequest struct {
	Skill string `json:"skill"`
}

func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}

	var req SkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	err := sess.Update(func(doc *cv.Document) error {
		return doc.AddSkill(req.Skill)
	})
	if err != nil {
		// Duplicate: surface a notice the editor can show as-is.
		s.jsonResponse(w, HTTPStatus(err), map[string]string{
			"error":  err.Error(),
			"notice": "Cette compétence existe déjà",
		})
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]any{"skills": sess.Snapshot().Skills})
}

func (s *Server) handleRemoveSkill(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}

	skill := r.PathValue("skill")
	_ = sess.Update(func(doc *cv.Document) error {
		doc.RemoveSkill(skill)
		return nil
	})
	w.WriteHeader(http.StatusNoContent)
}

// handleAddEntry appends an entry to one of the five lists and returns the
// stored entry, generated ID included.
func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}

	var created any
	var decodeErr error
	add := func(doc *cv.Document) error {
		switch r.PathValue("list") {
		case "experience":
			var e cv.Experience
			if decodeErr = json.NewDecoder(r.Body).Decode(&e); decodeErr == nil {
				created = doc.AddExperience(e)
			}
		case "education":
			var e cv.Education
			if decodeErr = json.NewDecoder(r.Body).Decode(&e); decodeErr == nil {
				created = doc.AddEducation(e)
			}
		case "languages":
			var l cv.Language
			if decodeErr = json.NewDecoder(r.Body).Decode(&l); decodeErr == nil {
				created = doc.AddLanguage(l)
			}
		case "certifications":
			var c cv.Certification
			if decodeErr = json.NewDecoder(r.Body).Decode(&c); decodeErr == nil {
				created = doc.AddCertification(c)
			}
		case "projects":
			var p cv.Project
			if decodeErr = json.NewDecoder(r.Body).Decode(&p); decodeErr == nil {
				created = doc.AddProject(p)
			}
		default:
			return fmt.Errorf("unknown list %q", r.PathValue("list"))
		}
		return nil
	}

	if err := sess.Update(add); err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	if decodeErr != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+decodeErr.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, created)
}

// handleUpdateEntry shallow-merges a patch into one list entry.
func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}
	entryID, err := uuid.Parse(r.PathValue("entry_id"))
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, "entry not found")
		return
	}

	var decodeErr error
	update := func(doc *cv.Document) error {
		switch r.PathValue("list") {
		case "experience":
			var p cv.ExperiencePatch
			if decodeErr = json.NewDecoder(r.Body).Decode(&p); decodeErr != nil {
				return nil
			}
			return doc.UpdateExperience(entryID, p)
		case "education":
			var p cv.EducationPatch
			if decodeErr = json.NewDecoder(r.Body).Decode(&p); decodeErr != nil {
				return nil
			}
			return doc.UpdateEducation(entryID, p)
		case "languages":
			var p cv.LanguagePatch
			if decodeErr = json.NewDecoder(r.Body).Decode(&p); decodeErr != nil {
				return nil
			}
			return doc.UpdateLanguage(entryID, p)
		case "certifications":
			var p cv.CertificationPatch
			if decodeErr = json.NewDecoder(r.Body).Decode(&p); decodeErr != nil {
				return nil
			}
			return doc.UpdateCertification(entryID, p)
		case "projects":
			var p cv.ProjectPatch
			if decodeErr = json.NewDecoder(r.Body).Decode(&p); decodeErr != nil {
				return nil
			}
			return doc.UpdateProject(entryID, p)
		default:
			return cv.ErrEntryNotFound
		}
	}

	if err := sess.Update(update); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if decodeErr != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+decodeErr.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRemoveEntry deletes one list entry by ID.
func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}
	entryID, err := uuid.Parse(r.PathValue("entry_id"))
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, "entry not found")
		return
	}

	remove := func(doc *cv.Document) error {
		switch r.PathValue("list") {
		case "experience":
			return doc.RemoveExperience(entryID)
		case "education":
			return doc.RemoveEducation(entryID)
		case "languages":
			return doc.RemoveLanguage(entryID)
		case "certifications":
			return doc.RemoveCertification(entryID)
		case "projects":
			return doc.RemoveProject(entryID)
		default:
			return cv.ErrEntryNotFound
		}
	}

	if err := sess.Update(remove); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TemplateRequest is the body of PUT .../template.
type TemplateRequest struct {
	Template string `json:"template"`
}

func (s *Server) handleSetTemplate(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}

	var req TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	id, err := render.ParseTemplateID(req.Template)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	sess.SetTemplate(id)
	s.jsonResponse(w, http.StatusOK, map[string]string{"template": string(id)})
}

// handlePreview renders the active screen template for the live document.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}

	html, err := s.templates.Screen(sess.Template(), sess.Snapshot())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

// handleStartExport kicks off PDF generation for the active print template.
func (s *Server) handleStartExport(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}
	if s.engine == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "PDF export is not configured")
		return
	}

	doc := sess.Snapshot()
	template := sess.Template()
	filename := export.Filename(doc.PersonalInfo.FirstName, doc.PersonalInfo.LastName)

	err := sess.Export.Start(context.Background(), filename, func(ctx context.Context) ([]byte, error) {
		html, err := s.templates.Print(template, doc)
		if err != nil {
			return nil, err
		}
		return s.engine.RenderPDF(ctx, html)
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusAccepted, map[string]string{"status": string(export.StatusGenerating)})
}

// handleExportStatus reports where the export machine stands.
func (s *Server) handleExportStatus(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}

	body := map[string]string{"status": string(sess.Export.Status())}
	if err := sess.Export.Err(); err != nil {
		body["error"] = err.Error()
	}
	s.jsonResponse(w, http.StatusOK, body)
}

// handleExportDownload serves the finished artifact.
func (s *Server) handleExportDownload(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}

	artifact, filename, err := sess.Export.Artifact()
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(artifact)
}

// AITextRequest is the body shared by the assisted-text endpoints.
type AITextRequest struct {
	Text    string `json:"text"`
	Type    string `json:"type,omitempty"`
	EntryID string `json:"entry_id,omitempty"`
}

func (s *Server) requireAI(w http.ResponseWriter) bool {
	if s.ai == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "assisted text is not configured")
		return false
	}
	return true
}

func decodeAIRequest(w http.ResponseWriter, r *http.Request, s *Server) (AITextRequest, bool) {
	var req AITextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return req, false
	}
	if req.Text == "" {
		s.errorResponse(w, http.StatusBadRequest, "text is required")
		return req, false
	}
	return req, true
}

// handleGenerateProfile writes an AI-generated summary into the document.
func (s *Server) handleGenerateProfile(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil || !s.requireAI(w) {
		return
	}
	req, ok := decodeAIRequest(w, r, s)
	if !ok {
		return
	}

	if !sess.BeginAI("summary") {
		s.errorResponse(w, http.StatusConflict, "a profile generation is already running")
		return
	}
	defer sess.EndAI("summary")

	text, err := s.ai.GenerateProfile(r.Context(), req.Text)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	_ = sess.Update(func(doc *cv.Document) error {
		return doc.SetPersonalField(cv.FieldSummary, text)
	})
	s.jsonResponse(w, http.StatusOK, map[string]string{"text": text})
}

// handleTranslateDescription translates an entry description and writes it
// back to the addressed entry.
func (s *Server) handleTranslateDescription(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil || !s.requireAI(w) {
		return
	}
	req, ok := decodeAIRequest(w, r, s)
	if !ok {
		return
	}

	kind, err := ai.ParseTranslateKind(req.Type)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	entryID, err := uuid.Parse(req.EntryID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "entry_id is required")
		return
	}

	target := "description:" + entryID.String()
	if !sess.BeginAI(target) {
		s.errorResponse(w, http.StatusConflict, "a translation is already running for this entry")
		return
	}
	defer sess.EndAI(target)

	text, err := s.ai.TranslateDescription(r.Context(), kind, req.Text)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	writeErr := sess.Update(func(doc *cv.Document) error {
		switch kind {
		case ai.KindEducation:
			return doc.UpdateEducation(entryID, cv.EducationPatch{Description: &text})
		default:
			return doc.UpdateExperience(entryID, cv.ExperiencePatch{Description: &text})
		}
	})
	if writeErr != nil {
		s.errorResponse(w, HTTPStatus(writeErr), writeErr.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"text": text})
}

// handleTranslateSkill returns the translation; the caller decides whether
// to add it as a skill.
func (s *Server) handleTranslateSkill(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil || !s.requireAI(w) {
		return
	}
	req, ok := decodeAIRequest(w, r, s)
	if !ok {
		return
	}

	if !sess.BeginAI("skill") {
		s.errorResponse(w, http.StatusConflict, "a skill translation is already running")
		return
	}
	defer sess.EndAI("skill")

	text, err := s.ai.TranslateSkill(r.Context(), req.Text)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"text": text})
}

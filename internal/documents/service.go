package documents

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"contract-backend/internal/analysis"
	"contract-backend/internal/extract"
	"contract-backend/internal/report"
	"contract-backend/internal/shared/storage/object"
	"contract-backend/internal/shared/telemetry"
)

// Analyzer runs the clause analysis stage of the upload pipeline.
type Analyzer interface {
	Analyze(ctx context.Context, contractText string) (analysis.Result, error)
}

// Service contains the upload pipeline: store the original, extract its text,
// analyze it, render the report, and record the document. Nothing is persisted
// when any stage fails.
type Service struct {
	Store    object.ObjectStore
	Repo     Repo
	Analyzer Analyzer
	Renderer report.Renderer

	// Extract defaults to extract.Text when nil.
	Extract func(ctx context.Context, data []byte) (string, error)
}

// UploadResult pairs the stored document with its analysis outcome.
type UploadResult struct {
	Document Document
	Analysis analysis.Result
}

func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (UploadResult, error) {
	title := deriveTitle(fileName)
	if title == "" {
		return UploadResult{}, ErrInvalidInput
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return UploadResult{}, fmt.Errorf("read upload: %w", err)
	}

	extractText := s.Extract
	if extractText == nil {
		extractText = extract.Text
	}
	text, err := extractText(ctx, data)
	if err != nil {
		return UploadResult{}, err
	}

	result, err := s.Analyzer.Analyze(ctx, text)
	if err != nil {
		return UploadResult{}, err
	}

	reportDoc := analysis.AssembleReport(title, result)
	reportData, contentType, err := s.Renderer.Render(ctx, reportDoc)
	if err != nil {
		return UploadResult{}, err
	}

	docID := uuid.NewString()

	storageKey, _, _, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		return UploadResult{}, err
	}

	reportKey := "reports/" + docID + report.FileExtension(contentType)
	if _, err := s.Store.SaveWithKey(ctx, reportKey, contentType, bytes.NewReader(reportData)); err != nil {
		return UploadResult{}, err
	}

	doc := Document{
		ID:            docID,
		UserID:        userID,
		Title:         title,
		StorageKey:    storageKey,
		ReportKey:     reportKey,
		ExtractedText: text,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return UploadResult{}, err
	}

	telemetry.Info("document.analyzed", map[string]any{
		"document_id": doc.ID,
		"user_id":     userID,
		"findings":    result.Stats.Total,
		"report_key":  reportKey,
	})

	return UploadResult{Document: doc, Analysis: result}, nil
}

func (s *Service) Get(ctx context.Context, userID, documentID string) (Document, error) {
	if userID == "" || documentID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, documentID)
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// OpenReport streams the rendered report for a document the user owns.
func (s *Service) OpenReport(ctx context.Context, userID, documentID string) (io.ReadCloser, string, error) {
	doc, err := s.Repo.GetByID(ctx, userID, documentID)
	if err != nil {
		return nil, "", err
	}
	if doc.ReportKey == "" {
		return nil, "", ErrNotFound
	}

	rc, err := s.Store.Open(ctx, doc.ReportKey)
	if err != nil {
		return nil, "", err
	}
	contentType := "text/html; charset=utf-8"
	if strings.HasSuffix(doc.ReportKey, ".pdf") {
		contentType = "application/pdf"
	}
	return rc, contentType, nil
}

// deriveTitle keeps only PDF uploads and uses the base name without the
// extension as the document title.
func deriveTitle(fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if !strings.EqualFold(path.Ext(base), ".pdf") {
		return ""
	}
	return strings.TrimSpace(strings.TrimSuffix(base, path.Ext(base)))
}

package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/curriculos"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/extract"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/llm"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/profiles"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/metrics"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/storage/object"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/telemetry"
)

// InputModePDF sends the document itself to the model; InputModeText sends
// an extracted transcript instead.
const (
	InputModePDF  = "pdf"
	InputModeText = "text"
)

const (
	fetchAttempts   = 2
	fetchRetryDelay = 300 * time.Millisecond
)

// Service runs the résumé analysis pipeline. Results are returned to the
// caller and never stored.
type Service struct {
	Curriculos *curriculos.Service
	Profiles   *profiles.Service
	Store      object.ObjectStore
	LLM        llm.Client
	InputMode  string
	MaxBytes   int64

	group singleflight.Group
}

func NewService(curriculoSvc *curriculos.Service, profileSvc *profiles.Service, store object.ObjectStore, client llm.Client, inputMode string, maxBytes int64) *Service {
	return &Service{
		Curriculos: curriculoSvc,
		Profiles:   profileSvc,
		Store:      store,
		LLM:        client,
		InputMode:  inputMode,
		MaxBytes:   maxBytes,
	}
}

// Analyze produces insight text for the caller's résumé at filePath.
// Concurrent requests for the same document share a single model call.
func (s *Service) Analyze(ctx context.Context, userID, filePath string) (string, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", fmt.Errorf("%w: filePath is required", ErrValidation)
	}

	// The shared flight runs on a detached context so the originator
	// hanging up does not fail coalesced callers mid-analysis. Each caller
	// still honors its own cancellation while waiting.
	key := userID + "|" + filePath
	ch := s.group.DoChan(key, func() (any, error) {
		return s.analyze(context.WithoutCancel(ctx), userID, filePath)
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (s *Service) analyze(ctx context.Context, userID, filePath string) (string, error) {
	started := time.Now()
	metrics.IncAnalysisStarted()

	curriculo, err := s.Curriculos.ByPath(ctx, userID, filePath)
	if err != nil {
		metrics.IncAnalysisFailed()
		if errors.Is(err, curriculos.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	data, err := s.fetchBlob(ctx, curriculo.FilePath)
	if err != nil {
		metrics.IncAnalysisFailed()
		return "", fmt.Errorf("%w: %s", ErrRetrieval, err.Error())
	}
	if int64(len(data)) > s.MaxBytes {
		metrics.IncAnalysisFailed()
		return "", ErrTooLarge
	}

	input := llm.InsightsInput{
		ProfileContext: s.profileContext(ctx, userID),
	}
	switch s.InputMode {
	case InputModeText:
		transcript, err := extract.PDFText(data)
		if err != nil {
			metrics.IncAnalysisFailed()
			return "", fmt.Errorf("%w: %s", ErrRetrieval, err.Error())
		}
		input.Transcript = transcript
	default:
		input.PDFBase64 = encodeBase64(data)
	}

	insights, err := s.LLM.GenerateInsights(ctx, input)
	if err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Error("analysis.failed", map[string]any{
			"userId":   userID,
			"filePath": filePath,
			"error":    err.Error(),
		})
		return "", err
	}

	elapsed := time.Since(started)
	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(elapsed.Milliseconds()))
	telemetry.Info("analysis.completed", map[string]any{
		"userId":     userID,
		"filePath":   filePath,
		"durationMs": elapsed.Milliseconds(),
	})
	return insights, nil
}

// fetchBlob reads the stored document, retrying once on transient store
// failures.
func (s *Service) fetchBlob(ctx context.Context, storageKey string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		rc, err := s.Store.Open(ctx, storageKey)
		if err == nil {
			data, readErr := io.ReadAll(rc)
			rc.Close()
			if readErr == nil {
				return data, nil
			}
			err = readErr
		}
		lastErr = err
		if attempt < fetchAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(fetchRetryDelay):
			}
		}
	}
	return nil, lastErr
}

// profileContext renders the user block fed to the model. A missing profile
// is not an error: the analysis simply runs without personal context.
func (s *Service) profileContext(ctx context.Context, userID string) string {
	profile, err := s.Profiles.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, profiles.ErrNotFound) {
			telemetry.Error("analysis.profile_fetch_failed", map[string]any{
				"userId": userID,
				"error":  err.Error(),
			})
		}
		return ""
	}

	var b strings.Builder
	b.WriteString("Informações do usuário:\n")
	writeField(&b, "Nome", profile.Nome)
	if profile.Idade != nil {
		writeField(&b, "Idade", fmt.Sprintf("%d anos", *profile.Idade))
	}
	writeField(&b, "Bairro", profile.Bairro)
	writeField(&b, "Escolaridade", profile.Escolaridade)
	writeField(&b, "Experiência", profile.Experiencia)
	writeField(&b, "Interesses", strings.Join(profile.Interesses, ", "))
	writeField(&b, "Horários disponíveis", profile.HorariosDisponiveis)
	if profile.TemInternet != nil {
		writeField(&b, "Tem internet", simNao(*profile.TemInternet))
	}
	if profile.TemTransporte != nil {
		writeField(&b, "Tem transporte", simNao(*profile.TemTransporte))
	}
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", label, value)
}

func simNao(v bool) string {
	if v {
		return "Sim"
	}
	return "Não"
}

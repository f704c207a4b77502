package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/m-mizutani/depdiff/pkg/domain/interfaces"
	"github.com/m-mizutani/depdiff/pkg/domain/model"
	"github.com/m-mizutani/depdiff/pkg/report"
)

//go:embed prompts/summary_system.md
var summarySystemPrompt string

//go:embed prompts/summary_user.md
var summaryUserTemplate string

const defaultMaxPatchBytes = 64 * 1024

type summarizer struct {
	llmClient     gollem.LLMClient
	userTemplate  *template.Template
	maxPatchBytes int
}

// SummarizerOption is a functional option for the summarizer
type SummarizerOption func(*summarizer)

// WithMaxPatchBytes caps the size of the diff sent to the LLM
func WithMaxPatchBytes(n int) SummarizerOption {
	return func(s *summarizer) {
		if n > 0 {
			s.maxPatchBytes = n
		}
	}
}

// NewSummarizer creates a Summarizer backed by an LLM
func NewSummarizer(llmClient gollem.LLMClient, opts ...SummarizerOption) (interfaces.Summarizer, error) {
	tmpl, err := template.New("summary").Parse(summaryUserTemplate)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse summary prompt template")
	}

	s := &summarizer{
		llmClient:     llmClient,
		userTemplate:  tmpl,
		maxPatchBytes: defaultMaxPatchBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *summarizer) Summarize(ctx context.Context, result *model.PackageReport) (string, error) {
	logger := ctxlog.From(ctx)

	var patch bytes.Buffer
	if err := report.WriteFileDiffs(&patch, result.Files); err != nil {
		return "", goerr.Wrap(err, "failed to render diff", goerr.V("package", result.Package.Name))
	}

	text := patch.String()
	truncated := len(text) > s.maxPatchBytes
	if truncated {
		cut := s.maxPatchBytes
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	var buf bytes.Buffer
	if err := s.userTemplate.Execute(&buf, map[string]any{
		"Name":           result.Package.Name,
		"CurrentVersion": result.Package.CurrentVersion,
		"LatestVersion":  result.Package.LatestVersion,
		"Homepage":       result.Package.Homepage,
		"FileCount":      len(result.Files),
		"Truncated":      truncated,
		"Patch":          text,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to execute summary prompt template")
	}
	userPrompt := buf.String()

	logger.Debug("Calling LLM for diff summary",
		"package", result.Package.Name,
		"prompt_length", len(userPrompt),
		"truncated", truncated,
	)

	session, err := s.llmClient.NewSession(ctx, gollem.WithSessionSystemPrompt(summarySystemPrompt))
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(userPrompt))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate LLM content", goerr.V("package", result.Package.Name))
	}
	if len(resp.Texts) == 0 {
		return "", goerr.New("no response from LLM", goerr.V("package", result.Package.Name))
	}

	return strings.TrimSpace(strings.Join(resp.Texts, "")), nil
}

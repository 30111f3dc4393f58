package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/models"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/providers/llm"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/providers/retry"
)

const defaultAnalysisTimeout = 120 * time.Second

// AnalysisOptions configura o orquestrador de análise
type AnalysisOptions struct {
	Policy        retry.Policy
	Timeout       time.Duration
	Supplementary bool
}

// AnalysisService gera a análise de SEO com o provedor primário e recorre
// ao secundário quando o primário esgota créditos.
type AnalysisService struct {
	primary       llm.Provider
	fallback      llm.Provider
	policy        retry.Policy
	timeout       time.Duration
	supplementary bool
}

// NewAnalysisService cria o orquestrador. fallback pode ser nil.
func NewAnalysisService(primary, fallback llm.Provider, opts AnalysisOptions) *AnalysisService {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultAnalysisTimeout
	}
	return &AnalysisService{
		primary:       primary,
		fallback:      fallback,
		policy:        opts.Policy,
		timeout:       opts.Timeout,
		supplementary: opts.Supplementary,
	}
}

// Enabled indica se há ao menos um provedor configurado
func (s *AnalysisService) Enabled() bool {
	return s.primary != nil || s.fallback != nil
}

// modelCache guarda o modelo escolhido por provedor durante uma análise
type modelCache map[string]string

func (m modelCache) modelFor(ctx context.Context, p llm.Provider) string {
	if model, ok := m[p.Name()]; ok {
		return model
	}
	model := llm.SelectModel(ctx, p)
	m[p.Name()] = model
	return model
}

// Analyze gera a análise para a requisição já normalizada
func (s *AnalysisService) Analyze(ctx context.Context, req *models.AnalysisRequest) (*models.AnalysisResult, error) {
	ctx, span := otel.Tracer("analysis").Start(ctx, "Analyze")
	defer span.End()

	primary, fallback := s.primary, s.fallback
	if primary == nil {
		primary, fallback = fallback, nil
	}
	if primary == nil {
		err := fmt.Errorf("análise: %w", models.ErrProviderDisabled)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	span.SetAttributes(
		attribute.String("analysis.url", req.NormalizedURL()),
		attribute.String("analysis.keyword", req.Keyword),
		attribute.String("analysis.primary", primary.Name()),
	)

	selected := modelCache{}
	mainPrompt := BuildMainPrompt(req.NormalizedURL(), req.Keyword)

	active := primary
	main, err := s.generate(ctx, active, selected.modelFor(ctx, active), mainPrompt, validateAnalysis)
	if err != nil && llm.IsQuotaError(err) && fallback != nil {
		log.Printf("[Analysis] %s sem créditos, usando %s para a análise completa", active.Name(), fallback.Name())
		active = fallback
		main, err = s.generate(ctx, active, selected.modelFor(ctx, active), mainPrompt, validateAnalysis)
	}
	if err != nil {
		err = s.wrapDeadline(ctx, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	result := main.Text
	if s.supplementary {
		secondary := active
		if active == primary && fallback != nil {
			secondary = fallback
		}

		extra, err := s.generate(ctx, secondary, selected.modelFor(ctx, secondary), BuildSupplementaryPrompt(req.NormalizedURL(), req.Keyword), validateNonEmpty)
		if err != nil {
			err = fmt.Errorf("insights complementares: %w", s.wrapDeadline(ctx, err))
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		result = CombineAnalysis(main.Text, extra.Text)
	}

	span.SetAttributes(
		attribute.String("analysis.provider", main.Provider),
		attribute.String("analysis.model", main.Model),
		attribute.Int("analysis.length", len(result)),
	)
	span.SetStatus(codes.Ok, "")

	return &models.AnalysisResult{
		Result:   result,
		Provider: main.Provider,
		Model:    main.Model,
	}, nil
}

// generate chama o provedor com retry. Erros de cota encerram as tentativas.
func (s *AnalysisService) generate(ctx context.Context, p llm.Provider, model string, prompt llm.Prompt, validate func(string) error) (llm.Completion, error) {
	name := p.Name() + "/" + model

	return retry.Do[llm.Completion](ctx, s.policy, name, func(ctx context.Context, attempt int) (llm.Completion, error) {
		completion, err := p.Generate(ctx, model, prompt)
		if err != nil {
			if llm.IsQuotaError(err) {
				return completion, retry.Permanent(err)
			}
			return completion, err
		}

		if err := validate(completion.Text); err != nil {
			return completion, err
		}

		if completion.Provider == "" {
			completion.Provider = p.Name()
		}
		if completion.Model == "" {
			completion.Model = model
		}
		log.Printf("[Analysis] %s respondeu na tentativa %d (%d caracteres)", name, attempt, len(completion.Text))
		return completion, nil
	})
}

func validateAnalysis(text string) error {
	if ok, stats := HasMinimumContent(text); !ok {
		return &ContentValidationError{Stats: stats}
	}
	return nil
}

func validateNonEmpty(text string) error {
	if strings.TrimSpace(text) == "" {
		return &ContentValidationError{Stats: AnalyzeContent(text)}
	}
	return nil
}

func (s *AnalysisService) wrapDeadline(ctx context.Context, err error) error {
	if errors.Is(err, models.ErrTimeout) {
		return err
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("análise: %w: %w", models.ErrTimeout, err)
	}
	return err
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/typesense/typesense-go/v3/typesense"
	api "github.com/typesense/typesense-go/v3/typesense/api"
	"github.com/typesense/typesense-go/v3/typesense/api/pointer"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/models"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/utils"
)

const (
	DefaultReportsCollection = "seo_reports"
	reportSummaryLength      = 1000
	reportArchiveTimeout     = 10 * time.Second
	maxReportsPerPage        = 50
)

// ReportService arquiva as análises geradas e permite buscá-las
type ReportService struct {
	client     *typesense.Client
	collection string
	ensured    atomic.Bool
	pending    sync.WaitGroup
	now        func() time.Time
}

// NewReportService cria o serviço. Com client nil o arquivo fica desabilitado.
func NewReportService(client *typesense.Client, collection string) *ReportService {
	if collection == "" {
		collection = DefaultReportsCollection
	}
	return &ReportService{client: client, collection: collection, now: time.Now}
}

func (s *ReportService) Enabled() bool {
	return s != nil && s.client != nil
}

// BuildDocument converte uma análise no documento arquivado
func (s *ReportService) BuildDocument(req *models.AnalysisRequest, result *models.AnalysisResult) models.ReportDocument {
	domain := req.Domain()
	return models.ReportDocument{
		ID:        utils.GenerateSlug(strings.TrimSpace(domain+" "+req.Keyword), uuid.New().String()),
		Domain:    domain,
		URL:       req.NormalizedURL(),
		Keyword:   req.Keyword,
		Summary:   utils.SummarizeMarkdown(result.Result, reportSummaryLength),
		Provider:  result.Provider,
		Model:     result.Model,
		CreatedAt: s.now().Unix(),
	}
}

// Archive grava a análise no Typesense
func (s *ReportService) Archive(ctx context.Context, req *models.AnalysisRequest, result *models.AnalysisResult) (*models.ReportDocument, error) {
	if !s.Enabled() {
		return nil, models.ErrReportsDisabled
	}

	if err := s.ensureCollectionExists(ctx); err != nil {
		return nil, err
	}

	doc := s.BuildDocument(req, result)
	if _, err := s.client.Collection(s.collection).Documents().Upsert(ctx, doc, &api.DocumentIndexParameters{}); err != nil {
		return nil, fmt.Errorf("erro ao arquivar relatório %s: %w", doc.ID, err)
	}

	log.Printf("[Reports] relatório %s arquivado", doc.ID)
	return &doc, nil
}

// ArchiveAsync arquiva em background sem bloquear a resposta
func (s *ReportService) ArchiveAsync(ctx context.Context, req *models.AnalysisRequest, result *models.AnalysisResult) {
	if !s.Enabled() {
		return
	}

	reqCopy, resultCopy := *req, *result
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), reportArchiveTimeout)
		defer cancel()

		if _, err := s.Archive(ctx, &reqCopy, &resultCopy); err != nil {
			log.Printf("[Reports] erro ao arquivar análise de %s: %v", reqCopy.NormalizedURL(), err)
		}
	}()
}

// Wait aguarda os arquivamentos em andamento
func (s *ReportService) Wait() {
	if s == nil {
		return
	}
	s.pending.Wait()
}

// Search busca relatórios por domínio, palavra-chave ou conteúdo
func (s *ReportService) Search(ctx context.Context, query string, page, perPage int) (*models.ReportSearchResponse, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > maxReportsPerPage {
		perPage = 10
	}

	response := &models.ReportSearchResponse{
		Enabled: s.Enabled(),
		Page:    page,
		PerPage: perPage,
		Reports: []models.ReportDocument{},
	}
	if !s.Enabled() {
		return response, nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		query = "*"
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("domain,keyword,summary"),
		SortBy:  pointer.String("created_at:desc"),
		Page:    pointer.Int(page),
		PerPage: pointer.Int(perPage),
	}

	result, err := s.client.Collection(s.collection).Documents().Search(ctx, searchParams)
	if err != nil {
		if isNotFound(err) {
			return response, nil
		}
		return nil, fmt.Errorf("erro ao buscar relatórios: %w", err)
	}

	resultBytes, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar resultado: %w", err)
	}

	var searchResult struct {
		Found int `json:"found"`
		Hits  []struct {
			Document models.ReportDocument `json:"document"`
		} `json:"hits"`
	}
	if err := json.Unmarshal(resultBytes, &searchResult); err != nil {
		return nil, fmt.Errorf("erro ao deserializar resultado: %w", err)
	}

	response.Found = searchResult.Found
	for _, hit := range searchResult.Hits {
		response.Reports = append(response.Reports, hit.Document)
	}
	return response, nil
}

// ensureCollectionExists cria a collection na primeira gravação
func (s *ReportService) ensureCollectionExists(ctx context.Context) error {
	if s.ensured.Load() {
		return nil
	}

	_, err := s.client.Collection(s.collection).Retrieve(ctx)
	if err == nil {
		s.ensured.Store(true)
		return nil
	}
	if !isNotFound(err) {
		return fmt.Errorf("erro ao verificar collection %s: %w", s.collection, err)
	}

	log.Printf("[Reports] collection %s não existe, criando...", s.collection)

	schema := &api.CollectionSchema{
		Name: s.collection,
		Fields: []api.Field{
			{Name: "domain", Type: "string", Facet: pointer.True()},
			{Name: "url", Type: "string"},
			{Name: "keyword", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "summary", Type: "string"},
			{Name: "provider", Type: "string", Facet: pointer.True()},
			{Name: "model", Type: "string", Optional: pointer.True()},
			{Name: "created_at", Type: "int64", Sort: pointer.True()},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	if _, err := s.client.Collections().Create(ctx, schema); err != nil {
		// outra instância pode ter criado a collection ao mesmo tempo
		if !strings.Contains(err.Error(), "409") {
			return fmt.Errorf("erro ao criar collection %s: %w", s.collection, err)
		}
	}

	s.ensured.Store(true)
	return nil
}

func isNotFound(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "404") || strings.Contains(msg, "Not found") || strings.Contains(msg, "Not Found")
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"lawwatch-backend/config"
	"lawwatch-backend/llm"
	"lawwatch-backend/models"
	"lawwatch-backend/repository"
	"lawwatch-backend/scraper"
	"lawwatch-backend/service"
	"lawwatch-backend/storage"

	"github.com/fatih/color"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

var htmlTag = regexp.MustCompile(`<.*?>`)

func main() {
	today := time.Now().Format("2006-01-02")
	agencyName := flag.String("agency", "", "Agency name (FR slug or short name)")
	startDate := flag.String("date", today, "Start date (YYYY-MM-DD)")
	llmName := flag.String("llm", "gemini", "Completion provider (gemini or openai)")
	news := flag.Bool("news", false, "Write a news overview across the batch")
	agencyFile := flag.String("agencies", "", "Optional YAML file overriding the agency registry")
	flag.Parse()

	if *agencyName == "" {
		log.Fatal("Missing required -agency flag")
	}
	if _, err := time.Parse("2006-01-02", *startDate); err != nil {
		log.Fatalf("Date must be in YYYY-MM-DD format, got: %s", *startDate)
	}

	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	ctx := context.Background()

	registry, err := config.LoadAgencies(*agencyFile)
	if err != nil {
		log.Fatal("Failed to load agency registry: ", err)
	}
	agency, err := registry.Lookup(*agencyName)
	if err != nil {
		log.Printf("No settings found for agency %q. Available agencies:", *agencyName)
		for _, a := range registry.Agencies() {
			log.Printf("  - %s (%s)", a.ShortName, a.Name)
		}
		os.Exit(1)
	}
	log.Printf("Processing data for %s from %s on", agency.Name, *startDate)

	db := initPostgres()
	if db != nil {
		defer db.Close()
	}
	nodeRepo := repository.NewNodeRepository(db)

	settings := config.LoadLLMSettings()
	provider, err := llm.New(ctx, *llmName, settings)
	if err != nil {
		log.Fatal("Failed to initialize provider: ", err)
	}
	if g, ok := provider.(*llm.GeminiProvider); ok {
		defer g.Close()
	}
	analysisService := service.NewAnalysisService(
		service.WithProvider(provider),
		service.WithMaxRetries(settings.ForProvider(provider.Name()).MaxRetries),
	)

	store, err := storage.NewStoreFromEnv()
	if err != nil {
		log.Fatal("Failed to initialize storage: ", err)
	}
	exportService := service.NewExportService(store)

	frClient := scraper.NewFRClient()

	results, err := frClient.FetchDocuments(ctx, agency.DocumentsURL(*startDate))
	if err != nil {
		log.Fatal("Failed to fetch FR data: ", err)
	}
	if len(results) == 0 {
		log.Printf("No results to process for %s on %s", agency.Name, *startDate)
		return
	}
	log.Printf("Found %d results", len(results))

	instructions := service.SummaryInstructions(agency.Name)

	var documents []models.RuleDocument
	for i, result := range results {
		doc := buildRuleDocument(result)

		if nodeRepo.TitleExists(ctx, doc.Title) {
			log.Printf("Warning: skipping %s as it already exists", doc.Title)
			continue
		}
		log.Printf("Processing document %d/%d: %s", i+1, len(results), doc.DocumentNumber)

		articleText, err := frClient.FetchArticleText(ctx, doc.BodyHTMLURL)
		if err != nil {
			log.Printf("Warning: failed to fetch article for %s: %v", doc.DocumentNumber, err)
			documents = append(documents, doc)
			continue
		}
		doc.ArticleText = articleText

		summaries, err := analysisService.GenerateSummaries(ctx, instructions, articleText)
		if err != nil {
			log.Printf("Warning: failed to generate summaries for %s: %v", doc.DocumentNumber, err)
			documents = append(documents, doc)
			continue
		}

		doc.HighSchoolSummary = summaries.HighSchoolSummary
		doc.LobbyistSummary = summaries.LobbyistSummary
		doc.ActivistSummary = summaries.ActivistSummary
		doc.AITags = "AI-Generated Text"
		doc.LLM = provider.Model()
		doc.Time = models.ExportTimestamp(time.Now())
		log.Printf("Generated summaries successfully")

		documents = append(documents, doc)
	}

	if err := exportService.Export(ctx, service.ExportFileFR, documents); err != nil {
		log.Fatal("Failed to export rule documents: ", err)
	}
	color.Green("Exported %d rule documents to %s", len(documents), service.ExportFileFR)

	if *news && len(documents) > 0 {
		if err := writeOverview(ctx, analysisService, exportService, agency, documents); err != nil {
			log.Fatal("Failed to write news overview: ", err)
		}
		color.Green("News overview saved to %s", service.ExportFileFRNews)
	}
}

// buildRuleDocument maps one API result onto the export shape. The title
// gains the citation prefix used for duplicate checks, and the abstract
// gains the AI-content notice.
func buildRuleDocument(result scraper.FRDocument) models.RuleDocument {
	citation := strings.TrimSpace(result.Citation)
	title := strings.TrimSpace(result.Title)
	return models.RuleDocument{
		Title:           citation + " - " + title,
		Type:            result.Type,
		Abstract:        fmt.Sprintf(`<p>%s</p><p class="infobox">This article contains AI-generated summaries.</p>`, result.Abstract),
		Citation:        citation,
		PublicationDate: result.PublicationDate,
		EffectiveOn:     result.EffectiveOn,
		DocumentNumber:  result.DocumentNumber,
		PDFURL:          result.PDFURL,
		BodyHTMLURL:     result.BodyHTMLURL,
		AgencyNames:     strings.Join(result.AgencyNames, ","),
	}
}

// writeOverview generates the news-style review across the batch and
// exports it with a title spanning the batch's publication dates.
func writeOverview(ctx context.Context, analysisService *service.AnalysisService, exportService *service.ExportService, agency config.Agency, documents []models.RuleDocument) error {
	var request strings.Builder
	for _, doc := range documents {
		fmt.Fprintf(&request, "Title: %s\nDate: %s\nFederal Register Abstract: %s\nActivist Summary: %s\n\n",
			doc.Title, doc.PublicationDate, doc.Abstract, doc.ActivistSummary)
	}
	articles := htmlTag.ReplaceAllString(request.String(), "")

	summary, err := analysisService.GenerateOverview(ctx, service.OverviewInstructions(len(documents)), articles)
	if err != nil {
		return err
	}

	oldest, newest := publicationDateRange(documents)
	title := fmt.Sprintf("%s Regulatory Review from %s", agency.Name, oldest)
	if oldest != newest {
		title = fmt.Sprintf("%s Regulatory Review from %s to %s", agency.Name, oldest, newest)
	}

	overview := models.OverviewDocument{
		Title:   title,
		AITags:  "AI-Generated Text",
		Summary: addParagraphTags(summary),
	}
	return exportService.Export(ctx, service.ExportFileFRNews, overview)
}

// publicationDateRange returns the oldest and newest publication dates in
// the batch, formatted like "February 28, 2025". Unparseable dates are
// skipped.
func publicationDateRange(documents []models.RuleDocument) (string, string) {
	var oldest, newest time.Time
	for _, doc := range documents {
		date, err := time.Parse("2006-01-02", doc.PublicationDate)
		if err != nil {
			continue
		}
		if oldest.IsZero() || date.Before(oldest) {
			oldest = date
		}
		if newest.IsZero() || date.After(newest) {
			newest = date
		}
	}
	if oldest.IsZero() {
		return "", ""
	}
	return oldest.Format("January 2, 2006"), newest.Format("January 2, 2006")
}

// addParagraphTags wraps untagged text in <p> tags, turning blank-line
// breaks into paragraph boundaries. Text that already carries tags passes
// through unchanged.
func addParagraphTags(text string) string {
	if strings.Contains(text, "<p>") || strings.Contains(text, "</p>") {
		return text
	}
	return "<p>" + strings.ReplaceAll(text, "\n\n", "</p><p>") + "</p>"
}

func initPostgres() *pgxpool.Pool {
	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		log.Printf("Warning: DATABASE_URL not set, duplicate checks disabled")
		return nil
	}

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		log.Printf("Warning: failed to connect to Postgres: %v", err)
		return nil
	}
	if err := pool.Ping(context.Background()); err != nil {
		log.Printf("Warning: failed to ping Postgres: %v", err)
		pool.Close()
		return nil
	}
	return pool
}

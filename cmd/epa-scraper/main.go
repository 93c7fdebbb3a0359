package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
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
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	llmName := flag.String("llm", "gemini", "Completion provider (gemini or openai)")
	numRecs := flag.Int("numrecs", 1, "Number of records to process")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	ctx := context.Background()

	db := initPostgres()
	if db != nil {
		defer db.Close()
	}
	topicRepo := repository.NewTopicRepository(db)
	nodeRepo := repository.NewNodeRepository(db)

	taxonomy := service.NewTaxonomySnapshot(topicRepo.FetchValidTopics(ctx))
	validator := service.NewValidator(taxonomy)

	settings := config.LoadLLMSettings()
	provider, err := llm.New(ctx, *llmName, settings)
	if err != nil {
		log.Fatal("Failed to initialize provider: ", err)
	}
	if g, ok := provider.(*llm.GeminiProvider); ok {
		defer g.Close()
	}
	// OpenAI cannot take very long documents; keep Gemini on hand for those.
	fallback := provider
	if provider.Name() == "openai" {
		fallback, err = llm.New(ctx, "gemini", settings)
		if err != nil {
			log.Fatal("Failed to initialize fallback provider: ", err)
		}
		if g, ok := fallback.(*llm.GeminiProvider); ok {
			defer g.Close()
		}
	}

	store, err := storage.NewStoreFromEnv()
	if err != nil {
		log.Fatal("Failed to initialize storage: ", err)
	}
	exportService := service.NewExportService(store)

	epaScraper := scraper.NewEPAScraper()

	log.Printf("Starting EPA case scraper with provider %s, processing %d records", provider.Name(), *numRecs)

	rows, err := epaScraper.FetchCases(ctx, *numRecs)
	if err != nil {
		log.Fatal("Failed to scrape enforcement cases: ", err)
	}

	var (
		documents []models.CaseDocument
		skipped   int
		failed    int
	)

	for _, row := range rows {
		if nodeRepo.TitleExists(ctx, row.Title) {
			log.Printf("Warning: skipping %s as it already exists", row.Title)
			skipped++
			continue
		}

		doc := models.CaseDocument{
			ID:        uuid.New(),
			Title:     row.Title,
			Date:      row.Date,
			SourceURL: row.SourceURL,
		}

		var text string
		if row.SourceURL != "" {
			content, err := epaScraper.FetchCaseContent(ctx, row.SourceURL)
			if err != nil {
				log.Printf("Warning: failed to fetch content for %s: %v", row.Title, err)
				failed++
				continue
			}
			doc.PDFLinks = strings.Join(content.PDFLinks, ",")
			text = content.RawText()
			doc.RawText = text
		}

		if doc.Title == "" || text == "" {
			log.Printf("Warning: skipping %s due to empty text", row.Title)
			skipped++
			continue
		}

		log.Printf("Analyzing: %s (%d characters)", doc.Title, len(text))

		analysisProvider := provider
		if !llm.SupportsTextLength(provider.Name(), len(text)) {
			log.Printf("Text too long for %s, using %s", provider.Name(), fallback.Name())
			analysisProvider = fallback
		}
		analysisService := service.NewAnalysisService(
			service.WithProvider(analysisProvider),
			service.WithValidator(validator),
			service.WithMaxRetries(settings.ForProvider(analysisProvider.Name()).MaxRetries),
		)

		instructions := service.AnalysisInstructions(service.ParagraphCount(len(text)), taxonomy.Topics())
		analysis, err := analysisService.Analyze(ctx, instructions, text)
		if err != nil {
			log.Printf("Warning: analysis failed for %s: %v", doc.Title, err)
			failed++
			continue
		}

		attachAnalysis(&doc, analysis, analysisProvider.Model())
		documents = append(documents, doc)
		log.Printf("Added legal analysis data for %s", doc.Title)
	}

	if err := exportService.Export(ctx, service.ExportFileEPA, documents); err != nil {
		log.Fatal("Failed to export cases: ", err)
	}

	color.Green("Exported %d cases to %s", len(documents), service.ExportFileEPA)
	if skipped > 0 {
		color.Yellow("Skipped %d cases (already published or empty)", skipped)
	}
	if failed > 0 {
		color.Red("Failed to process %d cases", failed)
	}
}

// attachAnalysis folds the validated analysis into the export document.
func attachAnalysis(doc *models.CaseDocument, analysis *models.LegalAnalysis, model string) {
	doc.Summary = fmt.Sprintf(`<p class="infobox">This article contains AI-generated summaries.</p><div>%s</div>`, analysis.Summary)
	doc.AITags = []string{"AI-Generated Text"}

	doc.Penalty = analysis.Penalty
	doc.Topics = analysis.Topics

	if analysis.Citations != nil {
		deduplicated := service.DeduplicateCitations(analysis.Citations)
		doc.Laws = &models.LawSet{FederalLaw: deduplicated}
		doc.FlattenedCitations = service.FlattenCitations(deduplicated)
	} else {
		doc.FlattenedCitations = ""
	}

	if analysis.Penalty != nil || analysis.Citations != nil {
		doc.AITags = append(doc.AITags, "AI-Generated Entity Extraction")
	}

	doc.LLM = model
	doc.Time = models.ExportTimestamp(time.Now())
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

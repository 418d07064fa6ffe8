package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"go-jobtrends-automation/internal/chain"
	"go-jobtrends-automation/internal/config"
	"go-jobtrends-automation/internal/crawl"
	"go-jobtrends-automation/internal/pipeline"
	"go-jobtrends-automation/internal/rank"
	"go-jobtrends-automation/internal/report"
	"go-jobtrends-automation/internal/source"
	"go-jobtrends-automation/internal/source/jsearch"
	"go-jobtrends-automation/internal/taxonomy"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config.yaml")
	flag.Parse()

	//load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	log.Printf("🔧 Config loaded. Query: %q, sources: %v, policy: %s", cfg.Query, cfg.Sources, cfg.Policy)

	//load taxonomy before anything touches the network: a malformed
	//taxonomy means there is nothing meaningful to match against
	keywords, err := taxonomy.LoadFile(cfg.TaxonomyPath)
	if err != nil {
		log.Fatalf("❌ Failed to load taxonomy: %v", err)
	}
	log.Printf("🔧 Loaded %d keywords from %s", len(keywords), cfg.TaxonomyPath)

	//run-level timeout + Ctrl-C cancellation
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	log.Println("🚀 Starting tech-trends scan...")

	//open the browsing session only when a source needs it
	var session *crawl.Session
	if containsSource(cfg.Sources, "browser") {
		delayMin, delayMax := cfg.Delay()
		session, err = crawl.Open(ctx, crawl.Options{
			Headless: !cfg.ShowBrowser,
			DelayMin: delayMin,
			DelayMax: delayMax,
		})
		if err != nil {
			log.Fatalf("❌ Failed to open browser session: %v", err)
		}
		defer session.Close()
		log.Println("✅ Browser session opened")
	}

	ch, err := buildChain(cfg, session)
	if err != nil {
		log.Fatalf("❌ Failed to build source chain: %v", err)
	}

	q := source.Query{
		Title:    cfg.Query,
		Location: cfg.Location,
		Limit:    cfg.Limit,
		Pages:    cfg.Pages,
	}

	result, err := pipeline.Run(ctx, ch, keywords, q)
	if err != nil {
		var chainErr *chain.Error
		if errors.As(err, &chainErr) {
			for _, f := range chainErr.Failures {
				log.Printf("   💥 %s: %v", f.Adapter, f.Err)
			}
		}
		notifyError(cfg, err)
		log.Fatalf("❌ Scan failed: %v", err)
	}

	if len(result.Table) == 0 {
		log.Println("ℹ️ No job listings found or no technologies matched.")
	} else {
		log.Printf("📊 Top technology: %s (%d listings)", result.Table[0].Keyword, result.Table[0].Count)
	}

	//save results
	if err := writeCSV(cfg.OutputPath, result.Table); err != nil {
		log.Fatalf("❌ Failed to write %s: %v", cfg.OutputPath, err)
	}
	log.Printf("📁 Results saved to %s", cfg.OutputPath)

	//informational salary estimate; never fails the run
	if containsSource(cfg.Sources, "jsearch") {
		fetchSalary(ctx, cfg)
	}

	//optional Telegram report
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		reporter, err := report.NewTelegramReporter(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("⚠️ Failed to init Telegram reporter: %v", err)
		} else if err := reporter.SendTable(cfg.Query, result.Table, result.Listings); err != nil {
			log.Printf("⚠️ Failed to send Telegram report: %v", err)
		} else {
			log.Println("🤖 Report sent to Telegram")
		}
	}

	log.Println("🏁 Scan finished.")
}

func buildChain(cfg *config.Config, session *crawl.Session) (*chain.Chain, error) {
	if session != nil {
		return pipeline.BuildChain(cfg, session)
	}
	return pipeline.BuildChain(cfg, nil)
}

func containsSource(sources []string, name string) bool {
	for _, s := range sources {
		if s == name {
			return true
		}
	}
	return false
}

func writeCSV(path string, table []rank.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := rank.WriteCSV(f, table); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fetchSalary(ctx context.Context, cfg *config.Config) {
	js := jsearch.New(jsearch.Config{
		BaseURL: cfg.JSearchBaseURL,
		APIKey:  cfg.JSearchAPIKey,
	})
	est, err := js.EstimatedSalary(ctx, "", "")
	if err != nil {
		log.Printf("ℹ️ Could not fetch salary estimate: %v", err)
		return
	}
	log.Printf("💰 Estimated salary: $%.0f - $%.0f per year", est.Min, est.Max)
}

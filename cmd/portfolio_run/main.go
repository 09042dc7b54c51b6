package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/sjperalta/fintera-ledger/internal/config"
	"github.com/sjperalta/fintera-ledger/internal/database"
	"github.com/sjperalta/fintera-ledger/internal/jobs"
	"github.com/sjperalta/fintera-ledger/internal/lending"
	"github.com/sjperalta/fintera-ledger/internal/repository"
	"github.com/sjperalta/fintera-ledger/internal/services"
	"github.com/sjperalta/fintera-ledger/internal/storage"
	"github.com/sjperalta/fintera-ledger/pkg/logger"
)

type tenantResult struct {
	TenantID    uint                          `json:"tenant_id"`
	Portfolio   *services.PortfolioRunStats   `json:"portfolio"`
	Collections *services.CollectionsRunStats `json:"collections,omitempty"`
	Defaults    *services.DefaultReport       `json:"defaults,omitempty"`
	Ageing      *services.AgeingReport        `json:"ageing,omitempty"`
	Archived    string                        `json:"archived,omitempty"`
	Error       string                        `json:"error,omitempty"`
}

func main() {
	tenantID := flag.Uint("tenant", 0, "tenant to process (0 = every active tenant)")
	withCollections := flag.Bool("collections", false, "refresh collection cases after the engine run")
	withReport := flag.Bool("report", false, "include the defaults and ageing reports")
	format := flag.String("export", "", "archive the ageing report as xlsx or pdf")
	archiveDir := flag.String("archive", "./reports", "directory for archived reports")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Setup(cfg.Environment)

	if *format != "" && *format != "xlsx" && *format != "pdf" {
		log.Fatalf("unsupported export format %q", *format)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	repos := repository.NewRepositories(db)
	worker := jobs.NewWorker(cfg.WorkerCount)
	svcs := services.NewServices(repos, worker, cfg, lending.SystemClock{})

	var archive *storage.LocalStorage
	if *format != "" {
		if archive, err = storage.NewLocalStorage(*archiveDir); err != nil {
			log.Fatalf("Failed to open report archive: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tenants := []uint{*tenantID}
	if *tenantID == 0 {
		active, err := repos.Tenant.FindActive(ctx)
		if err != nil {
			log.Fatalf("Failed to list tenants: %v", err)
		}
		tenants = tenants[:0]
		for _, t := range active {
			tenants = append(tenants, t.ID)
		}
	}

	results := make([]tenantResult, 0, len(tenants))
	failed := false
	for _, id := range tenants {
		res := runTenant(ctx, svcs, archive, id, *withCollections, *withReport, *format)
		if res.Error != "" {
			failed = true
		}
		results = append(results, res)
	}

	// Stops the pool and waits for in-flight notification jobs
	worker.Shutdown()

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode results: %v", err)
	}
	fmt.Println(string(out))

	if failed {
		os.Exit(1)
	}
}

func runTenant(ctx context.Context, svcs *services.Services, archive *storage.LocalStorage, tenantID uint, withCollections, withReport bool, format string) tenantResult {
	res := tenantResult{TenantID: tenantID}

	stats, err := svcs.Portfolio.ProcessTenantPortfolio(ctx, tenantID)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Portfolio = stats

	if withCollections {
		if res.Collections, err = svcs.Collections.RefreshCollections(ctx, tenantID); err != nil {
			res.Error = err.Error()
			return res
		}
	}

	if withReport {
		if res.Defaults, err = svcs.Collections.DetectDefaults(ctx, tenantID); err != nil {
			res.Error = err.Error()
			return res
		}
	}

	if withReport || archive != nil {
		if res.Ageing, err = svcs.Collections.AnalyzeLoanAgeing(ctx, tenantID); err != nil {
			res.Error = err.Error()
			return res
		}
	}

	if archive != nil {
		export := svcs.Export.AgeingXLSX
		if format == "pdf" {
			export = svcs.Export.AgeingPDF
		}
		data, filename, err := export(res.Ageing)
		if err != nil {
			res.Error = err.Error()
			return res
		}
		rel, err := archive.Save(data, filename, "ageing", res.Ageing.AsOf)
		if err != nil {
			res.Error = err.Error()
		} else {
			res.Archived = archive.GetFullPath(rel)
		}
		if !withReport {
			res.Ageing = nil
		}
	}

	return res
}

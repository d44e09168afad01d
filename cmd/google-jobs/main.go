package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/cheggaaa/pb/v3"

	"job-scraper/config"
	"job-scraper/models"
	"job-scraper/scraper/google"
	"job-scraper/services"
	"job-scraper/storage"
	"job-scraper/utils"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Scrape job listings from Google Careers with a headless Chrome and save them to a CSV file.

Usage:
  google-jobs <job_title> <pages>

Examples:
  google-jobs "Software Engineer" 3
  google-jobs "Site Reliability Engineer" 1

Settings are read from $%s (default configs/config.yaml), .env and JOBSCRAPER_* variables.
`, config.EnvConfigPath)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	pages, err := strconv.Atoi(flag.Arg(1))
	if err != nil {
		utils.Error("pages must be an integer, got %q", flag.Arg(1))
		os.Exit(2)
	}

	// Cancelling ctx kills Chrome, so SIGINT and SIGTERM still release the browser.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, flag.Arg(0), pages)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, jobTitle string, pages int) int {
	cfg, err := config.Load("")
	if err != nil {
		utils.Error("Invalid configuration: %v", err)
		return 1
	}
	utils.SetDebug(cfg.Debug)

	q, err := models.NewPagedQuery(jobTitle, pages)
	if err != nil {
		utils.Error("%v", err)
		return 2
	}
	utils.Info("Scraper starting | pages=%d wait=%v settle=%v headless=%v",
		q.Pages(), cfg.WaitTimeout, cfg.SettleDelay, cfg.Headless)

	bar := pb.StartNew(q.Pages())
	s := google.NewScraper(cfg)
	s.OnPage = func(page, found int) {
		bar.Increment()
	}

	started := time.Now()
	res, scrapeErr := s.Scrape(ctx, q)
	bar.Finish()

	report := services.Deliver(ctx, cfg, "google", q.Term(), storage.GoogleFilename(q, started), res, scrapeErr)
	services.PrintReport(report)
	return report.ExitCode()
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"job-scraper/client"
	"job-scraper/config"
	"job-scraper/models"
	"job-scraper/scraper/indeed"
	"job-scraper/services"
	"job-scraper/storage"
	"job-scraper/utils"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Scrape job listings from Indeed.com and save them to a CSV file.

Usage:
  indeed-jobs <job_title> <location>

Examples:
  indeed-jobs "Python Developer" "Remote"
  indeed-jobs "Cybersecurity Analyst" "Washington DC"

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, flag.Arg(0), flag.Arg(1))
	stop()
	os.Exit(code)
}

func run(ctx context.Context, jobTitle, location string) int {
	cfg, err := config.Load("")
	if err != nil {
		utils.Error("Invalid configuration: %v", err)
		return 1
	}
	utils.SetDebug(cfg.Debug)

	q, err := models.NewSearchQuery(jobTitle, location)
	if err != nil {
		utils.Error("%v", err)
		return 2
	}

	httpClient, err := client.New(cfg.RequestTimeout, cfg.ProxyURL)
	if err != nil {
		utils.Error("%v", err)
		return 1
	}

	started := time.Now()
	res, scrapeErr := indeed.NewScraper(cfg, httpClient).Scrape(ctx, q)

	report := services.Deliver(ctx, cfg, "indeed",
		fmt.Sprintf("%s / %s", q.Term(), q.Location()),
		storage.IndeedFilename(q, started),
		res, scrapeErr)
	services.PrintReport(report)
	return report.ExitCode()
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/langportal/internal/api"
	"github.com/example/langportal/internal/database"
	"github.com/example/langportal/internal/excel"
	"github.com/example/langportal/internal/logger"
	"github.com/example/langportal/internal/scheduler"
)

func main() {
	importFile := flag.String("import", "", "import vocabulary from an Excel/CSV file and exit")
	flag.Parse()

	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	logg, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logg.Sync()

	if err := database.Connect(); err != nil {
		logg.Fatalw("failed to connect to database", "error", err)
	}
	defer database.Close()

	if *importFile != "" {
		runImport(logg, *importFile)
		return
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: api.NewRouter(logg),
	}

	// Daily maintenance is opt-in
	var sched *scheduler.Scheduler
	if os.Getenv("ENABLE_MAINTENANCE") == "true" {
		sched = scheduler.New(logg)
		sched.Start()
	}

	go func() {
		logg.Infow("server started", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatalw("server error", "error", err)
		}
	}()

	// Wait for a termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	logg.Infow("received signal, shutting down", "signal", sig.String())

	if sched != nil {
		sched.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Errorw("error during shutdown", "error", err)
	}
	logg.Infow("server stopped")
}

// runImport loads vocabulary from a spreadsheet and reports the outcome
func runImport(logg *logger.Logger, path string) {
	config := excel.DefaultImportConfig()
	config.FilePath = path

	result, err := excel.ImportWords(context.Background(), config)
	if err != nil {
		logg.Fatalw("import failed", "error", err)
	}

	logg.Infow("import finished",
		"processed", result.TotalProcessed,
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
		"groups_created", result.GroupsCreated,
	)
	for _, e := range result.Errors {
		fmt.Fprintln(os.Stderr, e)
	}
	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}

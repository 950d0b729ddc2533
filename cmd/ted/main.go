package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tedhq/ted/internal/config"
	"github.com/tedhq/ted/internal/db"
	"github.com/tedhq/ted/internal/delivery"
	"github.com/tedhq/ted/internal/mcp"
	"github.com/tedhq/ted/internal/render"
	"github.com/tedhq/ted/internal/report"
	"github.com/tedhq/ted/internal/server"
	"github.com/tedhq/ted/pkg/models"
	"go.uber.org/zap"
)

var (
	configPath string
	verbose    bool
)

func main() {
	flag.StringVar(&configPath, "config", "", "Path to config file (YAML)")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(1)
	}
	command := flag.Arg(0)
	args := flag.Args()[1:]

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch command {
	case "init":
		err = runInit(cfg)
	case "serve":
		err = runServe(cfg)
	case "mcp":
		err = runMCP(cfg)
	case "report":
		err = runReport(cfg, args)
	case "send-report":
		err = runSendReport(cfg, args)
	case "status":
		err = runStatus(cfg)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: ted [flags] <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  init         Create the database and reports directory")
	fmt.Println("  serve        Start the HTTP API")
	fmt.Println("  mcp          Start the MCP server on stdio")
	fmt.Println("  report       Print a user's effort report as JSON")
	fmt.Println("  send-report  Render a report and mail it to the admin")
	fmt.Println("  status       Show database row counts")
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func openDB(cfg *config.Config) (*db.DB, error) {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := database.Init(context.Background()); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

func runInit(cfg *config.Config) error {
	if err := os.MkdirAll(cfg.ReportsDir, 0755); err != nil {
		return fmt.Errorf("failed to create reports directory: %w", err)
	}
	fmt.Printf("✓ Created reports directory at %s\n", cfg.ReportsDir)

	database, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer database.Close()
	fmt.Printf("✓ Initialized database at %s\n", cfg.DBPath)

	return nil
}

func runServe(cfg *config.Config) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	database, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	mailer := delivery.NewMailer(cfg.SMTP)
	svc := delivery.NewService(cfg.ReportsDir, mailer, logger)
	srv := server.NewServer(database, cfg, mailer, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("starting http server", zap.String("listen", cfg.Listen))
	if err := srv.Start(cfg.Listen); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func runMCP(cfg *config.Config) error {
	database, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	s := mcp.NewServer(database)
	return mcp.Serve(s)
}

func runReport(cfg *config.Config, args []string) error {
	reportFlags := flag.NewFlagSet("report", flag.ContinueOnError)
	userID := reportFlags.String("user", "", "User to report on")
	fromStr := reportFlags.String("from", "", "Range start (YYYY-MM-DD)")
	toStr := reportFlags.String("to", "", "Range end (YYYY-MM-DD)")
	if err := reportFlags.Parse(args); err != nil {
		return err
	}

	from, err := models.ParseDate(*fromStr)
	if err != nil {
		return err
	}
	to, err := models.ParseDate(*toStr)
	if err != nil {
		return err
	}
	if to.Before(from.Time) {
		return report.ErrInvalidRange
	}

	database, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	records, err := database.ListTasksForRange(context.Background(), *userID, from, to)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(report.Build(records, from, to), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runSendReport(cfg *config.Config, args []string) error {
	sendFlags := flag.NewFlagSet("send-report", flag.ContinueOnError)
	userID := sendFlags.String("user", "", "User to report on")
	fromStr := sendFlags.String("from", "", "Range start (YYYY-MM-DD)")
	toStr := sendFlags.String("to", "", "Range end (YYYY-MM-DD)")
	dateStr := sendFlags.String("date", "", "Single date (YYYY-MM-DD), overrides the range")
	roleStr := sendFlags.String("role", "manager", "Viewing role for the report columns")
	if err := sendFlags.Parse(args); err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	database, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx := context.Background()
	u, err := database.GetUser(ctx, *userID)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("user %q not found", *userID)
	}

	role, err := models.ParseRole(*roleStr)
	if err != nil {
		role = models.RoleEmployee
	}

	var scope models.ReportScope
	var records []models.TaskRecord
	if *dateStr != "" {
		date, err := models.ParseDate(*dateStr)
		if err != nil {
			return err
		}
		scope = models.ScopeForDay(date)
		if records, err = database.ListTasksForDate(ctx, *userID, date); err != nil {
			return err
		}
	} else {
		from, err := models.ParseDate(*fromStr)
		if err != nil {
			return err
		}
		to, err := models.ParseDate(*toStr)
		if err != nil {
			return err
		}
		if to.Before(from.Time) {
			return report.ErrInvalidRange
		}
		scope = models.ScopeForRange(from, to)
		if records, err = database.ListTasksForRange(ctx, *userID, from, to); err != nil {
			return err
		}
	}
	if len(records) == 0 {
		return report.ErrNoData
	}

	in := render.Input{
		UserID: *userID,
		Email:  u.Email,
		Role:   role,
		Scope:  scope,
		Report: report.ForScope(records, scope),
		Days:   report.GroupByDay(records),
	}
	artifacts, err := render.Render(in)
	if err != nil {
		return err
	}

	mailer := delivery.NewMailer(cfg.SMTP)
	svc := delivery.NewService(cfg.ReportsDir, mailer, logger)
	paths, err := svc.Send(in, artifacts)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Report written to %s\n", paths.HTML)
	fmt.Printf("✓ Report mailed to %s\n", cfg.SMTP.AdminEmail)
	return nil
}

func runStatus(cfg *config.Config) error {
	database, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	tables := []string{"users", "tasks", "invitations", "employees", "payroll"}
	fmt.Println("TED Database Status")
	fmt.Println("===================")
	for _, table := range tables {
		var count int
		if err := database.QueryRowContext(context.Background(),
			"SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
			return err
		}
		fmt.Printf("%-12s %d\n", table+":", count)
	}
	return nil
}

/* predictor.go
 * This file contains the public methods for running a bracket prediction. Callers should go
 * through this package rather than wiring the sub packages together themselves, so every run
 * gets the same checkpointing, reporting and archiving behavior.
 */

package predictor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"bracket-bot/predictor/bracket"
	"bracket-bot/predictor/oracle"
	"bracket-bot/predictor/report"
	"bracket-bot/predictor/research"
	"bracket-bot/predictor/shared"
	"bracket-bot/predictor/store"
)

// Config holds everything a prediction run needs beyond the bracket itself.
type Config struct {
	// RunDir receives every checkpoint, report and log for this run.
	RunDir string
	// Model overrides the oracle's default model name.
	Model string
	// ExaAPIKey enables web research. Empty disables enrichment.
	ExaAPIKey string
	// SimpleAnalysis skips web research even when a search key is configured.
	SimpleAnalysis bool
	// MongoURI and MongoDB enable archiving completed brackets. Empty disables it.
	MongoURI string
	MongoDB  string
	// RunName labels this run in the archive.
	RunName string

	Offline  bool
	TestMode bool
	Strict   bool
}

// Result describes where a completed run left its artifacts.
type Result struct {
	FinalBracketPath string
	ReportPath       string
	HTMLPath         string
}

// Predictor ties the prediction engine to its storage, research and archive backends.
type Predictor struct {
	Store   *store.Store
	client  oracle.Client
	archive *store.Archive
	cfg     Config
	logger  *logrus.Logger
}

// New creates a Predictor from configuration. The oracle client is only constructed when the
// run will actually consult it.
func New(ctx context.Context, cfg Config, logger *logrus.Logger) (*Predictor, error) {
	if cfg.RunDir == "" {
		return nil, fmt.Errorf("run directory is required")
	}

	st, err := store.NewStore(cfg.RunDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	p := &Predictor{Store: st, cfg: cfg, logger: logger}

	if !cfg.Offline {
		client, err := oracle.NewClientFromEnv(ctx, cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize oracle client: %w", err)
		}
		p.client = client
		logger.Infof("Using oracle model %s", client.Model())
	}

	if cfg.MongoURI != "" {
		dbName := cfg.MongoDB
		if dbName == "" {
			dbName = "bracket_bot"
		}
		archive, err := store.NewArchive(dbName, cfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize bracket archive: %w", err)
		}
		p.archive = archive
	}

	return p, nil
}

/* Run predicts every unresolved game and writes the final reports.
 * Preconditions: t was produced by LoadBracket or bracket.BuildBracket
 * Postconditions: returns artifact paths on success. In test mode artifact paths are empty. The
 * completed bracket is archived when an archive is configured.
 */
func (p *Predictor) Run(ctx context.Context, t *shared.Tournament) (*Result, error) {
	var enricher bracket.Enricher
	if p.client != nil && p.cfg.ExaAPIKey != "" && !p.cfg.SimpleAnalysis {
		enricher = research.NewPipeline(research.NewExaClient(p.cfg.ExaAPIKey, p.logger), p.client, p.logger)
	} else if !p.cfg.Offline {
		p.logger.Info("Running without web research, predictions use team records and seed history only")
	}

	var predictor bracket.Predictor
	if p.client != nil {
		predictor = oracle.NewAdapter(p.client, t.TeamRecords, p.logger)
	}

	opts := bracket.Options{
		TestMode: p.cfg.TestMode,
		Offline:  p.cfg.Offline,
		Strict:   p.cfg.Strict,
	}
	engine := bracket.NewEngine(p.Store, predictor, enricher, opts, p.logger)

	finalPath, err := engine.Run(ctx, t)
	if err != nil {
		return nil, err
	}
	if finalPath == "" {
		// Test mode stops before the bracket completes, there is nothing to report on.
		return &Result{}, nil
	}

	result := &Result{FinalBracketPath: finalPath}
	if err := p.writeReports(t, result); err != nil {
		return nil, err
	}

	if p.archive != nil {
		if err := p.archive.ArchiveFinal(ctx, t, p.cfg.RunName); err != nil {
			p.logger.Warnf("Failed to archive completed bracket: %v", err)
		}
	}

	return result, nil
}

// LoadBracket reads a bracket or checkpoint file to run from.
func LoadBracket(path string) (*shared.Tournament, error) {
	return store.LoadTournament(path)
}

// Close releases the archive connection if one was opened.
func (p *Predictor) Close(ctx context.Context) error {
	if p.archive == nil {
		return nil
	}
	return p.archive.Close(ctx)
}

func (p *Predictor) writeReports(t *shared.Tournament, result *Result) error {
	reportPath := filepath.Join(p.cfg.RunDir, "bracket_report.md")
	if err := os.WriteFile(reportPath, []byte(report.Markdown(t)), 0o644); err != nil {
		return fmt.Errorf("failed to write markdown report: %w", err)
	}
	result.ReportPath = reportPath

	page, err := report.HTML(t)
	if err != nil {
		return err
	}
	htmlPath := filepath.Join(p.cfg.RunDir, "bracket.html")
	if err := os.WriteFile(htmlPath, []byte(page), 0o644); err != nil {
		return fmt.Errorf("failed to write bracket page: %w", err)
	}
	result.HTMLPath = htmlPath

	p.logger.Infof("Reports written to %s", p.cfg.RunDir)
	return nil
}

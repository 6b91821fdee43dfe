/* main.go
 * The "main" method for running a bracket prediction. For details see `readme.md`
 * Usage: go run main.go -bracket="<path>" [-output="<dir>"] [-dry-run]
 *        go run main.go -teams="Auburn:1,Alabama State:16,..." -tournament-name="..." -region="South"
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"bracket-bot/notify"
	"bracket-bot/predictor"
	"bracket-bot/predictor/bracket"
	"bracket-bot/predictor/shared"
)

func main() {
	// A missing .env file is fine, configuration can come from the environment directly
	_ = godotenv.Load()

	bracketPtr := flag.String("bracket", "", "Path to a bracket JSON file to run from")
	checkpointPtr := flag.String("checkpoint", "", "Path to a checkpoint JSON file to resume from, takes precedence over -bracket")
	teamsPtr := flag.String("teams", "", `Comma separated seeded team list, e.g. "Auburn:1,Alabama State:16"`)
	tournamentNamePtr := flag.String("tournament-name", "NCAA March Madness", "Tournament name used in reports")
	regionPtr := flag.String("region", "South", "Region name for brackets built from -teams")
	outputPtr := flag.String("output", "runs", "Directory that run directories are created under")
	runNamePtr := flag.String("run-name", "", "Name for this run's directory, defaults to run_<timestamp>")
	modelPtr := flag.String("model", "", "Override the oracle model name")
	testPtr := flag.Bool("test", false, "Test mode: predict only the first two games then stop")
	dryRunPtr := flag.Bool("dry-run", false, "Predict every game from seed history without any network calls")
	simpleAnalysisPtr := flag.Bool("simple-analysis", false, "Skip web research, predict from team records and seeds only")
	strictPtr := flag.Bool("strict", false, "Abort on the first per-game failure instead of continuing")
	debugPtr := flag.Int("debug", 1, "Log verbosity: 0=warn, 1=info, 2=debug")

	flag.Parse()

	if *bracketPtr == "" && *checkpointPtr == "" && *teamsPtr == "" {
		log.Fatal("one of -bracket, -checkpoint or -teams is required")
	}

	runName := *runNamePtr
	if runName == "" {
		runName = "run_" + time.Now().Format("20060102_150405")
	}
	runDir := filepath.Join(*outputPtr, runName)

	logger, logFile, err := newLogger(runDir, *debugPtr)
	if err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}
	defer logFile.Close()

	bracketPath := *bracketPtr
	if *checkpointPtr != "" {
		bracketPath = *checkpointPtr
	}
	tournament, err := loadTournament(bracketPath, *teamsPtr, *tournamentNamePtr, *regionPtr)
	if err != nil {
		logger.Fatalf("failed to load bracket: %v", err)
	}

	cfg := predictor.Config{
		RunDir:         runDir,
		Model:          *modelPtr,
		ExaAPIKey:      os.Getenv("EXA_API_KEY"),
		SimpleAnalysis: *simpleAnalysisPtr,
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDB:        os.Getenv("MONGO_DB"),
		RunName:        runName,
		Offline:        *dryRunPtr,
		TestMode:       *testPtr,
		Strict:         *strictPtr,
	}

	ctx := context.Background()
	p, err := predictor.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to initialize predictor: %v", err)
	}
	defer func() {
		if err := p.Close(ctx); err != nil {
			logger.Warnf("failed to close predictor: %v", err)
		}
	}()

	notifier := newNotifier(logger)
	if notifier != nil {
		defer notifier.Close()
	}

	result, err := p.Run(ctx, tournament)
	if err != nil {
		if notifier != nil {
			notifier.AnnounceFailure(tournament, err)
		}
		logger.Fatalf("prediction run failed: %v", err)
	}

	updateLatestLink(*outputPtr, runName, logger)

	if result.FinalBracketPath == "" {
		logger.Info("Test run finished")
		return
	}

	if notifier != nil {
		notifier.AnnounceCompletion(tournament)
	}
	fmt.Printf("Predicted champion: %s\n", tournament.Champion())
	fmt.Printf("Final bracket: %s\n", result.FinalBracketPath)
	fmt.Printf("Report: %s\n", result.ReportPath)
}

// newLogger logs to stdout and to bracket_prediction.log inside the run directory.
func newLogger(runDir string, verbosity int) (*logrus.Logger, *os.File, error) {
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create run directory %s: %w", runDir, err)
	}
	logFile, err := os.OpenFile(filepath.Join(runDir, "bracket_prediction.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.MultiWriter(os.Stdout, logFile))
	switch {
	case verbosity <= 0:
		logger.SetLevel(logrus.WarnLevel)
	case verbosity == 1:
		logger.SetLevel(logrus.InfoLevel)
	default:
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger, logFile, nil
}

func loadTournament(bracketPath, teams, tournamentName, region string) (*shared.Tournament, error) {
	if bracketPath != "" {
		return predictor.LoadBracket(bracketPath)
	}

	parsed, err := bracket.ParseTeamList(teams)
	if err != nil {
		return nil, err
	}
	return bracket.BuildBracket(tournamentName, region, parsed, nil)
}

// newNotifier builds the Discord notifier when a token and channel are configured.
func newNotifier(logger *logrus.Logger) *notify.Notifier {
	token := os.Getenv("DISCORD_TOKEN")
	channelID := os.Getenv("DISCORD_CHANNEL_ID")
	if token == "" || channelID == "" {
		return nil
	}
	notifier, err := notify.NewNotifier(token, channelID, logger)
	if err != nil {
		logger.Warnf("Discord notifications disabled: %v", err)
		return nil
	}
	return notifier
}

// updateLatestLink points <output>/latest at the newest run directory. Best effort, some
// filesystems don't support symlinks.
func updateLatestLink(outputDir, runName string, logger *logrus.Logger) {
	link := filepath.Join(outputDir, "latest")
	_ = os.Remove(link)
	if err := os.Symlink(runName, link); err != nil {
		logger.Debugf("could not update latest link: %v", err)
	}
}

package main

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"

	"github.com/Conceptual-Machines/magda-engine-go/internal/config"
	"github.com/Conceptual-Machines/magda-engine-go/internal/engine"
	"github.com/Conceptual-Machines/magda-engine-go/internal/models"
)

const sentryFlushTimeout = 2 * time.Second

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
			Release:     "magda-engine@" + releaseVersion,
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			defer sentry.Flush(sentryFlushTimeout)
		}
	}

	segment := engine.New(nil, cfg.Seed).Generate(demoCommand(cfg))

	out, err := json.MarshalIndent(segment, "", "  ")
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to encode segment:", err)
	}
	os.Stdout.Write(out)
	os.Stdout.Write([]byte("\n"))
}

// demoCommand builds a small ii-V-I command exercising every generator role.
func demoCommand(cfg *config.Config) models.ProducerCommand {
	return models.ProducerCommand{
		Genre: cfg.Genre,
		Musical: models.MusicalContext{
			Key:            "C major",
			TimeSignature:  "4/4",
			Tempo:          models.Tempo{BPM: cfg.BPM},
			HarmonicRhythm: models.HarmonicRhythmMedium,
			ChordProgression: []models.ChordSpec{
				{Symbol: "Dm7", Color: "jazzy"},
				{Symbol: "G7", Color: "jazzy"},
				{Symbol: "Cmaj7", Color: "open"},
			},
		},
		Arrangement: models.Arrangement{
			SectionType: "verse",
			Density:     "medium",
			ActiveVoices: []models.VoiceAssignment{
				{Role: models.RoleRhythm, Activity: models.ActivityNormal, PatternHint: "four-on-floor"},
				{Role: models.RoleBass, Activity: models.ActivityNormal, PatternHint: "walking"},
				{Role: models.RoleHarmony, Activity: models.ActivityNormal, PatternHint: "shell-voicings"},
				{Role: models.RoleArpeggio, Activity: models.ActivityBusy, PatternHint: "up-down"},
				{Role: models.RoleLead, Activity: models.ActivityNormal, PatternHint: "lyrical"},
			},
		},
		Expression: models.ExpressionParams{
			Energy:   0.6,
			Tension:  0.3,
			Humanize: 0.4,
			Swing:    0.2,
			Dynamics: "moderate",
		},
	}
}

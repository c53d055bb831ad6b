// Package config loads the CLI's run configuration from environment
// variables, with an optional local .env file overlay.
package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rhyrak/classschedule/pkg/model"
)

// Paths locates every input/output CSV the CLI reads and writes.
type Paths struct {
	TeachersFile      string
	GroupsFile        string
	ClassroomsFile    string
	SubjectsFile      string
	RequirementsFile  string
	TimeSlotsFile     string
	EntriesFile       string
	AvailabilityFile  string
	ExportFile        string
	Delimiter         string
}

// Solver governs the simulated-annealing knobs surfaced to the caller.
type Solver struct {
	Chains      int
	Temperature float64
	CoolingRate float64
	Iterations  int
	Timeout     time.Duration
}

// Log governs the zerolog setup.
type Log struct {
	Level  string
	Pretty bool
}

// Config is the CLI's full run configuration.
type Config struct {
	Paths    Paths
	Solver   Solver
	Strictness int
	Settings model.Settings
	Log      Log
}

// Load reads configuration from environment variables, optionally
// overlaid with a local .env file (see godotenv.Load). Unset variables
// fall back to the defaults in setDefaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{
		Paths: Paths{
			TeachersFile:     v.GetString("SCHED_TEACHERS_FILE"),
			GroupsFile:       v.GetString("SCHED_GROUPS_FILE"),
			ClassroomsFile:   v.GetString("SCHED_CLASSROOMS_FILE"),
			SubjectsFile:     v.GetString("SCHED_SUBJECTS_FILE"),
			RequirementsFile: v.GetString("SCHED_REQUIREMENTS_FILE"),
			TimeSlotsFile:    v.GetString("SCHED_TIME_SLOTS_FILE"),
			EntriesFile:      v.GetString("SCHED_ENTRIES_FILE"),
			AvailabilityFile: v.GetString("SCHED_AVAILABILITY_FILE"),
			ExportFile:       v.GetString("SCHED_EXPORT_FILE"),
			Delimiter:        v.GetString("SCHED_DELIMITER"),
		},
		Solver: Solver{
			Chains:      v.GetInt("SCHED_SA_CHAINS"),
			Temperature: v.GetFloat64("SCHED_SA_TEMPERATURE"),
			CoolingRate: v.GetFloat64("SCHED_SA_COOLING_RATE"),
			Iterations:  v.GetInt("SCHED_SA_ITERATIONS"),
			Timeout:     parseDuration(v.GetString("SCHED_SA_TIMEOUT"), 0),
		},
		Strictness: v.GetInt("SCHED_STRICTNESS"),
		Settings: model.Settings{
			AllowWindows:                   v.GetBool("SCHED_ALLOW_WINDOWS"),
			EnforceStandardRules:           v.GetBool("SCHED_ENFORCE_STANDARD_RULES"),
			RespectProductionCalendar:      v.GetBool("SCHED_RESPECT_PRODUCTION_CALENDAR"),
			UseShortenedPreHolidaySchedule: v.GetBool("SCHED_USE_SHORTENED_PRE_HOLIDAY_SCHEDULE"),
		},
		Log: Log{
			Level:  v.GetString("SCHED_LOG_LEVEL"),
			Pretty: v.GetBool("SCHED_LOG_PRETTY"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SCHED_TEACHERS_FILE", "data/teachers.csv")
	v.SetDefault("SCHED_GROUPS_FILE", "data/groups.csv")
	v.SetDefault("SCHED_CLASSROOMS_FILE", "data/classrooms.csv")
	v.SetDefault("SCHED_SUBJECTS_FILE", "data/subjects.csv")
	v.SetDefault("SCHED_REQUIREMENTS_FILE", "data/requirements.csv")
	v.SetDefault("SCHED_TIME_SLOTS_FILE", "data/timeslots.csv")
	v.SetDefault("SCHED_ENTRIES_FILE", "data/entries.csv")
	v.SetDefault("SCHED_AVAILABILITY_FILE", "data/availability.csv")
	v.SetDefault("SCHED_EXPORT_FILE", "schedule.csv")
	v.SetDefault("SCHED_DELIMITER", ",")

	v.SetDefault("SCHED_SA_CHAINS", 0)
	v.SetDefault("SCHED_SA_TEMPERATURE", 1000.0)
	v.SetDefault("SCHED_SA_COOLING_RATE", 0.995)
	v.SetDefault("SCHED_SA_ITERATIONS", 5000)
	v.SetDefault("SCHED_SA_TIMEOUT", "")

	v.SetDefault("SCHED_STRICTNESS", 5)
	v.SetDefault("SCHED_ALLOW_WINDOWS", false)
	v.SetDefault("SCHED_ENFORCE_STANDARD_RULES", true)
	v.SetDefault("SCHED_RESPECT_PRODUCTION_CALENDAR", false)
	v.SetDefault("SCHED_USE_SHORTENED_PRE_HOLIDAY_SCHEDULE", false)

	v.SetDefault("SCHED_LOG_LEVEL", "info")
	v.SetDefault("SCHED_LOG_PRETTY", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

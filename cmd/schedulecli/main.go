// Command schedulecli loads teachers, groups, classrooms, subjects, time
// slots, and unscheduled entries from CSV, runs the core scheduler, and
// writes the resulting schedule back to CSV.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	classschedule "github.com/rhyrak/classschedule"
	"github.com/rhyrak/classschedule/internal/config"
	"github.com/rhyrak/classschedule/internal/csvio"
	"github.com/rhyrak/classschedule/internal/solver"
	"github.com/rhyrak/classschedule/pkg/model"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)

	delim, err := csvio.ParseDelimiter(cfg.Paths.Delimiter)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid delimiter")
	}

	teachers, groups, classrooms, subjects, timeSlots, entries, err := loadInputs(cfg.Paths, delim)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load input data")
	}

	logger.Info().
		Int("teachers", len(teachers)).
		Int("groups", len(groups)).
		Int("classrooms", len(classrooms)).
		Int("subjects", len(subjects)).
		Int("timeSlots", len(timeSlots)).
		Int("entries", len(entries)).
		Msg("loaded input data")

	scheduleConfig := model.Config{
		Strictness: cfg.Strictness,
		Settings:   cfg.Settings,
	}
	annealConfig := solver.AnnealConfig{
		Chains:      cfg.Solver.Chains,
		Temperature: cfg.Solver.Temperature,
		CoolingRate: cfg.Solver.CoolingRate,
		Iterations:  cfg.Solver.Iterations,
	}

	ctx := context.Background()
	var cancel context.CancelFunc
	if cfg.Solver.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, cfg.Solver.Timeout)
		defer cancel()
	}

	scheduler := classschedule.New(logger).WithAnnealConfig(annealConfig)
	scheduler.Load(teachers, groups, classrooms, subjects, timeSlots, entries, scheduleConfig, nil)

	start := time.Now()
	result := scheduler.Solve(ctx)
	elapsed := time.Since(start)
	finalCost := scheduler.Cost(result)

	path, err := csvio.ExportSchedule(result, cfg.Paths.ExportFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to export schedule")
	}

	logger.Info().
		Int("scheduled", len(result)).
		Int("requested", len(entries)).
		Float64("cost", finalCost).
		Dur("elapsed", elapsed).
		Str("exportedTo", path).
		Msg("run complete")

	fmt.Printf("Scheduled %d/%d entries\n", len(result), len(entries))
	fmt.Printf("Final cost: %.2f\n", finalCost)
	fmt.Printf("Elapsed: %s\n", elapsed)
	fmt.Printf("Exported to: %s\n", path)
}

func loadInputs(paths config.Paths, delim rune) ([]model.Teacher, []model.Group, []model.Classroom, []model.Subject, []model.TimeSlot, []model.UnscheduledEntry, error) {
	teachers, err := csvio.LoadTeachers(paths.TeachersFile, delim)
	if err != nil {
		return nil, nil, nil, nil, nil, nil, err
	}
	groups, err := csvio.LoadGroups(paths.GroupsFile, delim)
	if err != nil {
		return nil, nil, nil, nil, nil, nil, err
	}
	classrooms, err := csvio.LoadClassrooms(paths.ClassroomsFile, delim)
	if err != nil {
		return nil, nil, nil, nil, nil, nil, err
	}
	subjects, err := csvio.LoadSubjects(paths.SubjectsFile, paths.RequirementsFile, delim)
	if err != nil {
		return nil, nil, nil, nil, nil, nil, err
	}
	timeSlots, err := csvio.LoadTimeSlots(paths.TimeSlotsFile, delim)
	if err != nil {
		return nil, nil, nil, nil, nil, nil, err
	}
	entries, err := csvio.LoadEntries(paths.EntriesFile, delim)
	if err != nil {
		return nil, nil, nil, nil, nil, nil, err
	}

	if paths.AvailabilityFile != "" {
		if err := csvio.ApplyAvailability(paths.AvailabilityFile, delim, teachers, groups); err != nil {
			return nil, nil, nil, nil, nil, nil, err
		}
	}

	return teachers, groups, classrooms, subjects, timeSlots, entries, nil
}

func newLogger(cfg config.Log) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var writer = os.Stderr
	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	if cfg.Pretty {
		logger = logger.Output(zerolog.ConsoleWriter{Out: writer, TimeFormat: time.Kitchen})
	}
	return logger
}

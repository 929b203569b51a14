package main

import (
	"flag"
	"os"

	"github.com/cse-nriit/tt-backend/internal/config"
	"github.com/cse-nriit/tt-backend/internal/courses"
	"github.com/cse-nriit/tt-backend/internal/db"
	"github.com/cse-nriit/tt-backend/internal/faculty"
	"github.com/cse-nriit/tt-backend/internal/logger"
	"github.com/cse-nriit/tt-backend/internal/seeds"
)

func main() {
	coursesPath := flag.String("courses", "seeds/courses.yaml", "course catalog seed file")
	facultyPath := flag.String("faculty", "seeds/faculty.yaml", "faculty roster seed file")
	flag.Parse()

	log := logger.New("seed")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close(gdb)

	if err := courses.Init(gdb); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate courses")
	}
	if err := faculty.Init(gdb); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate faculty")
	}

	courseCount, err := seeds.SeedCourses(gdb, *coursesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("course seeding failed")
	}
	log.Info().Int("count", courseCount).Msg("courses seeded")

	facultyCount, err := seeds.SeedFaculty(gdb, *facultyPath)
	if err != nil {
		log.Fatal().Err(err).Msg("faculty seeding failed")
	}
	log.Info().Int("count", facultyCount).Msg("faculty seeded")

	os.Exit(0)
}

package scheduler

import (
	"io"
	"os"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/langportal/internal/database"
	"github.com/example/langportal/internal/logger"
)

// DefaultMaintenanceHour is the UTC hour at which the daily maintenance
// job runs
const DefaultMaintenanceHour = 3

// Scheduler runs the daily database maintenance job: a backup copy of the
// SQLite file plus an ANALYZE pass. It never writes tracking state.
type Scheduler struct {
	scheduler *gocron.Scheduler
	log       *logger.Logger
}

// New creates a new scheduler instance
func New(log *logger.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		log:       log,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	hour := DefaultMaintenanceHour
	at := time.Date(0, 1, 1, hour, 0, 0, 0, time.UTC).Format("15:04")

	s.scheduler.Every(1).Day().At(at).Do(s.runMaintenance)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// runMaintenance backs up the database file and refreshes planner statistics
func (s *Scheduler) runMaintenance() {
	if path := database.Path(); path != "" {
		backup := path + ".bak"
		if err := copyFile(path, backup); err != nil {
			s.log.Errorw("database backup failed", "error", err)
		} else {
			s.log.Infow("database backup written", "path", backup)
		}
	}

	if _, err := database.DB.Exec("ANALYZE"); err != nil {
		s.log.Errorw("analyze failed", "error", err)
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/isdelr/taskboard-be/internal/models"
	"github.com/isdelr/taskboard-be/internal/services"
	"github.com/isdelr/taskboard-be/internal/stores"
)

// OverdueSweeper periodically looks for unfinished tasks whose deadline
// has passed and records a task.overdue event on their board. It runs
// outside the request path and touches nothing but the stores.
type OverdueSweeper struct {
	tasks    stores.TaskStore
	eventSvc services.EventServiceProvider
	schedule cron.Schedule
	done     chan bool
}

// NewOverdueSweeper creates a sweeper from a standard cron expression.
func NewOverdueSweeper(tasks stores.TaskStore, eventSvc services.EventServiceProvider, cronExpr string) (*OverdueSweeper, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid overdue sweep cron expression %q: %w", cronExpr, err)
	}
	return &OverdueSweeper{
		tasks:    tasks,
		eventSvc: eventSvc,
		schedule: schedule,
		done:     make(chan bool),
	}, nil
}

// Run executes the sweep on its cron schedule until Stop is called.
func (s *OverdueSweeper) Run() {
	log.Info().Msg("Starting overdue task sweeper...")
	for {
		next := s.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-s.done:
			timer.Stop()
			log.Info().Msg("Stopping overdue task sweeper.")
			return
		case <-timer.C:
			s.sweep()
		}
	}
}

// Stop halts the sweeper.
func (s *OverdueSweeper) Stop() {
	s.done <- true
}

func (s *OverdueSweeper) sweep() {
	today := time.Now().UTC().Format(models.DeadlineLayout)
	tasks, err := s.tasks.ListOverdue(context.Background(), today)
	if err != nil {
		log.Error().Err(err).Msg("Overdue sweep failed to list tasks")
		return
	}

	for _, task := range tasks {
		msg := fmt.Sprintf("Task '%s' is overdue since %s.", task.Title, task.Deadline)
		if err := s.eventSvc.CreateEvent("task.overdue", msg, &task.BoardID); err != nil {
			log.Error().Err(err).Str("task_id", task.ID).Msg("Failed to record overdue event")
		}
	}
	if len(tasks) > 0 {
		log.Info().Int("count", len(tasks)).Msg("Overdue sweep flagged tasks")
	}
}

package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"cigbreak/internal/modules/reminder/domain"
	reminderout "cigbreak/internal/modules/reminder/port/out"
	"cigbreak/internal/platform/logger"
	"cigbreak/internal/platform/schedule"
)

const notifyTimeout = 5 * time.Second

// ReminderService owns at most one recurring reminder task. Every armed task
// carries an epoch and a tick from an older epoch is dropped.
type ReminderService struct {
	notifier reminderout.Notifier
	sched    schedule.Scheduler
	log      *slog.Logger

	mu     sync.Mutex
	state  domain.State
	epoch  uint64
	cancel schedule.Cancel
	ctx    context.Context
}

func NewReminderService(notifier reminderout.Notifier, sched schedule.Scheduler, log *slog.Logger) *ReminderService {
	return &ReminderService{
		notifier: notifier,
		sched:    sched,
		log:      logger.OrDiscard(log),
		state:    domain.State{Minutes: 90, Permission: domain.PermissionDefault},
		ctx:      context.Background(),
	}
}

// Start (re)arms the reminder loop at the clamped cadence. A running loop is
// cancelled first.
func (s *ReminderService) Start(ctx context.Context, minutes int) domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	minutes = domain.ClampMinutes(minutes)
	permission := s.ensurePermission(ctx)

	s.disarm()
	s.epoch++
	epoch := s.epoch
	s.ctx = context.WithoutCancel(ctx)
	s.state.Enabled = true
	s.state.Minutes = minutes
	s.state.Permission = permission
	s.state.Delivering = permission == domain.PermissionGranted
	s.cancel = s.sched.Every(time.Duration(minutes)*time.Minute, func() { s.tick(epoch) })

	s.log.Info("reminders on", "minutes", minutes, "permission", permission, "epoch", epoch)
	return s.state
}

// Stop cancels the loop. Stopping a stopped service is a no-op.
func (s *ReminderService) Stop() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Enabled {
		return s.state
	}
	s.disarm()
	s.epoch++
	s.state.Enabled = false
	s.state.Delivering = false
	s.log.Info("reminders off")
	return s.state
}

func (s *ReminderService) Status() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *ReminderService) ensurePermission(ctx context.Context) domain.Permission {
	if !s.notifier.Available() {
		return domain.PermissionDenied
	}
	permission := s.notifier.Permission(ctx)
	if permission != domain.PermissionDefault {
		return permission
	}
	requested, err := s.notifier.RequestPermission(ctx)
	if err != nil {
		s.log.Warn("request notification permission", "error", err)
		return domain.PermissionDenied
	}
	return requested
}

// tick delivers outside the lock so a slow notifier never blocks Status or
// Stop. The sent counter only moves if the epoch survived the send.
func (s *ReminderService) tick(epoch uint64) {
	s.mu.Lock()
	if epoch != s.epoch || !s.state.Enabled {
		s.log.Debug("stale reminder tick dropped", "epoch", epoch, "current", s.epoch)
		s.mu.Unlock()
		return
	}
	delivering, parent := s.state.Delivering, s.ctx
	s.mu.Unlock()
	if !delivering {
		return
	}

	ctx, cancel := context.WithTimeout(parent, notifyTimeout)
	defer cancel()
	if err := s.notifier.Notify(ctx, domain.BreakNotification()); err != nil {
		s.log.Warn("send reminder", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch == s.epoch {
		s.state.Sent++
	}
}

func (s *ReminderService) disarm() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cigbreak/internal/modules/reminder/domain"
	"cigbreak/internal/platform/schedule"
)

type fakeNotifier struct {
	available  bool
	permission domain.Permission
	grant      domain.Permission
	requestErr error
	notifyErr  error
	requests   int
	sent       []domain.Notification
	onNotify   func()
}

func (f *fakeNotifier) Available() bool { return f.available }

func (f *fakeNotifier) Permission(context.Context) domain.Permission { return f.permission }

func (f *fakeNotifier) RequestPermission(context.Context) (domain.Permission, error) {
	f.requests++
	if f.requestErr != nil {
		return domain.PermissionDefault, f.requestErr
	}
	f.permission = f.grant
	return f.grant, nil
}

func (f *fakeNotifier) Notify(_ context.Context, n domain.Notification) error {
	if f.onNotify != nil {
		f.onNotify()
	}
	if f.notifyErr != nil {
		return f.notifyErr
	}
	f.sent = append(f.sent, n)
	return nil
}

func granted() *fakeNotifier {
	return &fakeNotifier{available: true, permission: domain.PermissionGranted}
}

func TestStartClampsAndNotifiesEveryInterval(t *testing.T) {
	t.Parallel()
	n := granted()
	sched := schedule.NewManual()
	svc := NewReminderService(n, sched, nil)

	state := svc.Start(context.Background(), 5)
	if state.Minutes != 15 || !state.Enabled || !state.Delivering {
		t.Fatalf("unexpected state %+v", state)
	}
	sched.Advance(14 * time.Minute)
	if len(n.sent) != 0 {
		t.Fatalf("no reminder expected before the interval")
	}
	sched.Advance(46 * time.Minute)
	if len(n.sent) != 4 {
		t.Fatalf("expected 4 reminders in an hour, got %d", len(n.sent))
	}
	if n.sent[0] != domain.BreakNotification() {
		t.Fatalf("unexpected notification %+v", n.sent[0])
	}
	if svc.Status().Sent != 4 {
		t.Fatalf("expected sent counter 4, got %d", svc.Status().Sent)
	}
}

func TestStartClampsUpperBound(t *testing.T) {
	t.Parallel()
	svc := NewReminderService(granted(), schedule.NewManual(), nil)
	if got := svc.Start(context.Background(), 500).Minutes; got != 240 {
		t.Fatalf("expected 240, got %d", got)
	}
}

func TestRestartNeverDoublesTicks(t *testing.T) {
	t.Parallel()
	n := granted()
	sched := schedule.NewManual()
	svc := NewReminderService(n, sched, nil)
	ctx := context.Background()

	svc.Start(ctx, 15)
	oldEpoch := svc.epoch
	svc.Start(ctx, 15)
	svc.Start(ctx, 15)
	if sched.Pending() != 1 {
		t.Fatalf("expected one live reminder task, got %d", sched.Pending())
	}

	svc.tick(oldEpoch)
	if len(n.sent) != 0 {
		t.Fatalf("stale tick must not notify")
	}
	sched.Advance(15 * time.Minute)
	if len(n.sent) != 1 {
		t.Fatalf("expected exactly one reminder, got %d", len(n.sent))
	}
}

func TestStopCancelsAndIsIdempotent(t *testing.T) {
	t.Parallel()
	n := granted()
	sched := schedule.NewManual()
	svc := NewReminderService(n, sched, nil)

	stopped := svc.Stop()
	if stopped.Enabled {
		t.Fatalf("stop on a fresh service must be a no-op")
	}
	svc.Start(context.Background(), 30)
	svc.Stop()
	svc.Stop()
	if sched.Pending() != 0 {
		t.Fatalf("stop must cancel the reminder task")
	}
	sched.Advance(2 * time.Hour)
	if len(n.sent) != 0 {
		t.Fatalf("no reminder expected after stop, got %d", len(n.sent))
	}
}

func TestPermissionRequestedOnlyWhenUndecided(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	undecided := &fakeNotifier{available: true, permission: domain.PermissionDefault, grant: domain.PermissionGranted}
	svc := NewReminderService(undecided, schedule.NewManual(), nil)
	if state := svc.Start(ctx, 15); state.Permission != domain.PermissionGranted || undecided.requests != 1 {
		t.Fatalf("expected one granted request, got %+v after %d requests", state, undecided.requests)
	}
	svc.Start(ctx, 15)
	if undecided.requests != 1 {
		t.Fatalf("granted permission must not be requested again")
	}

	denied := &fakeNotifier{available: true, permission: domain.PermissionDenied}
	svc = NewReminderService(denied, schedule.NewManual(), nil)
	if state := svc.Start(ctx, 15); state.Delivering || denied.requests != 0 {
		t.Fatalf("denied permission must not be requested, got %+v", state)
	}
}

func TestDegradedModeStaysEnabledButSilent(t *testing.T) {
	t.Parallel()
	n := &fakeNotifier{available: false}
	sched := schedule.NewManual()
	svc := NewReminderService(n, sched, nil)

	state := svc.Start(context.Background(), 15)
	if !state.Enabled || state.Delivering || state.Permission != domain.PermissionDenied {
		t.Fatalf("unexpected degraded state %+v", state)
	}
	sched.Advance(time.Hour)
	if len(n.sent) != 0 {
		t.Fatalf("unavailable notifier must not be called")
	}
}

func TestNotifyFailureIsSwallowed(t *testing.T) {
	t.Parallel()
	n := granted()
	n.notifyErr = errors.New("bus down")
	sched := schedule.NewManual()
	svc := NewReminderService(n, sched, nil)

	svc.Start(context.Background(), 15)
	sched.Advance(30 * time.Minute)
	state := svc.Status()
	if !state.Enabled || state.Sent != 0 {
		t.Fatalf("failed sends must leave reminders on, got %+v", state)
	}
}

func TestRequestFailureDegrades(t *testing.T) {
	t.Parallel()
	n := &fakeNotifier{available: true, permission: domain.PermissionDefault, requestErr: errors.New("no dbus")}
	svc := NewReminderService(n, schedule.NewManual(), nil)
	if state := svc.Start(context.Background(), 15); state.Delivering {
		t.Fatalf("request failure must not deliver, got %+v", state)
	}
}

func TestNotifyRunsWithoutHoldingTheLock(t *testing.T) {
	t.Parallel()
	n := granted()
	sched := schedule.NewManual()
	svc := NewReminderService(n, sched, nil)

	var during domain.State
	n.onNotify = func() { during = svc.Status() }
	svc.Start(context.Background(), 15)
	sched.Advance(15 * time.Minute)

	if !during.Enabled || during.Sent != 0 {
		t.Fatalf("status during send = %+v", during)
	}
	if got := svc.Status().Sent; got != 1 {
		t.Fatalf("sent = %d want 1", got)
	}
}

func TestStopDuringSendDoesNotCount(t *testing.T) {
	t.Parallel()
	n := granted()
	sched := schedule.NewManual()
	svc := NewReminderService(n, sched, nil)

	n.onNotify = func() { svc.Stop() }
	svc.Start(context.Background(), 15)
	sched.Advance(45 * time.Minute)

	state := svc.Status()
	if state.Enabled || state.Sent != 0 {
		t.Fatalf("stop during send must win, got %+v", state)
	}
	if len(n.sent) != 1 {
		t.Fatalf("expected exactly one delivery before stop, got %d", len(n.sent))
	}
}

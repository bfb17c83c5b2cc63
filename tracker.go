package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

var (
	// ErrPrecondition wraps every rejected punch; nothing is mutated.
	ErrPrecondition = errors.New("action not allowed")

	ErrAlreadyClockedIn    = fmt.Errorf("%w: entry already registered today", ErrPrecondition)
	ErrNoEntry             = fmt.Errorf("%w: register the entry first", ErrPrecondition)
	ErrBreakAlreadyStarted = fmt.Errorf("%w: break already started", ErrPrecondition)
	ErrNoBreakStart        = fmt.Errorf("%w: register the break start first", ErrPrecondition)
	ErrBreakAlreadyEnded   = fmt.Errorf("%w: break already ended", ErrPrecondition)
	ErrAlreadyClockedOut   = fmt.Errorf("%w: exit already registered today", ErrPrecondition)
	ErrDateRequired        = fmt.Errorf("%w: date is required", ErrPrecondition)
	ErrInvalidDate         = fmt.Errorf("%w: date must be YYYY-MM-DD", ErrPrecondition)
	ErrNoTimes             = fmt.Errorf("%w: fill in at least one time", ErrPrecondition)
	ErrUnknownAction       = fmt.Errorf("%w: unknown action", ErrPrecondition)

	ErrFetchFailed = errors.New("failed to load records")
)

type Action string

const (
	ActionEntry      Action = "entry"
	ActionBreakStart Action = "break-start"
	ActionBreakEnd   Action = "break-end"
	ActionExit       Action = "exit"
)

func (a Action) Label() string {
	switch a {
	case ActionEntry:
		return "Entry"
	case ActionBreakStart:
		return "Break start"
	case ActionBreakEnd:
		return "Break end"
	case ActionExit:
		return "Exit"
	}
	return string(a)
}

type State int

const (
	NotStarted State = iota
	EntryRecorded
	OnBreak
	BreakEnded
	Exited
)

func (s State) String() string {
	switch s {
	case EntryRecorded:
		return "working"
	case OnBreak:
		return "on break"
	case BreakEnded:
		return "back from break"
	case Exited:
		return "clocked out"
	}
	return "not started"
}

// DayState derives where in the punch sequence r is. A nil record has not
// started.
func DayState(r *Record) State {
	switch {
	case r == nil || !r.EntryTime.Valid:
		return NotStarted
	case r.ExitTime.Valid:
		return Exited
	case r.BreakEndTime.Valid:
		return BreakEnded
	case r.BreakStartTime.Valid:
		return OnBreak
	}
	return EntryRecorded
}

// ManualInput is a backfilled record as typed by the user. Date is
// YYYY-MM-DD, times are HH:MM and may be empty.
type ManualInput struct {
	Date           string
	EntryTime      string
	BreakStartTime string
	BreakEndTime   string
	ExitTime       string
}

// Tracker owns today's record and the month set loaded from the store.
// With a nil gateway it runs local-only and nothing is persisted.
type Tracker struct {
	mu      sync.Mutex
	gateway Gateway
	notify  Notifier
	now     func() time.Time

	today *Record
	month []Record

	// last write handed to the gateway; saves run in submission order
	lastWrite *WriteTask
}

func NewTracker(gateway Gateway, notify Notifier) *Tracker {
	return &Tracker{
		gateway: gateway,
		notify:  notify,
		now:     time.Now,
	}
}

func (t *Tracker) Configured() bool {
	return t.gateway != nil
}

// Today returns a copy of today's record, if there is one.
func (t *Tracker) Today() (Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.today == nil {
		return Record{}, false
	}
	return *t.today, true
}

func (t *Tracker) Month() []Record {
	t.mu.Lock()
	defer t.mu.Unlock()

	month := make([]Record, len(t.month))
	copy(month, t.month)
	return month
}

func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return DayState(t.today)
}

// AvailableActions lists the punches whose preconditions currently hold, in
// punch order.
func (t *Tracker) AvailableActions() []Action {
	t.mu.Lock()
	defer t.mu.Unlock()

	var actions []Action
	for _, a := range []Action{ActionEntry, ActionBreakStart, ActionBreakEnd, ActionExit} {
		if checkAction(a, t.today) == nil {
			actions = append(actions, a)
		}
	}
	return actions
}

func checkAction(a Action, today *Record) error {
	switch a {
	case ActionEntry:
		if today != nil && today.EntryTime.Valid {
			return ErrAlreadyClockedIn
		}
	case ActionBreakStart:
		if today == nil || !today.EntryTime.Valid {
			return ErrNoEntry
		}
		if today.BreakStartTime.Valid {
			return ErrBreakAlreadyStarted
		}
	case ActionBreakEnd:
		if today == nil || !today.BreakStartTime.Valid {
			return ErrNoBreakStart
		}
		if today.BreakEndTime.Valid {
			return ErrBreakAlreadyEnded
		}
	case ActionExit:
		if today == nil || !today.EntryTime.Valid {
			return ErrNoEntry
		}
		if today.ExitTime.Valid {
			return ErrAlreadyClockedOut
		}
	default:
		return ErrUnknownAction
	}
	return nil
}

// Reload replaces the month set with the store's records and picks today's
// record out of it. On failure the previous state is kept.
func (t *Tracker) Reload(ctx context.Context) error {
	if t.gateway == nil {
		log.Printf("script URL not configured, skipping reload")
		return nil
	}

	t.notify.Info("Loading records...")
	remote, err := t.gateway.Fetch(ctx)
	if err != nil {
		log.Printf("error loading records: %v", err)
		if errors.Is(err, ErrNoData) {
			t.notify.Error("No records found")
		} else {
			t.notify.Error("Failed to load records")
		}
		return fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	month := make([]Record, 0, len(remote))
	for _, rr := range remote {
		month = append(month, rr.ToRecord())
	}

	t.mu.Lock()
	t.month = month
	if r, ok := FindToday(month, FormatDate(t.now())); ok {
		t.today = &r
	} else {
		t.today = nil
	}
	t.mu.Unlock()

	t.notify.Info("Records loaded!")
	return nil
}

// Punch dispatches one of the punch actions.
func (t *Tracker) Punch(ctx context.Context, a Action) (*WriteTask, error) {
	switch a {
	case ActionEntry:
		return t.RegisterEntry(ctx)
	case ActionBreakStart:
		return t.RegisterBreakStart(ctx)
	case ActionBreakEnd:
		return t.RegisterBreakEnd(ctx)
	case ActionExit:
		return t.RegisterExit(ctx)
	}
	return nil, t.reject(ErrUnknownAction)
}

// RegisterEntry starts a new automatic record for today. A record for today
// without an entry is replaced.
func (t *Tracker) RegisterEntry(ctx context.Context) (*WriteTask, error) {
	return t.mutate(ctx, ActionEntry, func(today **Record, now time.Time) {
		*today = &Record{
			ID:        NewRecordID(),
			Date:      FormatDate(now),
			EntryTime: NewNullClock(ClockOf(now)),
			Kind:      KindAutomatic,
		}
	})
}

func (t *Tracker) RegisterBreakStart(ctx context.Context) (*WriteTask, error) {
	return t.mutate(ctx, ActionBreakStart, func(today **Record, now time.Time) {
		(*today).BreakStartTime = NewNullClock(ClockOf(now))
	})
}

func (t *Tracker) RegisterBreakEnd(ctx context.Context) (*WriteTask, error) {
	return t.mutate(ctx, ActionBreakEnd, func(today **Record, now time.Time) {
		(*today).BreakEndTime = NewNullClock(ClockOf(now))
	})
}

// RegisterExit closes the day. The returned task completes once the write
// was acknowledged and the month set reloaded.
func (t *Tracker) RegisterExit(ctx context.Context) (*WriteTask, error) {
	task, err := t.mutate(ctx, ActionExit, func(today **Record, now time.Time) {
		(*today).ExitTime = NewNullClock(ClockOf(now))
	})
	if err != nil {
		return nil, err
	}
	return t.ReloadAfter(ctx, task), nil
}

func (t *Tracker) mutate(ctx context.Context, a Action, apply func(today **Record, now time.Time)) (*WriteTask, error) {
	t.mu.Lock()
	if err := checkAction(a, t.today); err != nil {
		t.mu.Unlock()
		return nil, t.reject(err)
	}
	apply(&t.today, t.now())
	task := t.persistLocked(ctx, *t.today)
	t.mu.Unlock()

	return task, nil
}

// SubmitManual persists a backfilled record. Today's record is left alone
// until the reload that follows the acknowledged write.
func (t *Tracker) SubmitManual(ctx context.Context, in ManualInput) (*WriteTask, error) {
	record, err := in.toRecord()
	if err != nil {
		return nil, t.reject(err)
	}

	t.mu.Lock()
	task := t.persistLocked(ctx, record)
	t.mu.Unlock()

	return t.ReloadAfter(ctx, task), nil
}

func (in ManualInput) toRecord() (Record, error) {
	if in.Date == "" {
		return Record{}, ErrDateRequired
	}
	if in.EntryTime == "" && in.BreakStartTime == "" && in.BreakEndTime == "" && in.ExitTime == "" {
		return Record{}, ErrNoTimes
	}

	day, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return Record{}, ErrInvalidDate
	}

	r := Record{
		ID:   NewRecordID(),
		Date: FormatDate(day),
		Kind: KindManual,
	}

	fields := []struct {
		value string
		dst   *NullClock
	}{
		{in.EntryTime, &r.EntryTime},
		{in.BreakStartTime, &r.BreakStartTime},
		{in.BreakEndTime, &r.BreakEndTime},
		{in.ExitTime, &r.ExitTime},
	}
	for _, f := range fields {
		nc, err := ParseNullClock(f.value)
		if err != nil {
			return Record{}, fmt.Errorf("%w: %w", ErrPrecondition, err)
		}
		*f.dst = nc
	}

	return r, nil
}

// persistLocked hands the record to the gateway on its own goroutine. Each
// save starts only after the previous one finished, so an older snapshot of
// a record can never overwrite a newer one in the store. The write is not
// cancelled with ctx and nothing is rolled back when it fails. t.mu must be
// held.
func (t *Tracker) persistLocked(ctx context.Context, r Record) *WriteTask {
	if t.gateway == nil {
		t.notify.Error("Configure the script URL first!")
		return completedTask(nil)
	}

	t.notify.Info("Saving...")
	task := newWriteTask()
	prev := t.lastWrite
	t.lastWrite = task
	fields := r.Fields()
	ctx = context.WithoutCancel(ctx)

	go func() {
		if prev != nil {
			<-prev.Done()
		}

		err := t.gateway.Save(ctx, fields)
		if err != nil {
			log.Printf("error saving record %s: %v", r.ID, err)
			t.notify.Error("Failed to save record")
		} else {
			t.notify.Info("Record saved!")
		}
		task.finish(err)
	}()

	return task
}

// ReloadAfter reloads once write has completed, whatever its outcome. A
// store that acknowledges before committing can still hand back stale
// rows. The returned task carries the write error first, then the reload
// error.
func (t *Tracker) ReloadAfter(ctx context.Context, write *WriteTask) *WriteTask {
	task := newWriteTask()

	go func() {
		<-write.Done()
		writeErr := write.Err()
		reloadErr := t.Reload(ctx)
		if writeErr != nil {
			task.finish(writeErr)
			return
		}
		task.finish(reloadErr)
	}()

	return task
}

func (t *Tracker) reject(err error) error {
	t.notify.Error(err.Error())
	return err
}

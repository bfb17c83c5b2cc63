package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/nexidian/gocliselect"
)

// how long the session waits for unfinished writes when quitting
const pendingWritesTimeout = 15 * time.Second

type App struct {
	cfg     Config
	out     io.Writer
	notify  Notifier
	tracker *Tracker
	now     func() time.Time
}

func NewApp(cfg Config, out, errOut io.Writer) *App {
	return &App{
		cfg:    cfg,
		out:    out,
		notify: NewConsoleNotifier(errOut),
		now:    time.Now,
	}
}

// setup builds the tracker once flags have been parsed. Without a script
// URL the tracker runs local-only.
func (a *App) setup() {
	if a.tracker != nil {
		return
	}

	var gateway Gateway
	if a.cfg.ScriptURL != "" {
		gateway = NewAPIClient(a.cfg.ScriptURL, a.cfg.Timeout)
	} else {
		a.notify.Error("Set TIMEPUNCH_SCRIPT_URL or --url, records will not be saved")
	}
	a.tracker = NewTracker(gateway, a.notify)
}

func (a *App) Punch(ctx context.Context, action Action) error {
	a.setup()
	if err := a.tracker.Reload(ctx); err != nil {
		return fmt.Errorf("cannot determine today's record: %w", err)
	}

	task, err := a.tracker.Punch(ctx, action)
	if err != nil {
		return err
	}
	if err := task.Wait(ctx); err != nil {
		return err
	}

	today, ok := a.tracker.Today()
	PrintToday(a.out, today, ok)
	return nil
}

func (a *App) Manual(ctx context.Context, in ManualInput) error {
	a.setup()

	task, err := a.tracker.SubmitManual(ctx, in)
	if err != nil {
		return err
	}
	if err := task.Wait(ctx); err != nil {
		return err
	}

	PrintMonth(a.out, a.tracker.Month())
	return nil
}

// ShowToday prints whatever is known even when the reload failed.
func (a *App) ShowToday(ctx context.Context) error {
	a.setup()
	err := a.tracker.Reload(ctx)

	today, ok := a.tracker.Today()
	PrintToday(a.out, today, ok)
	return err
}

func (a *App) ShowMonth(ctx context.Context) error {
	a.setup()
	err := a.tracker.Reload(ctx)

	PrintMonth(a.out, a.tracker.Month())
	return err
}

func (a *App) Export(ctx context.Context, path string) error {
	a.setup()
	if err := a.tracker.Reload(ctx); err != nil {
		return err
	}

	records := a.tracker.Month()
	if err := ExportMonth(path, records); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Exported %d records to %s\n", len(records), path)
	return nil
}

// Clock prints the current date and time once a second until ctx is done.
func (a *App) Clock(ctx context.Context) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		fmt.Fprintf(a.out, "\r%s", a.now().Format("Monday, 02 January 2006 15:04:05"))
		select {
		case <-ctx.Done():
			fmt.Fprintln(a.out)
			return nil
		case <-ticker.C:
		}
	}
}

// Session keeps the tracker in memory and offers the punches that are
// currently allowed. Writes are not awaited, except when quitting.
func (a *App) Session(ctx context.Context) error {
	a.setup()
	if err := a.tracker.Reload(ctx); err != nil {
		log.Printf("session starts with stale records: %v", err)
	}

	var pending []*WriteTask
	defer func() {
		waitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pendingWritesTimeout)
		defer cancel()
		for _, task := range pending {
			if err := task.Wait(waitCtx); err != nil {
				log.Printf("write not completed: %v", err)
			}
		}
	}()

	for ctx.Err() == nil {
		fmt.Fprintf(a.out, "\n%s\n", a.now().Format("Monday, 02 January 2006 15:04"))
		today, ok := a.tracker.Today()
		PrintToday(a.out, today, ok)

		menu := gocliselect.NewMenu("Choose an action")
		for _, action := range a.tracker.AvailableActions() {
			menu.AddItem(action.Label(), string(action))
		}
		menu.AddItem("Month records", "month")
		menu.AddItem("Refresh", "refresh")
		menu.AddItem("Quit", "quit")

		choice, err := menu.Display()
		if err != nil {
			return err
		}

		id, _ := choice.(string)
		switch id {
		case "", "quit":
			return nil
		case "refresh":
			if err := a.tracker.Reload(ctx); err != nil {
				log.Printf("refresh failed, keeping stale records: %v", err)
			}
		case "month":
			PrintMonth(a.out, a.tracker.Month())
		default:
			task, err := a.tracker.Punch(ctx, Action(id))
			if err == nil {
				pending = append(pending, task)
			}
		}
	}

	return nil
}

func (a *App) Serve(ctx context.Context) error {
	repo, err := NewRepo(a.cfg.DBPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	return Serve(ctx, a.cfg.Addr, repo)
}

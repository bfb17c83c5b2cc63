package main

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"
)

// Gateway is the remote store the tracker persists records to.
type Gateway interface {
	// Save sends one record's flattened fields. The store's answer is not
	// surfaced, only whether the write was accepted.
	Save(ctx context.Context, fields map[string]string) error
	Fetch(ctx context.Context) ([]RemoteRecord, error)
}

// RemoteRecord is a row as the store returns it.
type RemoteRecord struct {
	Date           string    `json:"date"`
	EntryTime      string    `json:"entryTime,omitempty"`
	BreakStartTime string    `json:"breakStartTime,omitempty"`
	BreakEndTime   string    `json:"breakEndTime,omitempty"`
	ExitTime       string    `json:"exitTime,omitempty"`
	Type           string    `json:"type,omitempty"`
	Timestamp      Timestamp `json:"timestamp,omitempty"`
}

// Timestamp accepts both JSON strings and numbers, spreadsheets emit either.
type Timestamp string

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Timestamp(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = Timestamp(n.String())
	return nil
}

// ToRecord converts a store row. Times that cannot be parsed are logged and
// treated as absent.
func (rr RemoteRecord) ToRecord() Record {
	r := Record{
		ID:             string(rr.Timestamp),
		Date:           strings.TrimSpace(rr.Date),
		EntryTime:      parseRemoteClock(rr.EntryTime, "entryTime", rr.Date),
		BreakStartTime: parseRemoteClock(rr.BreakStartTime, "breakStartTime", rr.Date),
		BreakEndTime:   parseRemoteClock(rr.BreakEndTime, "breakEndTime", rr.Date),
		ExitTime:       parseRemoteClock(rr.ExitTime, "exitTime", rr.Date),
		Kind:           Kind(rr.Type),
	}
	if r.ID == "" {
		r.ID = NewRecordID()
	}
	if r.Kind != KindManual {
		r.Kind = KindAutomatic
	}
	return r
}

func parseRemoteClock(value, field, date string) NullClock {
	nc, err := ParseNullClock(value)
	if err != nil {
		log.Printf("ignoring %s of %s: %v", field, date, err)
		return NullClock{}
	}
	return nc
}

// NewRemoteRecord is the inverse of ToRecord, used by the store service.
func NewRemoteRecord(fields map[string]string, timestamp int64) RemoteRecord {
	return RemoteRecord{
		Date:           fields["date"],
		EntryTime:      fields["entryTime"],
		BreakStartTime: fields["breakStartTime"],
		BreakEndTime:   fields["breakEndTime"],
		ExitTime:       fields["exitTime"],
		Type:           fields["type"],
		Timestamp:      Timestamp(strconv.FormatInt(timestamp, 10)),
	}
}

// WriteTask tracks one fire-and-forget write. Callers may Wait on it or
// drop it.
type WriteTask struct {
	done chan struct{}
	err  error
}

func newWriteTask() *WriteTask {
	return &WriteTask{done: make(chan struct{})}
}

func completedTask(err error) *WriteTask {
	t := newWriteTask()
	t.finish(err)
	return t
}

func (t *WriteTask) finish(err error) {
	t.err = err
	close(t.done)
}

// Done is closed once the store acknowledged or rejected the write.
func (t *WriteTask) Done() <-chan struct{} {
	return t.done
}

// Err is only meaningful after Done is closed.
func (t *WriteTask) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

func (t *WriteTask) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

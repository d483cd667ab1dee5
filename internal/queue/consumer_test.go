package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRecordCheckIn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "checkin.log")

	gate := "north"
	body, err := json.Marshal(CheckInRecordedEvent{
		CheckInID:      1,
		RegistrationID: 2,
		EventID:        3,
		EventTitle:     "GopherFest",
		AttendeeName:   "Ada",
		Gate:           &gate,
		CheckedInAt:    "2026-09-01T12:00:00Z",
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if err := recordCheckIn(path, body); err != nil {
		t.Fatalf("recordCheckIn: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(raw)
	for _, want := range []string{"checkin=1", "registration=2", "event=3", "GopherFest", `attendee="Ada"`, "gate=north"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q missing %q", line, want)
		}
	}

	// A second record appends rather than truncates.
	if err := recordCheckIn(path, body); err != nil {
		t.Fatalf("second recordCheckIn: %v", err)
	}
	raw, _ = os.ReadFile(path)
	if got := strings.Count(string(raw), "\n"); got != 2 {
		t.Fatalf("log has %d lines, want 2", got)
	}
}

func TestRecordCheckInBadPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkin.log")

	if err := recordCheckIn(path, []byte("{not json")); err == nil {
		t.Fatal("recordCheckIn accepted an unparseable body")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("bad payload still produced a log file")
	}
}

package export

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestActivityCSVEqualRows(t *testing.T) {
	data := ActivityCSV([]int64{0, 1, 1}, []int64{2, 5, 9})
	want := "0,1,1\n2,5,9"
	if string(data) != want {
		t.Fatalf("expected %q, got %q", want, string(data))
	}
}

func TestActivityCSVPadsShorterRows(t *testing.T) {
	data := ActivityCSV([]int64{1}, []int64{2, 3, 4})
	want := "1,,\n2,3,4"
	if string(data) != want {
		t.Fatalf("expected %q, got %q", want, string(data))
	}
}

func TestActivityCSVEmpty(t *testing.T) {
	data := ActivityCSV(nil, nil)
	if string(data) != "\n" {
		t.Fatalf("expected two empty rows, got %q", string(data))
	}
}

func TestEventLogRoundTrip(t *testing.T) {
	l := NewEventLog()
	l.Keypress("a")
	l.Click(14, 203)
	l.Change("hello world")
	l.Keypress("Backspace")

	data, err := l.MarshalIndent()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	parsed, err := ParseEvents(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !reflect.DeepEqual(parsed, l.Events()) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", parsed, l.Events())
	}
}

func TestEmptyEventLogMarshalsAsArray(t *testing.T) {
	l := NewEventLog()
	data, err := l.MarshalIndent()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("expected empty array, got %q", string(data))
	}
}

func TestSaveArtifactCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	path, err := SaveArtifact(dir, "keystrokes.csv", []byte("1,2\n3,4"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != "1,2\n3,4" {
		t.Fatalf("unexpected content %q", string(data))
	}
}

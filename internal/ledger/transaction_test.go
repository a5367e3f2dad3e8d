package ledger

import (
	"testing"
	"time"
)

func TestPrepend(t *testing.T) {
	existing := []Transaction{{ID: "old1"}, {ID: "old2"}}
	add := []Transaction{{ID: "new1"}, {ID: "new2"}}

	got := Prepend(existing, add)

	want := []string{"new1", "new2", "old1", "old2"}
	if len(got) != len(want) {
		t.Fatalf("Prepend returned %d entries, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("Prepend()[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}

	// Input slices are untouched
	if len(existing) != 2 || existing[0].ID != "old1" {
		t.Error("Prepend modified the existing slice")
	}
}

func TestPrependEmpty(t *testing.T) {
	if got := Prepend(nil, nil); len(got) != 0 {
		t.Errorf("Prepend(nil, nil) returned %d entries, want 0", len(got))
	}
	got := Prepend(nil, []Transaction{{ID: "only"}})
	if len(got) != 1 || got[0].ID != "only" {
		t.Errorf("Prepend(nil, one) = %v, want single entry", got)
	}
}

func TestDelete(t *testing.T) {
	txs := []Transaction{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	got := Delete(txs, "b")
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("Delete(b) = %v, want [a c]", got)
	}

	got = Delete(txs, "missing")
	if len(got) != 3 {
		t.Errorf("Delete(missing) removed entries: got %d, want 3", len(got))
	}
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	if a == "" || b == "" {
		t.Fatal("NewID returned empty string")
	}
	if a == b {
		t.Error("NewID returned duplicate IDs")
	}
}

func TestToday(t *testing.T) {
	got := Today()
	if _, err := time.Parse(DateFormat, got); err != nil {
		t.Errorf("Today() = %q, not in %s format: %v", got, DateFormat, err)
	}
}

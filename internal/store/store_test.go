package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/tuiclock/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(MemoryDSN)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestInsertAndListKeepsOrder(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	inputs := []model.Alarm{
		{Hour: 8, Minute: 53, Description: "second"},
		{Hour: 8, Minute: 43, Description: "first"},
		{Hour: 6, Minute: 0, Description: "third", Enabled: true},
	}
	for _, in := range inputs {
		if _, err := st.InsertAlarm(ctx, in); err != nil {
			t.Fatalf("insert alarm: %v", err)
		}
	}
	alarms, err := st.ListAlarms(ctx)
	if err != nil {
		t.Fatalf("list alarms: %v", err)
	}
	labels := make([]string, 0, len(alarms))
	for _, a := range alarms {
		if a.ID == "" || a.CreatedAt.IsZero() {
			t.Fatalf("expected id and timestamp to be filled: %+v", a)
		}
		labels = append(labels, a.Label()+" "+a.Description)
	}
	want := []string{"8:53 second", "8:43 first", "6:00 third"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if !alarms[2].Enabled || alarms[0].Enabled {
		t.Fatalf("enabled flags not preserved: %+v", alarms)
	}
}

func TestToggleAlarm(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	a, err := st.InsertAlarm(ctx, model.Alarm{Hour: 7, Minute: 30})
	if err != nil {
		t.Fatalf("insert alarm: %v", err)
	}
	on, err := st.ToggleAlarm(ctx, a.ID)
	if err != nil || !on {
		t.Fatalf("expected alarm enabled, got %v / %v", on, err)
	}
	on, err = st.ToggleAlarm(ctx, a.ID)
	if err != nil || on {
		t.Fatalf("expected alarm disabled, got %v / %v", on, err)
	}
	if _, err := st.ToggleAlarm(ctx, "missing"); !errors.Is(err, ErrAlarmNotFound) {
		t.Fatalf("expected ErrAlarmNotFound, got %v", err)
	}
}

func TestDeleteAlarm(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	a, err := st.InsertAlarm(ctx, model.Alarm{Hour: 7, Minute: 30})
	if err != nil {
		t.Fatalf("insert alarm: %v", err)
	}
	if err := st.DeleteAlarm(ctx, a.ID); err != nil {
		t.Fatalf("delete alarm: %v", err)
	}
	if err := st.DeleteAlarm(ctx, a.ID); !errors.Is(err, ErrAlarmNotFound) {
		t.Fatalf("expected ErrAlarmNotFound on second delete, got %v", err)
	}
	alarms, err := st.ListAlarms(ctx)
	if err != nil {
		t.Fatalf("list alarms: %v", err)
	}
	if len(alarms) != 0 {
		t.Fatalf("expected empty list, got %d", len(alarms))
	}
}

func TestMemoryStoresAreIsolated(t *testing.T) {
	a := openTestStore(t)
	b := openTestStore(t)
	ctx := context.Background()
	if _, err := a.InsertAlarm(ctx, model.Alarm{Hour: 1}); err != nil {
		t.Fatalf("insert alarm: %v", err)
	}
	alarms, err := b.ListAlarms(ctx)
	if err != nil {
		t.Fatalf("list alarms: %v", err)
	}
	if len(alarms) != 0 {
		t.Fatalf("expected separate in-memory databases")
	}
}

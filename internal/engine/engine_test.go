package engine

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"taskquest/internal/logging"
	"taskquest/internal/storage"
)

func openTestDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := storage.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, path
}

func fixedClock() func() time.Time {
	now := testNow
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func newTestService(t *testing.T, db *sql.DB, opts ...Option) *Service {
	t.Helper()
	opts = append([]Option{WithClock(fixedClock())}, opts...)
	svc, err := NewService(context.Background(), db, logging.Discard(), opts...)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestServiceFreshInstallWritesDefaults(t *testing.T) {
	db, _ := openTestDB(t)
	ctx := context.Background()
	svc := newTestService(t, db)

	st := svc.State()
	if len(st.Tasks) != 0 || st.Progress != DefaultProgress() || len(st.Achievements) != 4 {
		t.Fatalf("fresh state = %+v", st)
	}

	text, ok, err := storage.NewKVRepo(db).Get(ctx, storage.KeyAchievements)
	if err != nil || !ok {
		t.Fatalf("achievements not persisted: ok=%v err=%v", ok, err)
	}
	got, err := storage.DecodeAchievements(text)
	if err != nil || len(got) != 4 {
		t.Fatalf("persisted achievements = %d, %v", len(got), err)
	}
}

func TestServicePersistsAcrossReload(t *testing.T) {
	db, _ := openTestDB(t)
	ctx := context.Background()
	svc := newTestService(t, db)

	added, err := svc.AddTask(ctx, TaskInput{Title: "Read a chapter", Difficulty: DifficultyMedium, Category: CategoryLearning})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if added.Task.ID == "" || len(added.State.Tasks) != 1 {
		t.Fatalf("add result = %+v", added)
	}
	res, err := svc.ToggleComplete(ctx, added.Task.ID)
	if err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}
	if len(res.Unlocked) != 1 {
		t.Fatalf("unlocked=%d, want 1", len(res.Unlocked))
	}

	reloaded := newTestService(t, db)
	st := reloaded.State()
	if len(st.Tasks) != 1 {
		t.Fatalf("tasks=%d, want 1", len(st.Tasks))
	}
	task := st.Tasks[0]
	if !task.Completed || task.CompletedAt == nil || task.XPReward != 25 {
		t.Fatalf("reloaded task = %+v", task)
	}
	if !task.CompletedAt.Equal(*res.Task.CompletedAt) {
		t.Fatalf("completedAt=%v, want %v", task.CompletedAt, res.Task.CompletedAt)
	}
	if st.Progress.TotalXP != 25 || st.Progress.TasksCompleted != 1 {
		t.Fatalf("progress = %+v", st.Progress)
	}
	if !st.Achievements[0].Unlocked || st.Achievements[0].UnlockedAt == nil {
		t.Fatalf("achievement unlock not persisted")
	}

	entries, err := reloaded.Journal(ctx, 10)
	if err != nil {
		t.Fatalf("Journal: %v", err)
	}
	if len(entries) != 1 || entries[0].XPDelta != 25 || entries[0].TaskID != task.ID {
		t.Fatalf("journal = %+v", entries)
	}
}

func TestServiceMalformedTasksFailSoft(t *testing.T) {
	db, _ := openTestDB(t)
	ctx := context.Background()
	if err := storage.NewKVRepo(db).Put(ctx, storage.KeyTasks, "{broken"); err != nil {
		t.Fatalf("put: %v", err)
	}

	var logs bytes.Buffer
	svc, err := NewService(ctx, db, logging.New(&logs, "info"))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if len(svc.State().Tasks) != 0 {
		t.Fatalf("expected empty tasks")
	}
	if !strings.Contains(logs.String(), "decode persisted tasks") {
		t.Fatalf("decode failure not logged: %s", logs.String())
	}

	if _, err := svc.AddTask(ctx, TaskInput{Title: "still works", Difficulty: DifficultyEasy}); err != nil {
		t.Fatalf("AddTask after bad load: %v", err)
	}
}

func TestServiceMalformedAchievementsUseDefaults(t *testing.T) {
	db, _ := openTestDB(t)
	ctx := context.Background()
	if err := storage.NewKVRepo(db).Put(ctx, storage.KeyAchievements, "{broken"); err != nil {
		t.Fatalf("put: %v", err)
	}

	var logs bytes.Buffer
	svc, err := NewService(ctx, db, logging.New(&logs, "info"), WithClock(fixedClock()))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if !strings.Contains(logs.String(), "decode persisted achievements") {
		t.Fatalf("decode failure not logged: %s", logs.String())
	}

	achievements := svc.State().Achievements
	if len(achievements) != 4 {
		t.Fatalf("achievements=%d, want 4 defaults", len(achievements))
	}
	for _, a := range achievements {
		if a.Unlocked || a.UnlockedAt != nil {
			t.Fatalf("default achievement %q should be locked", a.Title)
		}
	}

	added, err := svc.AddTask(ctx, TaskInput{Title: "Stretch", Difficulty: DifficultyEasy, Category: CategoryHealth})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	res, err := svc.ToggleComplete(ctx, added.Task.ID)
	if err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}
	if len(res.Unlocked) != 1 || res.Unlocked[0].Title != "First Quest" {
		t.Fatalf("unlocked = %+v, want First Quest", res.Unlocked)
	}

	// The repaired set is written back with the next command.
	text, _, err := storage.NewKVRepo(db).Get(ctx, storage.KeyAchievements)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	persisted, err := storage.DecodeAchievements(text)
	if err != nil || len(persisted) != 4 || !persisted[0].Unlocked {
		t.Fatalf("persisted achievements = %+v, %v", persisted, err)
	}
}

func TestServiceConcurrentTogglesAreSerialized(t *testing.T) {
	db, _ := openTestDB(t)
	ctx := context.Background()
	svc := newTestService(t, db)

	var ids []string
	for _, title := range []string{"one", "two", "three", "four"} {
		added, err := svc.AddTask(ctx, TaskInput{Title: title, Difficulty: DifficultyEasy})
		if err != nil {
			t.Fatalf("AddTask: %v", err)
		}
		ids = append(ids, added.Task.ID)
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(ids)*2)
	for _, id := range ids {
		wg.Add(2)
		go func(id string) {
			defer wg.Done()
			_, err := svc.ToggleComplete(ctx, id)
			errs <- err
		}(id)
		go func() {
			defer wg.Done()
			_ = svc.State()
			errs <- svc.Reload(ctx)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent command: %v", err)
		}
	}

	p := svc.State().Progress
	if p.TotalXP != 40 || p.TasksCompleted != 4 {
		t.Fatalf("progress = %+v, want 40 XP over 4 tasks", p)
	}
	if len(svc.State().Completed()) != 4 {
		t.Fatalf("completed=%d, want 4", len(svc.State().Completed()))
	}

	reloaded := newTestService(t, db).State().Progress
	if reloaded.TotalXP != 40 {
		t.Fatalf("persisted totalXP=%d, want 40", reloaded.TotalXP)
	}
}

func TestServiceRederivesLevelFromTotalXP(t *testing.T) {
	db, _ := openTestDB(t)
	ctx := context.Background()
	if err := storage.NewProgressRepo(db).Upsert(ctx, storage.Progress{Level: 9, CurrentXP: 3, TotalXP: 230, TasksCompleted: 5}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	p := newTestService(t, db).State().Progress
	if p.Level != 3 || p.CurrentXP != 30 || p.TotalXP != 230 {
		t.Fatalf("progress = %+v", p)
	}
}

func TestServicePersistFailureKeepsMemoryState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	var logs bytes.Buffer
	svc, err := NewService(ctx, db, logging.New(&logs, "info"))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	_ = db.Close()

	res, err := svc.AddTask(ctx, TaskInput{Title: "offline", Difficulty: DifficultyHard})
	if err != nil {
		t.Fatalf("AddTask should not fail on persistence error: %v", err)
	}
	toggled, err := svc.ToggleComplete(ctx, res.Task.ID)
	if err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}
	if toggled.State.Progress.TotalXP != 50 || svc.State().Progress.TotalXP != 50 {
		t.Fatalf("in-memory progress lost")
	}
	if !strings.Contains(logs.String(), "persist state failed") {
		t.Fatalf("persistence failure not logged: %s", logs.String())
	}
}

func TestServiceRetriesCollidingIDs(t *testing.T) {
	db, _ := openTestDB(t)
	ctx := context.Background()
	ids := []string{"same", "same", "other"}
	svc := newTestService(t, db, WithIDGenerator(func() string {
		id := ids[0]
		if len(ids) > 1 {
			ids = ids[1:]
		}
		return id
	}))

	first, err := svc.AddTask(ctx, TaskInput{Title: "one", Difficulty: DifficultyEasy})
	if err != nil {
		t.Fatalf("AddTask one: %v", err)
	}
	second, err := svc.AddTask(ctx, TaskInput{Title: "two", Difficulty: DifficultyEasy})
	if err != nil {
		t.Fatalf("AddTask two: %v", err)
	}
	if first.Task.ID != "same" || second.Task.ID != "other" {
		t.Fatalf("ids = %q, %q", first.Task.ID, second.Task.ID)
	}
}

func TestServiceUpdateAndReset(t *testing.T) {
	db, _ := openTestDB(t)
	ctx := context.Background()
	svc := newTestService(t, db)

	added, err := svc.AddTask(ctx, TaskInput{Title: "Jog", Difficulty: DifficultyEasy, Category: CategoryHealth})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	in := InputFromTask(added.Task)
	in.Difficulty = DifficultyHard
	updated, err := svc.UpdateTask(ctx, added.Task.ID, in)
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Task.XPReward != 10 || updated.Task.Difficulty != "hard" {
		t.Fatalf("updated = %+v", updated.Task)
	}
	if _, err := svc.ToggleComplete(ctx, added.Task.ID); err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}

	reset, err := svc.Reset(ctx)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if len(reset.State.Tasks) != 0 || reset.State.Progress != DefaultProgress() {
		t.Fatalf("reset state = %+v", reset.State)
	}

	reloaded := newTestService(t, db)
	st := reloaded.State()
	if len(st.Tasks) != 0 || st.Progress != DefaultProgress() || CountUnlocked(st.Achievements) != 0 {
		t.Fatalf("reset not persisted: %+v", st)
	}
	entries, err := reloaded.Journal(ctx, 0)
	if err != nil || len(entries) != 0 {
		t.Fatalf("journal after reset = %d, %v", len(entries), err)
	}
}

package engine

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskquest/internal/storage"
)

// Service owns the current State. Each command runs the pure transition,
// swaps in the new state and then persists it as one explicit step. A failed
// write is logged and the in-memory state stays authoritative.
//
// Commands are serialized: a transition and its persist complete before the
// next command reads the state.
type Service struct {
	db    *sql.DB
	log   *slog.Logger
	now   func() time.Time
	newID func() string

	mu    sync.Mutex
	state State
}

type Option func(*Service)

// WithClock overrides the time source used for createdAt/completedAt/unlockedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides the task id source.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// CommandResult is returned by AddTask, UpdateTask and Reset.
type CommandResult struct {
	Task   storage.Task
	Events []Event
	State  State
}

// NewService loads persisted state from db. Unreadable blobs are logged and
// replaced by defaults.
func NewService(ctx context.Context, db *sql.DB, logger *slog.Logger, opts ...Option) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		db:    db,
		log:   logger,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// State returns a copy of the current state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Reload replaces the in-memory state with what is persisted.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, initialized, err := s.load(ctx)
	if err != nil {
		return err
	}
	s.state = st
	if initialized {
		s.persist(ctx, st, persistOpts{})
	}
	return nil
}

func (s *Service) load(ctx context.Context) (st State, initialized bool, err error) {
	kv := storage.NewKVRepo(s.db)
	st = NewState()

	tasksText, ok, err := kv.Get(ctx, storage.KeyTasks)
	if err != nil {
		return State{}, false, err
	}
	if !ok {
		tasksText = "[]"
	}
	tasks, err := storage.DecodeTasks(tasksText)
	if err != nil {
		s.log.Error("decode persisted tasks, starting empty", slog.String("key", storage.KeyTasks), slog.Any("err", err))
	}
	st.Tasks = tasks

	achText, _, err := kv.Get(ctx, storage.KeyAchievements)
	if err != nil {
		return State{}, false, err
	}
	if achText == "" {
		initialized = true
	} else {
		achievements, err := storage.DecodeAchievements(achText)
		if err != nil {
			s.log.Error("decode persisted achievements, using defaults", slog.String("key", storage.KeyAchievements), slog.Any("err", err))
		} else {
			st.Achievements = achievements
		}
	}

	p, err := storage.NewProgressRepo(s.db).Get(ctx)
	if err != nil {
		return State{}, false, err
	}
	if p != nil {
		// Level and CurrentXP are derived; never trust the stored copies.
		st.Progress = withTotalXP(*p, p.TotalXP)
	}
	return st, initialized, nil
}

type persistOpts struct {
	entry        *storage.CompletionEntry
	clearJournal bool
}

func (s *Service) persist(ctx context.Context, st State, opts persistOpts) {
	if err := s.save(ctx, st, opts); err != nil {
		s.log.Error("persist state failed, keeping in-memory state", slog.Any("err", err))
	}
}

func (s *Service) save(ctx context.Context, st State, opts persistOpts) error {
	tasksText, err := storage.EncodeTasks(st.Tasks)
	if err != nil {
		return err
	}
	achText, err := storage.EncodeAchievements(st.Achievements)
	if err != nil {
		return err
	}

	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		kv := storage.NewKVRepo(tx)
		if err := kv.Put(ctx, storage.KeyTasks, tasksText); err != nil {
			return err
		}
		if err := kv.Put(ctx, storage.KeyAchievements, achText); err != nil {
			return err
		}
		if err := storage.NewProgressRepo(tx).Upsert(ctx, st.Progress); err != nil {
			return err
		}
		journal := storage.NewCompletionRepo(tx)
		if opts.clearJournal {
			if err := journal.DeleteAll(ctx); err != nil {
				return err
			}
		}
		if opts.entry != nil {
			if _, err := journal.Insert(ctx, *opts.entry); err != nil {
				return err
			}
		}
		return nil
	})
}

// uniqueID must be called with mu held.
func (s *Service) uniqueID() string {
	for i := 0; i < 8; i++ {
		id := s.newID()
		if s.state.indexOf(id) < 0 {
			return id
		}
	}
	return s.newID()
}

// ResolveID maps an exact id or unique prefix to a task id.
func (s *Service) ResolveID(ref string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ResolveID(ref)
}

func (s *Service) AddTask(ctx context.Context, in TaskInput) (*CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, task, events, err := s.state.AddTask(in, s.uniqueID(), s.now())
	if err != nil {
		return nil, err
	}
	s.state = next
	s.persist(ctx, next, persistOpts{})
	s.log.Debug("task added", slog.String("id", task.ID), slog.Int("xp_reward", task.XPReward))
	return &CommandResult{Task: task, Events: events, State: next.Clone()}, nil
}

func (s *Service) UpdateTask(ctx context.Context, id string, in TaskInput) (*CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, task, events, err := s.state.UpdateTask(id, in)
	if err != nil {
		return nil, err
	}
	s.state = next
	s.persist(ctx, next, persistOpts{})
	s.log.Debug("task updated", slog.String("id", task.ID))
	return &CommandResult{Task: task, Events: events, State: next.Clone()}, nil
}

func (s *Service) ToggleComplete(ctx context.Context, id string) (*ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	next, res, err := s.state.ToggleComplete(id, now)
	if err != nil {
		return nil, err
	}
	s.state = next
	s.persist(ctx, next, persistOpts{entry: &storage.CompletionEntry{
		TaskID:     res.Task.ID,
		Title:      res.Task.Title,
		XPDelta:    res.XPDelta,
		LevelAfter: res.LevelAfter,
		OccurredAt: now,
	}})
	s.log.Debug("task toggled",
		slog.String("id", res.Task.ID),
		slog.Bool("completed", res.Completed),
		slog.Int("xp_delta", res.XPDelta),
		slog.Int("unlocked", len(res.Unlocked)),
	)
	res.State = next.Clone()
	return res, nil
}

// Reset wipes tasks, progress, achievements and the journal. It is
// irreversible; the presentation layer is responsible for confirmation.
func (s *Service) Reset(ctx context.Context) (*CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, events := s.state.Reset()
	s.state = next
	s.persist(ctx, next, persistOpts{clearJournal: true})
	s.log.Info("state reset")
	return &CommandResult{Events: events, State: next.Clone()}, nil
}

// Journal returns the most recent completion journal entries, newest first.
func (s *Service) Journal(ctx context.Context, limit int) ([]storage.CompletionEntry, error) {
	return storage.NewCompletionRepo(s.db).ListRecent(ctx, limit)
}

// CompletedSince counts completions (not reopenings) recorded since t.
func (s *Service) CompletedSince(ctx context.Context, t time.Time) (int, error) {
	return storage.NewCompletionRepo(s.db).CountSince(ctx, t)
}

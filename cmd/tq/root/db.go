package root

import (
	"context"
	"fmt"
	"io"
	"os"

	"taskquest/internal/config"
	"taskquest/internal/engine"
	"taskquest/internal/logging"
	"taskquest/internal/storage"
	"taskquest/internal/ui"
)

func openService(ctx context.Context) (*engine.Service, func(), error) {
	cfg, err := config.Load(config.Config{DBPath: flagDB, LogLevel: flagLogLevel})
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)

	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	svc, err := engine.NewService(ctx, db, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}

// printEvents writes engine notifications in order.
func printEvents(w io.Writer, events []engine.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case engine.EventLevelUp:
			fmt.Fprintln(w, ui.BadgeLevelUp+" "+ui.Gold.Render(ev.Message()))
		case engine.EventAchievementUnlocked:
			fmt.Fprintln(w, ui.Gold.Render(ui.IconTrophy+" "+ev.Message()))
		case engine.EventQuestReopened, engine.EventReset:
			fmt.Fprintln(w, ui.Warn.Render(ui.IconUndo+" "+ev.Message()))
		default:
			fmt.Fprintln(w, ui.Good.Render(ui.IconSparkle+" "+ev.Message()))
		}
	}
}

// Package app wires configuration, storage, the dialogue engine and the
// Telegram transport into a runnable bot.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	coreconfig "github.com/dateindesert/desertbot/core/config"
	"github.com/dateindesert/desertbot/core/database"
	"github.com/dateindesert/desertbot/core/logger"
	"github.com/dateindesert/desertbot/core/telegram"
	tghelpers "github.com/dateindesert/desertbot/core/telegram/helpers"
	"github.com/dateindesert/desertbot/internal/catalog"
	"github.com/dateindesert/desertbot/internal/dialog"
	"github.com/dateindesert/desertbot/internal/leads"
	"github.com/dateindesert/desertbot/internal/session"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"
)

// App owns the long-lived components of the bot process.
type App struct {
	cfg    *coreconfig.Config
	db     *sqlx.DB
	engine *dialog.Engine
}

// New builds the application: logger, optional leads database with
// migrations, catalog, session store and dialogue engine.
func New(cfg *coreconfig.Config) (*App, error) {
	if err := logger.InitLogger(cfg); err != nil {
		return nil, fmt.Errorf("app: logger init: %w", err)
	}

	a := &App{cfg: cfg}

	var recorder leads.Recorder = leads.Nop{}
	if cfg.Database.Enabled() {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("app: database: %w", err)
		}
		if err := database.RunMigrations(cfg.Database); err != nil {
			db.Close()
			return nil, fmt.Errorf("app: migrations: %w", err)
		}
		a.db = db
		recorder = leads.NewRepository(db)
	} else {
		logger.Info(context.Background(), "service.leads", "leads.disabled")
	}

	cat, err := catalog.New(eventsFromConfig(cfg.Catalog.Events))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("app: catalog: %w", err)
	}
	logger.Info(context.Background(), "service.catalog", "catalog.loaded",
		slog.Int("count", cat.Len()),
	)

	a.engine = dialog.New(cat, session.NewStore(), recorder)
	return a, nil
}

func eventsFromConfig(in []coreconfig.EventConfig) []catalog.Event {
	out := make([]catalog.Event, 0, len(in))
	for _, ev := range in {
		out = append(out, catalog.Event{
			ID:             ev.ID,
			Name:           ev.Name,
			Location:       ev.Location,
			Date:           ev.Date,
			Price:          ev.Price,
			DressCode:      ev.DressCode,
			AgeRestriction: ev.AgeRestriction,
		})
	}
	return out
}

// Engine exposes the dialogue engine, mainly for tests.
func (a *App) Engine() *dialog.Engine {
	return a.engine
}

// TelegramRunOptions assembles the transport configuration: middleware
// chain and the single text route that feeds the dialogue engine.
func (a *App) TelegramRunOptions() telegram.RunOptions {
	return telegram.RunOptions{
		Config:      a.cfg,
		Middlewares: telegram.DefaultMiddlewares(a.cfg, nil),
		Routes: []telegram.Route{
			{Endpoint: tele.OnText, Handler: a.handleText},
		},
	}
}

func (a *App) handleText(c tele.Context) error {
	ctx := tghelpers.WithHandler(c, "dialog.text")
	start := time.Now()

	sender := c.Sender()
	if sender == nil {
		return nil
	}
	userID := strconv.FormatInt(sender.ID, 10)

	replies := a.engine.Handle(ctx, userID, c.Text())

	var sendErr error
	for _, reply := range replies {
		if err := tghelpers.SendText(c, reply); err != nil {
			sendErr = err
			break
		}
	}

	logger.Info(ctx, "tg", "handler.done",
		slog.String("handler", "dialog.text"),
		slog.String("user_id", userID),
		slog.String("status", logger.Status(sendErr)),
		slog.Int("replies", len(replies)),
		slog.Duration("duration", logger.Took(start)),
	)
	return sendErr
}

// Close releases resources owned by the app. Safe to call more than once.
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
		a.db = nil
	}
}

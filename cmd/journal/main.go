package main

import (
	"context"
	"flag"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest"

	"github.com/shubh-37/journal-companion/config"
	"github.com/shubh-37/journal-companion/internal/agents"
	"github.com/shubh-37/journal-companion/internal/api"
	"github.com/shubh-37/journal-companion/internal/cache"
	"github.com/shubh-37/journal-companion/internal/database"
	"github.com/shubh-37/journal-companion/internal/filestore"
	"github.com/shubh-37/journal-companion/internal/journal"
	slackpkg "github.com/shubh-37/journal-companion/internal/slack"
)

var configFile = flag.String("f", "", "the config file (built-in defaults when empty)")

type repositories struct {
	entries  journal.EntryRepository
	settings journal.SettingsRepository
	prompts  journal.PromptRepository
	close    func()
}

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configFile)
	logx.Must(err)
	logx.Must(cfg.Validate())

	server := rest.MustNewServer(cfg.RestConf, rest.WithCors())
	defer server.Stop()

	logx.Info("🚀 Journal Companion Starting...")

	ctx := context.Background()

	repos, err := openRepositories(ctx, cfg)
	logx.Must(err)
	defer repos.close()

	// Initialize AI Agents
	ai, err := agents.New(agents.Config{
		APIKey:  cfg.AI.APIKey,
		BaseURL: cfg.AI.BaseURL,
		Model:   cfg.AI.Model,
		Timeout: cfg.AI.Timeout,
	})
	logx.Must(err)

	trendCache, err := cache.NewTrendCache(cfg.TrendCacheTTL)
	logx.Must(err)

	svc := journal.NewService(repos.entries, repos.settings, repos.prompts, ai,
		journal.WithAITimeout(cfg.AI.Timeout),
		journal.WithTrendCache(trendCache),
	)

	api.RegisterHandlers(server, svc)

	if cfg.Slack.Enabled() {
		logx.Must(startSlack(server, cfg.Slack, svc))
	} else {
		logx.Info("💬 Slack: disabled (SLACK_BOT_TOKEN not set)")
	}

	logx.Info("✅ System initialized successfully")
	logx.Infof("🤖 AI Agents: Categorizer & Companion active (model %s)", cfg.AI.Model)
	logx.Infof("📓 Serving journal API at %s:%d", cfg.Host, cfg.Port)

	server.Start()
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	if cfg.Storage.Backend == config.StoragePostgres {
		// Connect to database
		db, err := database.NewDB(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, err
		}

		// Create tables
		if err := db.CreateTables(ctx); err != nil {
			db.Close()
			return nil, err
		}
		logx.Info("📊 Database: Connected and ready")

		return &repositories{
			entries:  database.NewEntryRepository(db),
			settings: database.NewSettingsRepository(db),
			prompts:  database.NewPromptRepository(db),
			close:    db.Close,
		}, nil
	}

	store, err := filestore.New(cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}
	logx.Infof("📁 Storage: JSON files in %s", store.Root())
	return &repositories{
		entries:  store,
		settings: store,
		prompts:  store,
		close:    func() {},
	}, nil
}

func startSlack(server *rest.Server, cfg config.SlackConf, svc *journal.Service) error {
	client, err := slackpkg.NewClient(cfg.BotToken)
	if err != nil {
		return err
	}

	commandHandler, err := slackpkg.NewCommandHandler(client, svc)
	if err != nil {
		return err
	}

	messageHandler := slackpkg.NewMessageHandler(client, commandHandler)
	if cfg.ChannelID != "" {
		messageHandler.RestrictTo(cfg.ChannelID)
	}
	reactionHandler := slackpkg.NewReactionHandler(client, commandHandler)

	slackServer := slackpkg.NewServer(messageHandler, reactionHandler, cfg.SigningSecret)
	api.RegisterSlack(server, slackpkg.EventsPath, slackServer.HandleEvents)

	logx.Infof("💬 Slack: Connected and listening on %s", slackpkg.EventsPath)
	return nil
}

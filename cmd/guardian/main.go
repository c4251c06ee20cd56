package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	api "github.com/OvyFlash/telegram-bot-api"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/dresos/guardian/internal/adapters"
	"github.com/dresos/guardian/internal/adapters/llm/gemini"
	"github.com/dresos/guardian/internal/adapters/llm/openai"
	"github.com/dresos/guardian/internal/bot"
	"github.com/dresos/guardian/internal/config"
	"github.com/dresos/guardian/internal/handlers"
	"github.com/dresos/guardian/internal/infra"
	"github.com/dresos/guardian/internal/lifecycle"
	"github.com/dresos/guardian/internal/observability"
	"github.com/dresos/guardian/internal/policy"
	"github.com/dresos/guardian/internal/search"
	"github.com/dresos/guardian/internal/store"
)

var errExecutableChanged = errors.New("executable file was modified")

func main() {
	log.SetFormatter(&config.GuardianFormatter{})
	log.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatalln("cant load config")
	}
	log.SetLevel(log.Level(cfg.LogLevel))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	botAPI, err := api.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		log.WithError(err).Errorln("cant initialize bot api")
		time.Sleep(1 * time.Second)
		log.Fatalln("exiting")
	}
	if log.Level(cfg.LogLevel) == log.TraceLevel {
		botAPI.Debug = true
	}
	defer botAPI.StopReceivingUpdates()

	snapshot := store.NewSnapshot(filepath.Join(infra.GetWorkDir(cfg.DotPath), cfg.StoreFile))
	engine := policy.NewEngine(snapshot)
	defer engine.Flush()

	service := bot.NewService(botAPI, engine)

	llmLogger := log.WithField("context", "llm")
	var llmClient adapters.LLM
	switch cfg.LLM.Type {
	case "gemini":
		llmClient = gemini.NewGemini(cfg.LLM.APIKey, cfg.LLM.Model, llmLogger)
	default:
		llmClient = openai.NewOpenAI(cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.BaseURL, llmLogger)
	}

	bot.RegisterUpdateHandler("greeter", handlers.NewGreeter(service))
	bot.RegisterUpdateHandler("filter", handlers.NewWordFilter(service))
	bot.RegisterUpdateHandler("moderation", handlers.NewModeration(service))
	bot.RegisterUpdateHandler("welcome", handlers.NewWelcomeSetup(service))
	bot.RegisterUpdateHandler("owner", handlers.NewOwner(service, cfg.OwnerID))
	bot.RegisterUpdateHandler("assistant", handlers.NewAssistant(service, llmClient, search.NewClient()))

	runtime := lifecycle.NewRuntime(observability.NewServer(cfg.MetricsAddr))
	if err := runtime.Start(ctx); err != nil {
		log.WithError(err).Fatalln("cant start components")
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		if err := runtime.Stop(stopCtx); err != nil {
			log.WithError(err).Error("cant stop components")
		}
	}()

	updateConfig := api.NewUpdate(0)
	updateConfig.Timeout = 60
	processor := bot.NewUpdateProcessor(service)
	updates, updateErrs := bot.GetUpdatesChans(ctx, botAPI, updateConfig)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case err := <-updateErrs:
				return err
			case update, ok := <-updates:
				if !ok {
					return nil
				}
				infra.GoRecoverable(1, "process_update", func() {
					if err := processor.Process(ctx, &update); err != nil {
						log.WithError(err).Errorln("cant process update")
					}
				})
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})
	g.Go(func() error {
		select {
		case <-infra.MonitorExecutable(ctx):
			return errExecutableChanged
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	log.Infoln("guardian is up")
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Errorln("shutting down")
	}
}

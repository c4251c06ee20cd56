package bot

import (
	api "github.com/OvyFlash/telegram-bot-api"

	"github.com/dresos/guardian/internal/policy"
	"github.com/dresos/guardian/internal/tg"
)

type ServiceBot interface {
	GetBot() *api.BotAPI
	GetOps() *tg.Operations
}

type ServiceEngine interface {
	GetEngine() *policy.Engine
}

type Service interface {
	ServiceBot
	ServiceEngine
}

type service struct {
	bot    *api.BotAPI
	ops    *tg.Operations
	engine *policy.Engine
}

func NewService(bot *api.BotAPI, engine *policy.Engine) *service {
	return &service{
		bot:    bot,
		ops:    tg.NewOperations(bot),
		engine: engine,
	}
}

func (s *service) GetBot() *api.BotAPI {
	return s.bot
}

func (s *service) GetOps() *tg.Operations {
	return s.ops
}

func (s *service) GetEngine() *policy.Engine {
	return s.engine
}

package app

import (
	"context"

	"github.com/carousell/ct-go/pkg/logger"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/nguyentranbao-ct/support-desk/internal/config"
	"github.com/nguyentranbao-ct/support-desk/internal/kafka"
	"github.com/nguyentranbao-ct/support-desk/internal/repo/llm"
	"github.com/nguyentranbao-ct/support-desk/internal/server"
	"github.com/nguyentranbao-ct/support-desk/internal/usecase"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"
)

func Invoke(funcs ...any) *fx.App {
	log := logger.MustNamed("app")
	conf := config.MustLoad()
	log.Debugw("config loaded", log.Reflect("config", conf))
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Unwrap().Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Provide(
			newGenkitClient,
			newRepositories,
			newActivityProducer,

			llm.NewGenkitCompleter,
			llm.NewSuggestionService,

			usecase.NewUserUsecase,
			usecase.NewTicketUsecase,

			server.NewUserController,
			server.NewTicketController,
		),
		fx.Supply(conf),
		fx.Invoke(InitializeSeedData),
		fx.Invoke(funcs...),
	)
}

func newGenkitClient(cfg *config.Config) (*genkit.Genkit, error) {
	ctx := context.Background()
	googleAI := &googlegenai.GoogleAI{
		APIKey: cfg.LLM.GoogleAIAPIKey,
	}
	return genkit.Init(ctx, genkit.WithPlugins(googleAI)), nil
}

func newActivityProducer(lc fx.Lifecycle, cfg *config.Config) kafka.ActivityEventProducer {
	producer := kafka.NewActivityEventProducer(cfg)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return producer.Close()
		},
	})
	return producer
}

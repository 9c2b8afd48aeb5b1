package router

import (
	app "github.com/fitlifeai/fitlife-backend/internal/application"
	"github.com/fitlifeai/fitlife-backend/internal/container"
	pginfra "github.com/fitlifeai/fitlife-backend/internal/infrastructure/postgres"
	handlers "github.com/fitlifeai/fitlife-backend/internal/interface/http"
	"github.com/fitlifeai/fitlife-backend/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it with the registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	rdb := container.GetRedis()
	jwt := container.GetJWT()

	users := pginfra.NewUserRepository(pool)
	suggestions := pginfra.NewSuggestionRepository(pool)
	transactions := pginfra.NewTransactionRepository(pool)
	feedback := pginfra.NewFeedbackRepository(pool)

	userSvc := app.NewUserService(users, suggestions, transactions, jwt,
		app.NewRedisTokenStore(rdb),
		container.GetRabbitPub(), logger, cfg.TrialPeriod, cfg.MailSendEnabled)

	suggestionSvc := app.NewSuggestionService(users, suggestions,
		container.GetLLM(), app.NewEvaluator(), rdb, logger,
		container.GetES(), cfg.ESSuggestionsIndex)

	billingSvc := app.NewBillingService(users, transactions, container.GetCheckout(),
		app.BillingConfig{
			Amount:        cfg.PremiumAmount,
			Currency:      cfg.PremiumCurrency,
			SuccessURL:    cfg.CheckoutSuccessURL,
			CancelURL:     cfg.CheckoutCancelURL,
			WebhookSecret: cfg.StripeWebhookSecret,
		}, container.GetRabbitPub(), logger, cfg.MailSendEnabled)

	feedbackSvc := app.NewFeedbackService(feedback, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(userSvc, logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), jwt))
	r.Add(modules.NewSuggestionModule(handlers.NewSuggestionHandler(suggestionSvc, logger), jwt))
	r.Add(modules.NewPaymentModule(handlers.NewPaymentHandler(billingSvc, logger), jwt))
	r.Add(modules.NewFeedbackModule(handlers.NewFeedbackHandler(feedbackSvc, logger)))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}

package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/fitlifeai/fitlife-backend/config"
	"github.com/fitlifeai/fitlife-backend/pkg/checkout"
	"github.com/fitlifeai/fitlife-backend/pkg/helpers"
	"github.com/fitlifeai/fitlife-backend/pkg/llm"
	"github.com/fitlifeai/fitlife-backend/pkg/mailer"
)

// app-level container to share constructed components across packages
// Router modules auto-wire from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client

	jwtManager *helpers.JWTManager

	mailgunClient  *mailer.Mailgun
	rabbitPub      *helpers.RabbitPublisher
	esClient       *elasticsearch.Client
	llmClient      *llm.Client
	checkoutClient *checkout.Client
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

func SetMailgun(m *mailer.Mailgun)            { mailgunClient = m }
func GetMailgun() *mailer.Mailgun             { return mailgunClient }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
func SetLLM(c *llm.Client)                    { llmClient = c }
func GetLLM() *llm.Client                     { return llmClient }
func SetCheckout(c *checkout.Client)          { checkoutClient = c }
func GetCheckout() *checkout.Client           { return checkoutClient }

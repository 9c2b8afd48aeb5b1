package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/fitlifeai/fitlife-backend/internal/domain/entity"
	repo "github.com/fitlifeai/fitlife-backend/internal/domain/repository"
	"github.com/fitlifeai/fitlife-backend/pkg/helpers"
)

const (
	historyLimit    = 10
	historyCacheTTL = 5 * time.Minute
)

// Generator produces a text completion from a system instruction and a user
// prompt. Satisfied by *llm.Client; tests plug in a fake.
type Generator interface {
	Generate(ctx context.Context, systemMsg, userMsg string) (string, error)
}

// SuggestionService generates, lists, searches and deletes AI suggestions.
// Generation is gated by the entitlement evaluator; history reads go through a
// short-lived Redis cache.
type SuggestionService struct {
	Users       repo.UserRepository
	Suggestions repo.SuggestionRepository
	LLM         Generator
	Entitlement *Evaluator
	Redis       *redis.Client
	Logger      *logrus.Logger
	ES          *elasticsearch.Client
	ESIndex     string
}

func NewSuggestionService(users repo.UserRepository, suggestions repo.SuggestionRepository,
	gen Generator, ent *Evaluator, rdb *redis.Client, logger *logrus.Logger,
	es *elasticsearch.Client, esIndex string) *SuggestionService {
	return &SuggestionService{
		Users:       users,
		Suggestions: suggestions,
		LLM:         gen,
		Entitlement: ent,
		Redis:       rdb,
		Logger:      logger,
		ES:          es,
		ESIndex:     esIndex,
	}
}

func keyHistory(userID, kind string) string {
	return "history:" + kind + ":" + userID
}

// Generate produces a suggestion of the given kind for the user behind the
// token. The entitlement gate runs here, after the user record is loaded, so
// a deleted account fails with ErrUserNotFound before any LLM spend.
func (s *SuggestionService) Generate(ctx context.Context, userID, kind string) (*entity.Suggestion, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if !s.Entitlement.CanUsePremiumFeature(u) {
		return nil, ErrTrialExpired
	}

	var system, prompt string
	switch kind {
	case entity.SuggestionWorkout:
		system, prompt = workoutPrompt(u)
	case entity.SuggestionNutrition:
		system, prompt = nutritionPrompt(u)
	default:
		return nil, fmt.Errorf("unknown suggestion kind %q", kind)
	}

	text, err := s.LLM.Generate(ctx, system, prompt)
	if err != nil {
		return nil, err
	}

	sg := &entity.Suggestion{
		ID:         uuid.NewString(),
		UserID:     u.ID,
		Kind:       kind,
		Suggestion: text,
	}
	if err := s.Suggestions.Create(sg); err != nil {
		return nil, err
	}

	s.invalidateHistory(ctx, u.ID, kind)
	_ = s.indexSuggestion(ctx, sg)
	return sg, nil
}

// History returns the user's most recent suggestions of a kind, newest first.
func (s *SuggestionService) History(ctx context.Context, userID, kind string) ([]*entity.Suggestion, error) {
	if s.Redis != nil {
		var cached []*entity.Suggestion
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, keyHistory(userID, kind), &cached); err == nil && ok {
			return cached, nil
		}
	}
	list, err := s.Suggestions.ListByUser(userID, kind, historyLimit)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, keyHistory(userID, kind), list, historyCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("history cache write failed")
		}
	}
	return list, nil
}

// Delete removes a suggestion the user owns. Someone else's id is
// indistinguishable from a missing one.
func (s *SuggestionService) Delete(ctx context.Context, userID, kind, id string) error {
	if err := s.Suggestions.DeleteOwned(id, userID); err != nil {
		return err
	}
	s.invalidateHistory(ctx, userID, kind)
	s.deleteFromIndex(ctx, id)
	return nil
}

func (s *SuggestionService) invalidateHistory(ctx context.Context, userID, kind string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, keyHistory(userID, kind)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("history cache invalidation failed")
	}
}

func (s *SuggestionService) indexSuggestion(ctx context.Context, sg *entity.Suggestion) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         sg.ID,
		"user_id":    sg.UserID,
		"kind":       sg.Kind,
		"suggestion": sg.Suggestion,
		"created_at": sg.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: sg.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("suggestion_id", sg.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("suggestion_id", sg.ID).Warn("es index response error")
	}
	return nil
}

func (s *SuggestionService) deleteFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	if res, err := req.Do(c, s.ES); err == nil {
		_ = res.Body.Close()
	}
}

// Search runs a full-text query over the caller's own suggestion history.
func (s *SuggestionService) Search(ctx context.Context, userID, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"match": map[string]any{"suggestion": q},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": userID},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func workoutPrompt(u *entity.User) (system, prompt string) {
	system = "Você é um personal trainer especialista em IA. Crie sugestões de treinos personalizados em português brasileiro. Seja específico com exercícios, séries, repetições e dicas importantes."

	var sb strings.Builder
	sb.WriteString("Crie uma sugestão de treino personalizada para:\n")
	writeProfile(&sb, u)
	if u.WorkoutType != "" {
		sb.WriteString(fmt.Sprintf("- Local de treino: %s\n", workoutLocation(u.WorkoutType)))
	}
	if u.CurrentActivities != "" {
		sb.WriteString(fmt.Sprintf("- Atividades atuais: %s\n", u.CurrentActivities))
	}
	sb.WriteString(`
Por favor, forneça um treino específico com:
1. Aquecimento (5-10 minutos)
2. Exercícios principais (séries x repetições)
3. Exercícios de resfriamento
4. Dicas importantes de segurança

Mantenha o treino prático e adequado ao nível do usuário.`)
	return system, sb.String()
}

func nutritionPrompt(u *entity.User) (system, prompt string) {
	system = "Você é um nutricionista especialista em IA. Crie sugestões de dietas personalizadas em português brasileiro, priorizando alimentos acessíveis. Seja específico com refeições, porções e dicas nutricionais importantes."

	var sb strings.Builder
	sb.WriteString("Crie uma sugestão de dieta personalizada para:\n")
	writeProfile(&sb, u)
	if u.DietaryRestrictions != "" {
		sb.WriteString(fmt.Sprintf("- Restrições alimentares: %s\n", u.DietaryRestrictions))
	}
	sb.WriteString(`
Por favor, forneça um plano alimentar com:
1. Café da manhã
2. Lanche da manhã
3. Almoço
4. Lanche da tarde
5. Jantar
6. Ceia (se necessário)

Inclua porções aproximadas e dicas nutricionais importantes.`)
	return system, sb.String()
}

func writeProfile(sb *strings.Builder, u *entity.User) {
	sb.WriteString(fmt.Sprintf("- Nome: %s\n", u.Name))
	sb.WriteString(fmt.Sprintf("- Idade: %d anos\n", u.Age))
	sb.WriteString(fmt.Sprintf("- Peso: %.1fkg\n", u.Weight))
	sb.WriteString(fmt.Sprintf("- Altura: %.0fcm\n", u.Height))
	sb.WriteString(fmt.Sprintf("- Objetivos: %s\n", u.Goals))
}

func workoutLocation(t string) string {
	switch t {
	case entity.WorkoutTypeGym:
		return "academia"
	case entity.WorkoutTypeHome:
		return "em casa, com pouco ou nenhum equipamento"
	case entity.WorkoutTypeOutdoor:
		return "ao ar livre"
	default:
		return t
	}
}

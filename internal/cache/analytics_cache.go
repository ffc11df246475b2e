// Package cache holds the in-process read-through cache of question response
// distributions. The cache is advisory: schema mutations invalidate entries
// best-effort, and a miss is always answered from the store.
package cache

import (
	"sync"
	"time"

	"mindwell-backend/internal/model"
	"mindwell-backend/internal/repository"
	"mindwell-backend/utilities"
)

// QuestionAnalytics is the cached distribution for one question.
type QuestionAnalytics struct {
	QuestionID         uint             `json:"question_id"`
	QuestionNumber     int              `json:"question_number"`
	QuestionText       string           `json:"question_text"`
	TotalResponses     int64            `json:"total_responses"`
	AverageScore       float64          `json:"average_score"`
	OptionDistribution map[string]int64 `json:"option_distribution"`
	LastUpdated        time.Time        `json:"last_updated"`
}

// AnalyticsCache serves response distributions keyed by question id,
// re-reading from the repositories on a miss.
type AnalyticsCache struct {
	assessmentRepo repository.AssessmentRepository
	questionRepo   repository.QuestionRepository

	mu      sync.RWMutex
	entries map[uint]*QuestionAnalytics
}

func NewAnalyticsCache(assessmentRepo repository.AssessmentRepository, questionRepo repository.QuestionRepository) *AnalyticsCache {
	return &AnalyticsCache{
		assessmentRepo: assessmentRepo,
		questionRepo:   questionRepo,
		entries:        make(map[uint]*QuestionAnalytics),
	}
}

// Subscribe registers the cache's invalidation hooks on the event bus.
func (c *AnalyticsCache) Subscribe(bus *utilities.EventBus) {
	invalidate := func(data interface{}) {
		payload, ok := data.(utilities.SchemaMutationPayload)
		if !ok {
			return
		}
		if payload.QuestionID != 0 {
			c.Invalidate(payload.QuestionID)
		} else {
			c.InvalidateAll()
		}
	}
	bus.Subscribe(utilities.EventQuestionCreated, invalidate)
	bus.Subscribe(utilities.EventQuestionUpdated, invalidate)
	bus.Subscribe(utilities.EventQuestionDeleted, invalidate)
	bus.Subscribe(utilities.EventAssessmentCompleted, func(interface{}) {
		c.InvalidateAll()
	})
}

// Get returns the analytics for a question, computing and caching them when
// absent.
func (c *AnalyticsCache) Get(questionID uint) (*QuestionAnalytics, error) {
	c.mu.RLock()
	entry, ok := c.entries[questionID]
	c.mu.RUnlock()
	if ok {
		return entry, nil
	}
	return c.refresh(questionID)
}

// ForType returns analytics for every question of a type.
func (c *AnalyticsCache) ForType(questions []model.AssessmentQuestion) ([]QuestionAnalytics, error) {
	result := make([]QuestionAnalytics, 0, len(questions))
	for i := range questions {
		entry, err := c.Get(questions[i].ID)
		if err != nil {
			return nil, err
		}
		result = append(result, *entry)
	}
	return result, nil
}

// Invalidate drops one cached entry.
func (c *AnalyticsCache) Invalidate(questionID uint) {
	c.mu.Lock()
	delete(c.entries, questionID)
	c.mu.Unlock()
}

// InvalidateAll drops every cached entry.
func (c *AnalyticsCache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[uint]*QuestionAnalytics)
	c.mu.Unlock()
}

func (c *AnalyticsCache) refresh(questionID uint) (*QuestionAnalytics, error) {
	question, err := c.questionRepo.GetByID(questionID)
	if err != nil {
		return nil, err
	}
	total, avg, err := c.assessmentRepo.ResponseStats(questionID)
	if err != nil {
		return nil, err
	}
	counts, err := c.assessmentRepo.CountResponsesByOption(questionID)
	if err != nil {
		return nil, err
	}

	countByOption := make(map[uint]int64, len(counts))
	for _, oc := range counts {
		countByOption[oc.OptionID] = oc.Count
	}
	distribution := make(map[string]int64, len(question.Options))
	for _, opt := range question.Options {
		distribution[opt.Text] = countByOption[opt.ID]
	}

	entry := &QuestionAnalytics{
		QuestionID:         question.ID,
		QuestionNumber:     question.QuestionNumber,
		QuestionText:       question.QuestionText,
		TotalResponses:     total,
		AverageScore:       avg,
		OptionDistribution: distribution,
		LastUpdated:        time.Now(),
	}

	c.mu.Lock()
	c.entries[questionID] = entry
	c.mu.Unlock()
	return entry, nil
}

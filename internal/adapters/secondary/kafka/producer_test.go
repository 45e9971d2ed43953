package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chungjai123/food-bot/internal/domain"
	"github.com/chungjai123/food-bot/internal/pkg/logger"
)

func testEvent() *domain.AnalysisSavedEvent {
	return &domain.AnalysisSavedEvent{
		AnalysisID: uuid.New(),
		UserID:     42,
		HistoryID:  7,
		Facts:      domain.NutritionFacts{Recognized: "Toast", Calories: 120},
		CreatedAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPublishAnalysisSaved(t *testing.T) {
	cfg := &Config{Topic: "food_bot.analysis_saved"}
	mock := mocks.NewSyncProducer(t, NewSaramaConfig(cfg))
	event := testEvent()

	mock.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
		var got domain.AnalysisSavedEvent
		if err := json.Unmarshal(value, &got); err != nil {
			return err
		}
		if got.AnalysisID != event.AnalysisID || got.HistoryID != 7 || got.Facts.Recognized != "Toast" {
			return errors.New("unexpected event payload")
		}
		return nil
	})

	p := NewProducerWith(mock, cfg, logger.Discard())
	require.NoError(t, p.PublishAnalysisSaved(context.Background(), event))
	require.NoError(t, p.Close())
}

func TestPublishAnalysisSavedFailure(t *testing.T) {
	cfg := &Config{Topic: "food_bot.analysis_saved"}
	mock := mocks.NewSyncProducer(t, NewSaramaConfig(cfg))
	mock.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewProducerWith(mock, cfg, logger.Discard())
	err := p.PublishAnalysisSaved(context.Background(), testEvent())
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	assert.Contains(t, err.Error(), "food_bot.analysis_saved")
	require.NoError(t, p.Close())
}

func TestConfigBrokers(t *testing.T) {
	cfg := &Config{Brokers: " a:9092, ,b:9092 "}
	assert.True(t, cfg.Enabled())
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.GetBrokers())

	assert.False(t, (&Config{}).Enabled())
}

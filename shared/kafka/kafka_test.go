package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type event struct {
	Name string `json:"name"`
}

func TestTypedMessageHandler(t *testing.T) {
	var seen []string
	h := &TypedMessageHandler[event]{
		Validate: func(msg *event) bool { return msg.Name != "" },
		Process: func(ctx context.Context, msg *event) error {
			if msg.Name == "fail" {
				return errors.New("boom")
			}
			seen = append(seen, msg.Name)
			return nil
		},
	}
	ctx := context.Background()

	mark, err := h.HandleMessage(ctx, []byte(`{"name":"ok"}`))
	require.NoError(t, err)
	assert.True(t, mark)

	mark, err = h.HandleMessage(ctx, []byte(`{}`))
	require.NoError(t, err)
	assert.False(t, mark, "invalid messages are left unmarked without AlwaysMark")

	mark, err = h.HandleMessage(ctx, []byte(`garbage`))
	require.NoError(t, err)
	assert.False(t, mark)

	mark, err = h.HandleMessage(ctx, []byte(`{"name":"fail"}`))
	assert.Error(t, err)
	assert.False(t, mark)

	h.AlwaysMark = true
	mark, _ = h.HandleMessage(ctx, []byte(`garbage`))
	assert.True(t, mark)

	assert.Equal(t, []string{"ok"}, seen)
}

func TestNewConsumerRequiresHandler(t *testing.T) {
	_, err := NewConsumer(ConsumerConfig{Brokers: []string{"localhost:9092"}, Topic: "t", GroupID: "g"})
	assert.Error(t, err)
}

func TestProducerPublish(t *testing.T) {
	mp := mocks.NewSyncProducer(t, nil)
	mp.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		assert.Equal(t, "catalog-updates", msg.Topic)

		key, err := msg.Key.Encode()
		require.NoError(t, err)
		assert.Equal(t, "french", string(key))

		value, err := msg.Value.Encode()
		require.NoError(t, err)
		var got event
		require.NoError(t, json.Unmarshal(value, &got))
		assert.Equal(t, "french", got.Name)
		return nil
	})
	mp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewProducerFrom(mp, "catalog-updates")
	require.NoError(t, p.Publish("french", event{Name: "french"}))

	err := p.Publish("german", event{Name: "german"})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	assert.Contains(t, err.Error(), "catalog-updates")

	require.NoError(t, p.Close())
}

func TestProducerRejectsUnencodable(t *testing.T) {
	p := NewProducerFrom(mocks.NewSyncProducer(t, nil), "t")
	assert.Error(t, p.Publish("k", make(chan int)))
}

// scriptedGroup runs one scripted step per Consume call, then blocks until
// the context ends
type scriptedGroup struct {
	mu     sync.Mutex
	steps  []func(h sarama.ConsumerGroupHandler) error
	calls  int
	errs   chan error
	closed sync.Once
}

func (g *scriptedGroup) Consume(ctx context.Context, topics []string, handler sarama.ConsumerGroupHandler) error {
	g.mu.Lock()
	i := g.calls
	g.calls++
	g.mu.Unlock()

	if i < len(g.steps) {
		return g.steps[i](handler)
	}
	if err := handler.Setup(nil); err != nil {
		return err
	}
	<-ctx.Done()
	return ctx.Err()
}

func (g *scriptedGroup) Errors() <-chan error { return g.errs }

func (g *scriptedGroup) Close() error {
	g.closed.Do(func() { close(g.errs) })
	return nil
}

func (g *scriptedGroup) Pause(map[string][]int32)  {}
func (g *scriptedGroup) Resume(map[string][]int32) {}
func (g *scriptedGroup) PauseAll()                 {}
func (g *scriptedGroup) ResumeAll()                {}

func (g *scriptedGroup) consumeCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func newScriptedConsumer(group *scriptedGroup, logger *zap.Logger) *Consumer {
	return &Consumer{
		consumer: group,
		handler:  &TypedMessageHandler[event]{Process: func(context.Context, *event) error { return nil }},
		topic:    "catalog-updates",
		groupID:  "test",
		ready:    make(chan bool),
		backoff:  time.Millisecond,
		logger:   logger,
	}
}

func TestStartAfterTransientConsumeFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	group := &scriptedGroup{
		errs: make(chan error),
		steps: []func(sarama.ConsumerGroupHandler) error{
			func(sarama.ConsumerGroupHandler) error { return sarama.ErrOutOfBrokers },
			func(sarama.ConsumerGroupHandler) error { return sarama.ErrOutOfBrokers },
		},
	}
	c := newScriptedConsumer(group, zap.New(core))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, c.Start(ctx))
	assert.Equal(t, 3, group.consumeCalls())
	assert.Equal(t, 1, logs.FilterMessage("Kafka consumer started").Len())
	assert.Equal(t, 2, logs.FilterMessage("Kafka consume failed").Len())

	cancel()
	require.NoError(t, c.Close())
}

func TestStartSurvivesSessionEndingInError(t *testing.T) {
	group := &scriptedGroup{
		errs: make(chan error),
		steps: []func(sarama.ConsumerGroupHandler) error{
			// session set up, then lost
			func(h sarama.ConsumerGroupHandler) error {
				if err := h.Setup(nil); err != nil {
					return err
				}
				return sarama.ErrOutOfBrokers
			},
		},
	}
	c := newScriptedConsumer(group, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, c.Start(ctx))
	// the next session sets up on a fresh channel instead of closing the old one twice
	require.Eventually(t, func() bool { return group.consumeCalls() == 2 }, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, c.Close())
}

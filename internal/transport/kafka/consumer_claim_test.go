package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"

	"cargaviva/internal/domain"
	testlog "cargaviva/internal/testutil"
)

type fakeSession struct {
	ctx context.Context

	mu     sync.Mutex
	marked int
}

func (s *fakeSession) Context() context.Context { return s.ctx }

func (s *fakeSession) MarkMessage(*sarama.ConsumerMessage, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked++
}

func (s *fakeSession) MarkOffset(string, int32, int64, string)  {}
func (s *fakeSession) Commit()                                  {}
func (s *fakeSession) ResetOffset(string, int32, int64, string) {}
func (s *fakeSession) Claims() map[string][]int32               { return nil }
func (s *fakeSession) MemberID() string                         { return "" }
func (s *fakeSession) GenerationID() int32                      { return 0 }

func (s *fakeSession) MarkedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marked
}

type fakeClaim struct {
	ch chan *sarama.ConsumerMessage
}

func (c fakeClaim) Topic() string              { return "t" }
func (c fakeClaim) Partition() int32           { return 0 }
func (c fakeClaim) InitialOffset() int64       { return 0 }
func (c fakeClaim) HighWaterMarkOffset() int64 { return 0 }
func (c fakeClaim) Messages() <-chan *sarama.ConsumerMessage {
	return c.ch
}

func claimOf(values ...[]byte) fakeClaim {
	ch := make(chan *sarama.ConsumerMessage, len(values))
	for i, v := range values {
		ch <- &sarama.ConsumerMessage{Value: v, Offset: int64(i)}
	}
	close(ch)
	return fakeClaim{ch: ch}
}

func validEvent(t *testing.T, id string) []byte {
	t.Helper()
	b, err := json.Marshal(EventDTO{
		ID:           id,
		LoadID:       "load-1",
		AssignmentID: "a-1",
		Trigger:      domain.TriggerAccept,
		OldStatus:    "published",
		NewStatus:    "assigned",
		ActorID:      "trk-1",
		OccurredAt:   time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return b
}

func TestConsumeClaim_BadJSON_Skips(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, domain.LifecycleEvent) error {
			t.Fatal("handler must not be called")
			return nil
		},
	}
	h := &groupHandler{c: c}
	sess := &fakeSession{ctx: context.Background()}

	err := h.ConsumeClaim(sess, claimOf([]byte("not-json")))
	require.NoError(t, err)
	require.Equal(t, 1, sess.MarkedCount())
	require.Len(t, rec.Find("kafka bad json"), 1)
}

func TestConsumeClaim_MalformedEvent_Skips(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	calls := 0
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, domain.LifecycleEvent) error {
			calls++
			return nil
		},
	}
	h := &groupHandler{c: c}

	b, _ := json.Marshal(EventDTO{ID: "ev-1", LoadID: "   ", Trigger: "deliver"})
	sess := &fakeSession{ctx: context.Background()}

	err := h.ConsumeClaim(sess, claimOf(b))
	require.NoError(t, err)
	require.Equal(t, 1, sess.MarkedCount())
	require.Equal(t, 0, calls)
	require.Len(t, rec.Find("kafka malformed event"), 1)
}

func TestConsumeClaim_PermanentError_SkipsAndMarks(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, domain.LifecycleEvent) error {
			return Permanent(errors.New("unknown load"))
		},
	}
	h := &groupHandler{c: c}
	sess := &fakeSession{ctx: context.Background()}

	err := h.ConsumeClaim(sess, claimOf(validEvent(t, "ev-1"), validEvent(t, "ev-2")))
	require.NoError(t, err)
	require.Equal(t, 2, sess.MarkedCount())
	require.Len(t, rec.Find("kafka handle failed, skipping message"), 2)
}

func TestConsumeClaim_TransientError_StopsWithoutMarking(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	sentinel := errors.New("db down")
	calls := 0
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, domain.LifecycleEvent) error {
			calls++
			return sentinel
		},
	}
	h := &groupHandler{c: c}
	sess := &fakeSession{ctx: context.Background()}

	err := h.ConsumeClaim(sess, claimOf(validEvent(t, "ev-1"), validEvent(t, "ev-2")))
	require.ErrorIs(t, err, sentinel)
	require.Equal(t, 1, calls)
	require.Equal(t, 0, sess.MarkedCount())
	require.Len(t, rec.Find("kafka handle failed, will retry"), 1)
}

func TestConsumeClaim_Success_Marks(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	var got []domain.LifecycleEvent
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(_ context.Context, ev domain.LifecycleEvent) error {
			got = append(got, ev)
			return nil
		},
	}
	h := &groupHandler{c: c}
	sess := &fakeSession{ctx: context.Background()}

	err := h.ConsumeClaim(sess, claimOf(validEvent(t, "ev-1")))
	require.NoError(t, err)
	require.Equal(t, 1, sess.MarkedCount())
	require.Len(t, got, 1)
	require.Equal(t, "ev-1", got[0].ID)
	require.Equal(t, domain.LoadAssigned, got[0].NewStatus)
}

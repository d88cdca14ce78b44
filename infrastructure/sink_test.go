package infrastructure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"stageshow/domain"
)

func versionedState(version uint64, questionIndex int) domain.ShowState {
	state := domain.ShowState{}
	state.Session.ID = "main-hall"
	state.Runtime.Version = version
	state.Selection.QuestionIndex = questionIndex
	return state
}

func TestSink(t *testing.T) {
	t.Run("should deliver a buffered snapshot", func(t *testing.T) {
		req := require.New(t)
		sink := NewSink()

		req.NoError(sink.Consume(context.Background(), versionedState(0, 0)))

		got := <-sink.Updates()
		req.Equal("main-hall", got.Session.ID)
	})

	t.Run("should keep only the newest undelivered snapshot", func(t *testing.T) {
		req := require.New(t)
		sink := NewSink()

		for i := 1; i <= 5; i++ {
			req.NoError(sink.Consume(context.Background(), versionedState(uint64(i), i)))
		}

		got := <-sink.Updates()
		req.Equal(5, got.Selection.QuestionIndex)

		select {
		case <-sink.Updates():
			t.Fatal("expected no further snapshot")
		default:
		}
	})

	t.Run("should drop a snapshot older than one already accepted", func(t *testing.T) {
		req := require.New(t)
		sink := NewSink()

		req.NoError(sink.Consume(context.Background(), versionedState(2, 2)))
		// A slower caller arriving late with the older commit must not win.
		req.NoError(sink.Consume(context.Background(), versionedState(1, 1)))

		got := <-sink.Updates()
		req.Equal(2, got.Selection.QuestionIndex)

		select {
		case <-sink.Updates():
			t.Fatal("expected the stale snapshot to be discarded")
		default:
		}
	})

	t.Run("should drop a redelivery of an already accepted version", func(t *testing.T) {
		req := require.New(t)
		sink := NewSink()

		req.NoError(sink.Consume(context.Background(), versionedState(3, 3)))
		<-sink.Updates()
		req.NoError(sink.Consume(context.Background(), versionedState(3, 3)))

		select {
		case <-sink.Updates():
			t.Fatal("expected the duplicate snapshot to be discarded")
		default:
		}
	})
}

package showdown

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// The server silently drops messages sent faster than roughly one per
// 600ms with a small burst allowance.
const (
	sendInterval = 600 * time.Millisecond
	sendBurst    = 3
	queueSize    = 128
)

// sendQueue decouples callers from the connection: enqueue never
// blocks, a single goroutine drains the queue at the server's pace.
// When the queue is full the message is dropped — the engine makes no
// delivery guarantees and a full queue means we are flooding anyway.
type sendQueue struct {
	ch    chan string
	write func(string) error
	lim   *rate.Limiter
	log   zerolog.Logger
}

func newSendQueue(write func(string) error, log zerolog.Logger) *sendQueue {
	return &sendQueue{
		ch:    make(chan string, queueSize),
		write: write,
		lim:   rate.NewLimiter(rate.Every(sendInterval), sendBurst),
		log:   log,
	}
}

func (q *sendQueue) enqueue(data string) {
	select {
	case q.ch <- data:
	default:
		q.log.Warn().Str("data", data).Msg("send queue full, dropping message")
	}
}

func (q *sendQueue) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case data := <-q.ch:
			if err := q.lim.Wait(ctx); err != nil {
				return
			}
			if err := q.write(data); err != nil {
				q.log.Error().Err(err).Msg("failed to send message")
			}
		}
	}
}

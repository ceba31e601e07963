package nats_jetstream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/semaphore"

	"github.com/evm-faucet/drip/internal/tracing"
)

const (
	concurrencyDefault  = 4
	maxDeliverDefault   = 5
	ackWaitDefault      = 5 * time.Minute
	streamMaxAgeDefault = 24 * time.Hour
)

var (
	// ErrUnprocessable marks a message which is terminated instead of redelivered.
	ErrUnprocessable = errors.New("message cannot be processed")

	ErrFailedToGetStream      = errors.New("failed to get stream")
	ErrFailedToGetConsumer    = errors.New("failed to get consumer")
	ErrFailedToApplyOption    = errors.New("failed to apply option")
	ErrFailedToCreateStream   = errors.New("failed to create stream")
	ErrFailedToCreateConsumer = errors.New("failed to create consumer")
	ErrFailedToPublish        = errors.New("failed to publish")
	ErrFailedToSubscribe      = errors.New("failed to subscribe")
	ErrInvalidConcurrency     = errors.New("concurrency must be positive")
)

// Handler processes the payload of one message. A nil error acknowledges the message.
type Handler func(ctx context.Context, data []byte) error

// Client consumes one work queue topic through a durable pull consumer.
type Client struct {
	js          jetstream.JetStream
	nc          *nats.Conn
	logger      *slog.Logger
	topic       string
	stream      jetstream.Stream
	consumer    jetstream.Consumer
	storageType jetstream.StorageType

	concurrency       int
	maxDeliver        int
	ackWait           time.Duration
	streamMaxAge      time.Duration
	redeliveryBackoff []time.Duration

	tracingEnabled    bool
	tracingAttributes []attribute.KeyValue
}

type Option func(c *Client) error

func WithFileStorage() Option {
	return func(c *Client) error {
		c.storageType = jetstream.FileStorage
		return nil
	}
}

func WithConcurrency(n int) Option {
	return func(c *Client) error {
		if n <= 0 {
			return errors.Join(ErrInvalidConcurrency, fmt.Errorf("concurrency: %d", n))
		}
		c.concurrency = n
		return nil
	}
}

// WithMaxDeliver sets the number of deliveries after which a failing message is terminated.
func WithMaxDeliver(n int) Option {
	return func(c *Client) error {
		c.maxDeliver = n
		return nil
	}
}

func WithAckWait(d time.Duration) Option {
	return func(c *Client) error {
		c.ackWait = d
		return nil
	}
}

func WithStreamMaxAge(d time.Duration) Option {
	return func(c *Client) error {
		c.streamMaxAge = d
		return nil
	}
}

// WithRedeliveryBackoff sets the NAK delays indexed by delivery count. The last delay repeats.
func WithRedeliveryBackoff(delays ...time.Duration) Option {
	return func(c *Client) error {
		c.redeliveryBackoff = delays
		return nil
	}
}

func WithTracer(attr ...attribute.KeyValue) Option {
	return func(c *Client) error {
		c.tracingEnabled = true
		if len(attr) > 0 {
			c.tracingAttributes = append(c.tracingAttributes, attr...)
		}
		return nil
	}
}

func New(nc *nats.Conn, logger *slog.Logger, topic string, opts ...Option) (*Client, error) {
	c := &Client{
		logger:       logger.With(slog.String("module", "nats-jetstream"), slog.String("topic", topic)),
		nc:           nc,
		topic:        topic,
		storageType:  jetstream.MemoryStorage,
		concurrency:  concurrencyDefault,
		maxDeliver:   maxDeliverDefault,
		ackWait:      ackWaitDefault,
		streamMaxAge: streamMaxAgeDefault,
	}

	for _, opt := range opts {
		err := opt(c)
		if err != nil {
			return nil, errors.Join(ErrFailedToApplyOption, err)
		}
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return nil, err
	}
	c.js = js

	c.stream, err = c.getStream(topic, fmt.Sprintf("%s-stream", topic))
	if err != nil {
		return nil, errors.Join(ErrFailedToGetStream, err)
	}

	c.consumer, err = c.getConsumer(c.stream, fmt.Sprintf("%s-cons", topic))
	if err != nil {
		return nil, errors.Join(ErrFailedToGetConsumer, err)
	}

	return c, nil
}

func (c *Client) getStream(topicName string, streamName string) (jetstream.Stream, error) {
	streamCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	stream, err := c.js.Stream(streamCtx, streamName)
	if errors.Is(err, jetstream.ErrStreamNotFound) {
		c.logger.Info(fmt.Sprintf("stream %s not found, creating new", streamName))

		stream, err = c.js.CreateStream(streamCtx, jetstream.StreamConfig{
			Name:        streamName,
			Description: "Stream for topic " + topicName,
			Subjects:    []string{topicName},
			Retention:   jetstream.WorkQueuePolicy,
			Discard:     jetstream.DiscardOld,
			MaxAge:      c.streamMaxAge,
			Storage:     c.storageType,
			NoAck:       false,
		})
		if err != nil {
			return nil, errors.Join(ErrFailedToCreateStream, err)
		}

		c.logger.Info(fmt.Sprintf("stream %s created", streamName))
		return stream, nil
	} else if err != nil {
		return nil, err
	}

	c.logger.Info(fmt.Sprintf("stream %s found", streamName))
	return stream, nil
}

func (c *Client) getConsumer(stream jetstream.Stream, consumerName string) (jetstream.Consumer, error) {
	consCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cons, err := stream.CreateOrUpdateConsumer(consCtx, jetstream.ConsumerConfig{
		Durable:       consumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       c.ackWait,
		MaxDeliver:    c.maxDeliver,
		MaxAckPending: c.concurrency * 2,
	})
	if err != nil {
		return nil, errors.Join(ErrFailedToCreateConsumer, err)
	}

	c.logger.Info(fmt.Sprintf("consumer %s ready", consumerName))
	return cons, nil
}

func (c *Client) Publish(ctx context.Context, data []byte) (err error) {
	ctx, span := tracing.StartTracing(ctx, "Publish", c.tracingEnabled, c.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	_, err = c.js.Publish(ctx, c.topic, data)
	if err != nil {
		return errors.Join(ErrFailedToPublish, fmt.Errorf("topic: %s", c.topic), err)
	}

	return nil
}

// Consume hands messages to handle with at most the configured number in flight.
// It blocks until ctx is canceled and all in flight messages are settled.
func (c *Client) Consume(ctx context.Context, handle Handler) error {
	iter, err := c.consumer.Messages(jetstream.PullMaxMessages(c.concurrency))
	if err != nil {
		return errors.Join(ErrFailedToSubscribe, fmt.Errorf("topic: %s", c.topic), err)
	}

	stop := context.AfterFunc(ctx, iter.Stop)
	defer stop()

	sem := semaphore.NewWeighted(int64(c.concurrency))
	wg := &sync.WaitGroup{}

	c.logger.Info("Consuming messages", slog.Int("concurrency", c.concurrency))

	for {
		msg, err := iter.Next()
		if err != nil {
			if errors.Is(err, jetstream.ErrMsgIteratorClosed) || ctx.Err() != nil {
				break
			}
			c.logger.Warn("Failed to fetch next message", slog.String("err", err.Error()))
			continue
		}

		err = sem.Acquire(ctx, 1)
		if err != nil {
			// unsettled messages are redelivered after ack wait, release this one now
			_ = msg.Nak()
			break
		}

		wg.Add(1)
		go func() {
			defer func() {
				sem.Release(1)
				wg.Done()
			}()

			c.handleMessage(ctx, msg, handle)
		}()
	}

	wg.Wait()
	c.logger.Info("Stopped consuming messages")

	return nil
}

func (c *Client) handleMessage(ctx context.Context, msg jetstream.Msg, handle Handler) {
	var err error
	ctx, span := tracing.StartTracing(ctx, "handleMessage", c.tracingEnabled, c.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	var delivered uint64 = 1
	meta, metaErr := msg.Metadata()
	if metaErr == nil {
		delivered = meta.NumDelivered
	}

	logger := c.logger.With(slog.Uint64("delivered", delivered))

	stopProgress := c.keepInProgress(msg)
	err = handle(ctx, msg.Data())
	stopProgress()

	switch {
	case err == nil:
		settleErr := msg.Ack()
		if settleErr != nil {
			logger.Error("Failed to acknowledge message", slog.String("err", settleErr.Error()))
		}
	case errors.Is(err, ErrUnprocessable):
		logger.Error("Terminating unprocessable message", slog.String("err", err.Error()))
		c.term(logger, msg)
	case c.maxDeliver > 0 && delivered >= uint64(c.maxDeliver):
		logger.Error("Terminating message after max deliveries", slog.String("err", err.Error()))
		c.term(logger, msg)
	default:
		delay := c.redeliveryDelay(delivered)
		logger.Warn("Message processing failed, requesting redelivery", slog.String("delay", delay.String()), slog.String("err", err.Error()))
		settleErr := msg.NakWithDelay(delay)
		if settleErr != nil {
			logger.Error("Failed to nak message", slog.String("err", settleErr.Error()))
		}
	}
}

func (c *Client) term(logger *slog.Logger, msg jetstream.Msg) {
	err := msg.Term()
	if err != nil {
		logger.Error("Failed to terminate message", slog.String("err", err.Error()))
	}
}

// keepInProgress extends the ack deadline while the handler runs.
func (c *Client) keepInProgress(msg jetstream.Msg) func() {
	if c.ackWait <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		defer close(finished)

		ticker := time.NewTicker(c.ackWait / 2)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				err := msg.InProgress()
				if err != nil {
					c.logger.Warn("Failed to extend ack deadline", slog.String("err", err.Error()))
				}
			}
		}
	}()

	return func() {
		close(done)
		<-finished
	}
}

func (c *Client) redeliveryDelay(delivered uint64) time.Duration {
	return RedeliveryDelay(c.redeliveryBackoff, delivered)
}

// RedeliveryDelay picks the delay for a message delivered the given number of times.
func RedeliveryDelay(backoff []time.Duration, delivered uint64) time.Duration {
	if len(backoff) == 0 {
		return 0
	}

	if delivered == 0 {
		return backoff[0]
	}

	idx := delivered - 1
	if idx >= uint64(len(backoff)) {
		return backoff[len(backoff)-1]
	}

	return backoff[idx]
}

func (c *Client) Shutdown() {
	if c.nc != nil {
		err := c.nc.Drain()
		if err != nil {
			c.logger.Error("failed to drain nats connection", slog.String("err", err.Error()))
		}
	}
}

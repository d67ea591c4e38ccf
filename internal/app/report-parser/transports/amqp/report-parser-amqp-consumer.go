package report_parser_amqp_consumer

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/init-pkg/report-parser/domain/app"
	"github.com/init-pkg/report-parser/domain/dtos"
	"github.com/init-pkg/report-parser/internal/config"
	"github.com/init-pkg/report-parser/internal/errs"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher is the part of *amqp.Channel used to send replies.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// ReportParserAmqpConsumer serves the same request as the HTTP endpoint
// over a queue: the body is a parse request, the reply is the envelope
// published to ReplyTo with the request's correlation id.
type ReportParserAmqpConsumer struct {
	service app.ReportParserService
	conn    *amqp.Connection
	cfg     config.RabbitMQConfig
	log     *slog.Logger

	ch     *amqp.Channel
	tag    string
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(service app.ReportParserService, conn *amqp.Connection, cfg *config.Config, log *slog.Logger) *ReportParserAmqpConsumer {
	return &ReportParserAmqpConsumer{
		service: service,
		conn:    conn,
		cfg:     cfg.Clients.RabbitMQ,
		log:     log.With("transport", "amqp", "queue", cfg.Clients.RabbitMQ.Queue),
	}
}

// Start is a no-op without a broker connection.
func (this *ReportParserAmqpConsumer) Start(ctx context.Context) error {
	if this.conn == nil {
		return nil
	}

	ch, e := this.conn.Channel()
	if e != nil {
		return errs.WrapAppError(e, &errs.ErrorOpts{})
	}
	if e = ch.Qos(this.cfg.Prefetch, 0, false); e != nil {
		ch.Close()
		return errs.WrapAppError(e, &errs.ErrorOpts{})
	}
	if _, e = ch.QueueDeclare(this.cfg.Queue, true, false, false, false, nil); e != nil {
		ch.Close()
		return errs.WrapAppError(e, &errs.ErrorOpts{})
	}

	this.tag = "report-parser-" + uuid.NewString()
	deliveries, e := ch.Consume(this.cfg.Queue, this.tag, false, false, false, false, nil)
	if e != nil {
		ch.Close()
		return errs.WrapAppError(e, &errs.ErrorOpts{})
	}
	this.ch = ch

	runCtx, cancel := context.WithCancel(context.Background())
	this.cancel = cancel
	for range this.cfg.Prefetch {
		this.wg.Add(1)
		go func() {
			defer this.wg.Done()
			for d := range deliveries {
				this.Handle(runCtx, d, ch)
			}
		}()
	}

	this.log.Info("consumer started", "prefetch", this.cfg.Prefetch)
	return nil
}

// Stop cancels the subscription and waits for in-flight messages until ctx
// expires; whatever is still running then is cancelled and redelivered later.
func (this *ReportParserAmqpConsumer) Stop(ctx context.Context) error {
	if this.ch == nil {
		return nil
	}
	if e := this.ch.Cancel(this.tag, false); e != nil {
		this.log.Warn("consumer cancel failed", "error", e)
	}

	done := make(chan struct{})
	go func() {
		this.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		this.log.Warn("consumer stopped with messages in flight")
	}
	this.cancel()
	return this.ch.Close()
}

// Handle processes one delivery. Malformed requests are rejected without
// requeue; a reply that cannot be published is requeued.
func (this *ReportParserAmqpConsumer) Handle(ctx context.Context, d amqp.Delivery, pub Publisher) {
	log := this.log.With("correlation_id", d.CorrelationId, "delivery_tag", d.DeliveryTag)

	var req dtos.ParseReportRequest
	if e := json.Unmarshal(d.Body, &req); e != nil || req.Target() == "" {
		log.Warn("malformed parse request rejected", "error", e)
		if e := d.Reject(false); e != nil {
			log.Error("reject failed", "error", e)
		}
		return
	}

	var envelope dtos.ReportEnvelope
	res, err := this.service.ParseURL(ctx, req.Target())
	if err != nil {
		log.Info("report not parsed", "url", req.Target(), "code", err.Code())
		envelope = dtos.ErrorEnvelope(err)
	} else {
		envelope = dtos.SuccessEnvelope(res)
	}

	if d.ReplyTo == "" {
		log.Warn("request has no reply_to, result dropped")
		this.ack(log, d)
		return
	}

	body, e := json.Marshal(envelope)
	if e != nil {
		log.Error("reply encoding failed", "error", e)
		this.ack(log, d)
		return
	}

	correlationId := d.CorrelationId
	if correlationId == "" {
		correlationId = uuid.NewString()
	}
	e = pub.PublishWithContext(ctx, "", d.ReplyTo, false, false, amqp.Publishing{
		ContentType:   "application/json",
		CorrelationId: correlationId,
		MessageId:     uuid.NewString(),
		Timestamp:     time.Now(),
		Body:          body,
	})
	if e != nil {
		log.Error("reply publish failed", "reply_to", d.ReplyTo, "error", e)
		if e := d.Nack(false, true); e != nil {
			log.Error("nack failed", "error", e)
		}
		return
	}
	this.ack(log, d)
}

func (this *ReportParserAmqpConsumer) ack(log *slog.Logger, d amqp.Delivery) {
	if e := d.Ack(false); e != nil {
		log.Error("ack failed", "error", e)
	}
}

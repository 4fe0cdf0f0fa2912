// Package events publica eventos de domínio em uma exchange do RabbitMQ
package events

import (
	"context"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
	"github.com/vfg2006/crm-api/internal/config"
	"github.com/vfg2006/crm-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	TypeCreated            = "created"
	TypeUpdated            = "updated"
	TypeDeleted            = "deleted"
	TypeLeadConverted      = "lead.converted"
	TypeLeadsScored        = "leads.scored"
	TypeCaseResolved       = "case.resolved"
	TypeComplaintEscalated = "complaint.escalated"
	TypeAMCRenewed         = "amc.renewed"
	TypeAMCRenewalDue      = "amc.renewal_due"
	TypeAMCExpired         = "amc.expired"
	TypeImportCompleted    = "import.completed"
)

//go:generate mockgen -source=publisher.go -destination=mocks/publisher.go -package=mocks

type Event struct {
	Type string      `json:"type"`
	Kind domain.Kind `json:"kind,omitempty"`
	ID   string      `json:"id,omitempty"`
	At   time.Time   `json:"at"`
	Data any         `json:"data,omitempty"`
}

// RoutingKey segue o formato "<kind>.<tipo>" para eventos de CRUD e o próprio tipo nos demais
func (e Event) RoutingKey() string {
	switch e.Type {
	case TypeCreated, TypeUpdated, TypeDeleted:
		return string(e.Kind) + "." + e.Type
	}
	return e.Type
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type amqpPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	mu       sync.Mutex
}

// New conecta ao RabbitMQ quando AMQP_URL está configurado; caso contrário os eventos só são logados
func New(cfg config.Events) Publisher {
	if cfg.AMQPURL == "" {
		logrus.Warn("AMQP_URL não configurado, eventos serão apenas logados")
		return NewLogPublisher()
	}

	publisher, err := NewAMQPPublisher(cfg.AMQPURL, cfg.Exchange)
	if err != nil {
		logrus.WithError(err).Error("Não foi possível conectar ao RabbitMQ, eventos serão apenas logados")
		return NewLogPublisher()
	}

	logrus.Infof("Publicando eventos na exchange %s", cfg.Exchange)
	return publisher
}

func NewAMQPPublisher(url, exchange string) (Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao conectar ao RabbitMQ")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "erro ao abrir canal")
	}

	err = ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errors.Wrapf(err, "erro ao declarar exchange %s", exchange)
	}

	return &amqpPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *amqpPublisher) Publish(ctx context.Context, event Event) error {
	if event.At.IsZero() {
		event.At = time.Now()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar evento")
	}

	// amqp.Channel não é seguro para uso concorrente
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.Publish(
		p.exchange,
		event.RoutingKey(),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.At,
			Body:         body,
		},
	)
	if err != nil {
		return errors.Wrapf(err, "erro ao publicar evento %s", event.RoutingKey())
	}

	return nil
}

func (p *amqpPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.channel.Close(); err != nil {
		logrus.WithError(err).Warn("Erro ao fechar canal do RabbitMQ")
	}
	return p.conn.Close()
}

type logPublisher struct{}

func NewLogPublisher() Publisher {
	return logPublisher{}
}

func (logPublisher) Publish(_ context.Context, event Event) error {
	logrus.WithFields(logrus.Fields{
		"event": event.RoutingKey(),
		"id":    event.ID,
	}).Debug("Evento de domínio")
	return nil
}

func (logPublisher) Close() error {
	return nil
}

// PublishSafe publica e apenas loga falhas; eventos nunca interrompem a requisição
func PublishSafe(ctx context.Context, p Publisher, event Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		logrus.WithError(err).Warnf("Falha ao publicar evento %s", event.RoutingKey())
	}
}

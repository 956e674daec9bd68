package events

import (
	"go.uber.org/zap"

	"github.com/MrRexos/wisdom-booking-api/internal/domain/booking"
)

// Sink é a fronteira com a camada de notificação/chat (fora de escopo):
// recebe um evento por transição de status e faz o que quiser com ele.
type Sink interface {
	Notify(ev booking.Event)
}

type Dispatcher struct {
	store *Store
	sinks []Sink
	queue chan booking.Event
	log   *zap.Logger
}

func NewDispatcher(store *Store, log *zap.Logger, sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		store: store,
		sinks: sinks,
		queue: make(chan booking.Event, 100),
		log:   log,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.store.Save(ev); err != nil {
			d.log.Error("event store failed",
				zap.String("booking_id", ev.BookingID),
				zap.Error(err),
			)
		}
		for _, s := range d.sinks {
			s.Notify(ev)
		}
	}
}

func (d *Dispatcher) Dispatch(ev booking.Event) {
	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos o evento (nunca travar a API)
		d.log.Warn("event queue full, dropping event",
			zap.String("booking_id", ev.BookingID),
			zap.String("kind", ev.Kind),
		)
	}
}

func (d *Dispatcher) DispatchAll(evs []booking.Event) {
	for _, ev := range evs {
		d.Dispatch(ev)
	}
}

// LogSink é o sink padrão: só registra a transição.
type LogSink struct {
	Log *zap.Logger
}

func (s LogSink) Notify(ev booking.Event) {
	s.Log.Info("booking event",
		zap.String("booking_id", ev.BookingID),
		zap.String("kind", ev.Kind),
		zap.String("previous", string(ev.Previous)),
		zap.String("new", string(ev.New)),
		zap.String("at", ev.At.Format()),
	)
}

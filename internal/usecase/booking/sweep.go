package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/MrRexos/wisdom-booking-api/internal/domain/booking"
	"github.com/MrRexos/wisdom-booking-api/internal/naivetime"
)

// Sweeper é a reconciliação periódica: reservas aceitas cuja janela já
// encerrou são concluídas pelo mesmo caminho da conclusão manual. É uma
// varredura agendada, nunca uma espera bloqueante pelo relógio.
type Sweeper struct {
	repo     domain.Repository
	complete *CompleteBooking
	interval time.Duration
	log      *zap.Logger
}

func NewSweeper(
	repo domain.Repository,
	complete *CompleteBooking,
	interval time.Duration,
	log *zap.Logger,
) *Sweeper {
	return &Sweeper{
		repo:     repo,
		complete: complete,
		interval: interval,
		log:      log,
	}
}

func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx, naivetime.Now())
		}
	}
}

// Sweep roda uma passada com o agora injetado (determinístico em teste).
func (s *Sweeper) Sweep(ctx context.Context, now naivetime.DateTime) {
	due, err := s.repo.ListDueForCompletion(ctx, now.Format())
	if err != nil {
		s.log.Error("sweep list failed", zap.Error(err))
		return
	}

	for _, bk := range due {
		if _, err := s.complete.ExecuteAuto(ctx, bk.ID, now); err != nil {
			// pagamento pendente ou trava ocupada: fica para a próxima
			s.log.Warn("auto-complete deferred",
				zap.String("booking_id", bk.ID),
				zap.Error(err),
			)
		}
	}
}

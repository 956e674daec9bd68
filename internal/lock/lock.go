package lock

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Trava consultiva por reserva: transição de status + liquidação formam
// uma única seção crítica por booking id. Reservas diferentes seguem em
// paralelo.

var ErrLocked = errors.New("booking is locked by another operation")

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

type BookingLocker struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewBookingLocker(rdb *redis.Client, ttl time.Duration) *BookingLocker {
	return &BookingLocker{rdb: rdb, ttl: ttl}
}

// Acquire tenta a trava da reserva. Devolve a função de liberação; só o
// dono (token) consegue liberar.
func (l *BookingLocker) Acquire(ctx context.Context, bookingID string) (func(), error) {
	key := "booking:lock:" + bookingID
	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLocked
	}

	release := func() {
		_ = releaseScript.Run(context.Background(), l.rdb, []string{key}, token).Err()
	}
	return release, nil
}

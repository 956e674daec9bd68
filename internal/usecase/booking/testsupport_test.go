package booking

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"

	domain "github.com/MrRexos/wisdom-booking-api/internal/domain/booking"
	"github.com/MrRexos/wisdom-booking-api/internal/httperr"
	"github.com/MrRexos/wisdom-booking-api/internal/models"
	"github.com/MrRexos/wisdom-booking-api/internal/naivetime"
	"github.com/MrRexos/wisdom-booking-api/internal/payments"
)

func intPtr(n int) *int         { return &n }
func f64Ptr(v float64) *float64 { return &v }
func strPtr(s string) *string   { return &s }

func testNow(t *testing.T, raw string) naivetime.DateTime {
	t.Helper()
	dt, err := naivetime.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return dt
}

// ======================================================
// In-memory repository
// ======================================================

type fakeRepo struct {
	services map[uint]*models.Service
	users    map[uint]*models.User
	bookings map[string]*models.Booking
	updates  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services: map[uint]*models.Service{},
		users:    map[uint]*models.User{},
		bookings: map[string]*models.Booking{},
	}
}

func (r *fakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	svc, ok := r.services[id]
	if !ok {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return svc, nil
}

func (r *fakeRepo) ListServices(_ context.Context) ([]models.Service, error) {
	out := make([]models.Service, 0, len(r.services))
	for _, s := range r.services {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeRepo) GetUser(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, httperr.ErrBusiness("user_not_found")
	}
	return u, nil
}

func (r *fakeRepo) CreateBooking(_ context.Context, bk *models.Booking) error {
	cp := *bk
	r.bookings[bk.ID] = &cp
	return nil
}

func (r *fakeRepo) GetBooking(_ context.Context, id string) (*models.Booking, error) {
	bk, ok := r.bookings[id]
	if !ok {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	cp := *bk
	return &cp, nil
}

func (r *fakeRepo) GetBookingForParty(
	ctx context.Context,
	id string,
	userID uint,
	role domain.Role,
) (*models.Booking, error) {
	bk, err := r.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	switch role {
	case domain.RoleClient:
		if bk.ClientID != userID {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
	case domain.RoleProfessional:
		if bk.ProfessionalID != userID {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
	}
	return bk, nil
}

func (r *fakeRepo) ListBookingsForParty(
	_ context.Context,
	userID uint,
	role domain.Role,
) ([]models.Booking, error) {
	var out []models.Booking
	for _, bk := range r.bookings {
		if (role == domain.RoleClient && bk.ClientID == userID) ||
			(role == domain.RoleProfessional && bk.ProfessionalID == userID) {
			out = append(out, *bk)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateBooking(_ context.Context, bk *models.Booking) error {
	cp := *bk
	r.bookings[bk.ID] = &cp
	r.updates++
	return nil
}

func (r *fakeRepo) DeleteBooking(_ context.Context, id string) error {
	delete(r.bookings, id)
	return nil
}

func (r *fakeRepo) ListDueForCompletion(_ context.Context, nowNaive string) ([]models.Booking, error) {
	var out []models.Booking
	for _, bk := range r.bookings {
		if bk.Status == string(domain.StatusAccepted) &&
			bk.EndAt != nil && *bk.EndAt <= nowNaive {
			out = append(out, *bk)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// mustGet devolve o estado persistido da reserva.
func (r *fakeRepo) mustGet(t *testing.T, id string) *models.Booking {
	t.Helper()
	bk, ok := r.bookings[id]
	if !ok {
		t.Fatalf("booking %s não persistida", id)
	}
	return bk
}

// ======================================================
// Gateway fake
// ======================================================

type chargeCall struct {
	amount   float64
	currency string
}

type refundCall struct {
	chargeID string
	amount   *float64
}

type fakeGateway struct {
	// resultados enfileirados; esgotada a fila, toda cobrança tem sucesso
	queued  []payments.Result
	charges []chargeCall
	refunds []refundCall

	// desfecho por charge id para consultas de cobrança pendente; sem
	// entrada, a consulta devolve sucesso
	statuses    map[string]payments.Result
	statusCalls []string

	chargeErr error
	refundErr error
}

func (g *fakeGateway) Charge(
	_ context.Context,
	_ string,
	amount float64,
	currency string,
	_ string,
) (payments.Result, error) {
	if g.chargeErr != nil {
		return payments.Result{}, g.chargeErr
	}
	g.charges = append(g.charges, chargeCall{amount: amount, currency: currency})

	if len(g.queued) > 0 {
		res := g.queued[0]
		g.queued = g.queued[1:]
		return res, nil
	}
	return payments.Result{
		Status:   payments.StatusSucceeded,
		ChargeID: fmt.Sprintf("ch_%d", len(g.charges)),
	}, nil
}

func (g *fakeGateway) Status(_ context.Context, chargeID string) (payments.Result, error) {
	g.statusCalls = append(g.statusCalls, chargeID)
	if res, ok := g.statuses[chargeID]; ok {
		return res, nil
	}
	return payments.Result{Status: payments.StatusSucceeded, ChargeID: chargeID}, nil
}

func (g *fakeGateway) Refund(_ context.Context, chargeID string, amount *float64) error {
	if g.refundErr != nil {
		return g.refundErr
	}
	g.refunds = append(g.refunds, refundCall{chargeID: chargeID, amount: amount})
	return nil
}

var _ payments.Gateway = (*fakeGateway)(nil)

// ======================================================
// Dispatcher / Locker fakes
// ======================================================

type fakeDispatcher struct {
	events []domain.Event
}

func (d *fakeDispatcher) Dispatch(ev domain.Event) { d.events = append(d.events, ev) }

func (d *fakeDispatcher) DispatchAll(evs []domain.Event) { d.events = append(d.events, evs...) }

type fakeLocker struct {
	err      error
	acquired []string
}

func (l *fakeLocker) Acquire(_ context.Context, bookingID string) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	l.acquired = append(l.acquired, bookingID)
	return func() {}, nil
}

// ======================================================
// Wiring helper
// ======================================================

type fixture struct {
	repo    *fakeRepo
	gateway *fakeGateway
	events  *fakeDispatcher
	locks   *fakeLocker
	settle  *Settlement
	log     *zap.Logger
}

func newFixture() *fixture {
	gw := &fakeGateway{}
	log := zap.NewNop()
	return &fixture{
		repo:    newFakeRepo(),
		gateway: gw,
		events:  &fakeDispatcher{},
		locks:   &fakeLocker{},
		settle:  NewSettlement(gw, log),
		log:     log,
	}
}

func (f *fixture) addService(svc models.Service) {
	cp := svc
	f.repo.services[svc.ID] = &cp
}

func (f *fixture) addUser(u models.User) {
	cp := u
	f.repo.users[u.ID] = &cp
}

func (f *fixture) addBooking(bk models.Booking) {
	cp := bk
	f.repo.bookings[bk.ID] = &cp
}

package booking

import (
	"math"

	"github.com/MrRexos/wisdom-booking-api/internal/models"
)

// ===============================
// Pricing models
// ===============================

const (
	PriceTypeFixed  = "fixed"
	PriceTypeHourly = "hourly"
	PriceTypeBudget = "budget"
)

const (
	// Comissão da plataforma sobre o preço base.
	CommissionRate = 0.10

	// Piso da comissão e depósito simbólico dos modelos sem preço
	// definido (hourly sem duração, budget).
	MinCommission = 1.0
)

// Quote é o resultado monetário de uma reserva. Base e Final ficam nulos
// enquanto o preço não pode ser determinado; Commission é sempre conhecida
// porque é o valor do depósito.
type Quote struct {
	Base       *float64
	Commission float64
	Final      *float64
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// CommissionFor aplica o piso depois do arredondamento a 1 decimal.
func CommissionFor(base float64) float64 {
	c := round1(base * CommissionRate)
	if c < MinCommission {
		c = MinCommission
	}
	return c
}

// QuotePrice calcula base, comissão e preço final na criação da reserva.
// Garantia de liquidação: Final - Commission == Base, sem deriva de
// arredondamento, sempre que ambos são conhecidos.
func QuotePrice(priceType string, unitPrice float64, durationMin *int) (Quote, error) {
	if unitPrice < 0 {
		return Quote{}, PricingError{PriceType: priceType, Reason: "negative unit price"}
	}

	switch priceType {
	case PriceTypeFixed:
		base := round2(unitPrice)
		c := CommissionFor(base)
		final := round2(base + c)
		return Quote{Base: &base, Commission: c, Final: &final}, nil

	case PriceTypeHourly:
		if durationMin == nil {
			// Duração indefinida: só o depósito mínimo pode ser cobrado.
			return Quote{Commission: MinCommission}, nil
		}
		if *durationMin < 0 {
			return Quote{}, PricingError{PriceType: priceType, Reason: "negative duration"}
		}
		base := round2(unitPrice * float64(*durationMin) / 60)
		c := CommissionFor(base)
		final := round2(base + c)
		return Quote{Base: &base, Commission: c, Final: &final}, nil

	case PriceTypeBudget:
		// Preço definido depois pelo profissional.
		return Quote{Commission: MinCommission}, nil

	default:
		return Quote{}, PricingError{PriceType: priceType, Reason: "unrecognized price type"}
	}
}

// DeclaredQuote calcula o preço final quando o profissional declara o valor
// (modelo budget, ou qualquer recomputação a partir de um base conhecido).
func DeclaredQuote(declared float64) (Quote, error) {
	if declared < 0 {
		return Quote{}, PricingError{PriceType: PriceTypeBudget, Reason: "negative declared price"}
	}
	base := round2(declared)
	c := CommissionFor(base)
	final := round2(base + c)
	return Quote{Base: &base, Commission: c, Final: &final}, nil
}

// Deposit é o valor cobrado na criação: a comissão (ou o piso simbólico
// quando o preço ainda não é conhecido — nos dois casos, Quote.Commission).
func Deposit(q Quote) float64 {
	return q.Commission
}

// ApplyQuote grava os campos monetários na reserva.
func ApplyQuote(bk *models.Booking, q Quote) {
	bk.BasePrice = q.Base
	c := q.Commission
	bk.Commission = &c
	bk.FinalPrice = q.Final
}

// DepositDue é o valor do depósito da reserva (comissão conhecida, ou o
// piso simbólico).
func DepositDue(bk *models.Booking) float64 {
	if bk.Commission != nil {
		return *bk.Commission
	}
	return MinCommission
}

// RemainingDue é o valor da fase final: preço final menos o depósito já
// cobrado — o depósito é sempre abatido, nunca cobrado de novo. Devolve
// false enquanto o preço final é indeterminado.
func RemainingDue(bk *models.Booking) (float64, bool) {
	if bk.FinalPrice == nil {
		return 0, false
	}
	deposit := 0.0
	if bk.DepositAmount != nil {
		deposit = *bk.DepositAmount
	} else if bk.DepositPaid {
		deposit = DepositDue(bk)
	}
	return round2(*bk.FinalPrice - deposit), true
}

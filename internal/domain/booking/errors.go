package booking

import "fmt"

type InvalidTransitionError struct {
	From   Status
	Action string
	Actor  Role
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s from %q by %s", e.Action, e.From, e.Actor)
}

type PricingError struct {
	PriceType string
	Reason    string
}

func (e PricingError) Error() string {
	return fmt.Sprintf("pricing error (%s): %s", e.PriceType, e.Reason)
}

type SettlementConflictError struct {
	Phase     string
	Settled   float64
	Attempted float64
}

func (e SettlementConflictError) Error() string {
	return fmt.Sprintf(
		"settlement conflict: phase %s already settled at %.2f, attempted %.2f",
		e.Phase, e.Settled, e.Attempted,
	)
}

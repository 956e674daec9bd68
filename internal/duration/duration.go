package duration

// Escala do seletor de duração: quatro segmentos lineares com passo
// crescente. Os breakpoints são definição de produto, não aproximação.
//
//	p ∈ [1,12]  → p*5 min           (até 60, passo 5)
//	p ∈ [13,18] → 60 + (p-12)*10    (até 120, passo 10)
//	p ∈ [19,26] → 120 + (p-18)*15   (até 240, passo 15)
//	p > 26      → 240 + (p-26)*30   (passo 30)

const (
	MinPosition = 1
	MaxPosition = 34
)

func PositionToMinutes(p int) int {
	switch {
	case p <= 12:
		return p * 5
	case p <= 18:
		return 60 + (p-12)*10
	case p <= 26:
		return 120 + (p-18)*15
	default:
		return 240 + (p-26)*30
	}
}

func MinutesToPosition(minutes int) int {
	switch {
	case minutes <= 60:
		return minutes / 5
	case minutes <= 120:
		return 12 + (minutes-60)/10
	case minutes <= 240:
		return 18 + (minutes-120)/15
	default:
		return 26 + (minutes-240)/30
	}
}

// Clamp limita uma posição ao intervalo válido do seletor.
func Clamp(p int) int {
	if p < MinPosition {
		return MinPosition
	}
	if p > MaxPosition {
		return MaxPosition
	}
	return p
}

package naivetime

import (
	"regexp"
	"strings"
	"time"
)

// Data-hora "ingênua": sem fuso horário, sempre interpretada como hora
// local do serviço. O carrier interno usa UTC apenas para o vai-um de
// dia/mês em aritmética, nunca para conversão de fuso.

const (
	LayoutMinutes = "2006-01-02 15:04"
	LayoutSeconds = "2006-01-02 15:04:05"
	LayoutDate    = "2006-01-02"
	LayoutClock   = "15:04"
)

type DateTime struct {
	t           time.Time
	withSeconds bool
}

type FormatError struct {
	Input string
}

func (e FormatError) Error() string {
	return "invalid naive date-time: " + e.Input
}

var (
	zoneSuffixRe = regexp.MustCompile(`(Z|[+-]\d{2}:?\d{2})$`)
	fractionRe   = regexp.MustCompile(`\.\d+`)
)

// Parse aceita "YYYY-MM-DD HH:mm[:ss]", separador "T" opcional, fração de
// segundo opcional e sufixo de zona opcional (removido e ignorado).
func Parse(s string) (DateTime, error) {
	raw := strings.TrimSpace(s)

	norm := zoneSuffixRe.ReplaceAllString(raw, "")
	norm = fractionRe.ReplaceAllString(norm, "")
	norm = strings.Replace(norm, "T", " ", 1)

	if t, err := time.ParseInLocation(LayoutSeconds, norm, time.UTC); err == nil {
		return DateTime{t: t, withSeconds: true}, nil
	}
	if t, err := time.ParseInLocation(LayoutMinutes, norm, time.UTC); err == nil {
		return DateTime{t: t}, nil
	}

	return DateTime{}, FormatError{Input: raw}
}

// At monta uma data-hora a partir das partes "YYYY-MM-DD" e "HH:mm[:ss]".
func At(date, clock string) (DateTime, error) {
	return Parse(date + " " + clock)
}

// Now captura o relógio de parede local do processo como valor ingênuo.
func Now() DateTime {
	n := time.Now()
	return DateTime{t: time.Date(
		n.Year(), n.Month(), n.Day(),
		n.Hour(), n.Minute(), n.Second(), 0,
		time.UTC,
	), withSeconds: true}
}

func (d DateTime) IsZero() bool {
	return d.t.IsZero()
}

func (d DateTime) Date() string {
	return d.t.Format(LayoutDate)
}

func (d DateTime) Clock() string {
	return d.t.Format(LayoutClock)
}

func (d DateTime) WithSeconds() bool {
	return d.withSeconds
}

func (d DateTime) Format() string {
	if d.withSeconds {
		return d.t.Format(LayoutSeconds)
	}
	return d.t.Format(LayoutMinutes)
}

func (d DateTime) AddMinutes(minutes int) DateTime {
	return DateTime{
		t:           d.t.Add(time.Duration(minutes) * time.Minute),
		withSeconds: d.withSeconds,
	}
}

// Compare devolve -1, 0 ou 1 comparando os dois valores ingênuos pelo
// mesmo instante abstrato usado em AddMinutes.
func Compare(a, b DateTime) int {
	switch {
	case a.t.Before(b.t):
		return -1
	case a.t.After(b.t):
		return 1
	default:
		return 0
	}
}

func (d DateTime) Before(other DateTime) bool {
	return Compare(d, other) < 0
}

func (d DateTime) After(other DateTime) bool {
	return Compare(d, other) > 0
}

func (d DateTime) Equal(other DateTime) bool {
	return Compare(d, other) == 0
}

// MinutesBetween devolve a diferença inteira em minutos (b - a).
func MinutesBetween(a, b DateTime) int {
	return int(b.t.Sub(a.t) / time.Minute)
}

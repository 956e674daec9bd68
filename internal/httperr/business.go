package httperr

import "errors"

// BusinessError é o erro de negócio simples das camadas de caso de uso:
// só um código snake_case ("booking_not_found", "start_in_the_past"),
// traduzido para HTTP na borda.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// transport — цепочка http.RoundTripper для исходящих HTTP-вызовов к апстримам
// (каталог профилей): metadata -> timeout -> logging.
package transport

import "net/http"

// RoundTripperFunc — адаптер функции к http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Wrapper — одно звено цепочки.
type Wrapper func(http.RoundTripper) http.RoundTripper

// Chain собирает звенья так, что первое в списке выполняется первым.
// base == nil — http.DefaultTransport.
func Chain(base http.RoundTripper, ws ...Wrapper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}

	rt := base
	for i := len(ws) - 1; i >= 0; i-- {
		rt = ws[i](rt)
	}

	return rt
}

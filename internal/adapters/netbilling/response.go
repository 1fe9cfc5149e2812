package netbilling

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/kevin07696/netbilling-gateway/internal/domain"
)

const (
	SuccessMessage = "The transaction was approved"
	FailureMessage = "The transaction failed"
)

// successCodes are the status_code values that mean approval
var successCodes = map[string]bool{
	"1": true,
	"T": true,
}

// parseResponse decodes a form-encoded reply. Malformed pairs are skipped
// and reported in the returned error; the map always holds whatever could
// be decoded.
func parseResponse(body []byte) (domain.GatewayResponse, error) {
	results := make(domain.GatewayResponse)
	var errs []error

	for _, pair := range strings.Split(strings.TrimSpace(string(body)), "&") {
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			errs = append(errs, fmt.Errorf("pair %q has no value", pair))
			continue
		}
		decoded, err := unescapeValue(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("field %s: %w", key, err))
		}
		results[key] = decoded
	}

	return results, errors.Join(errs...)
}

// unescapeValue form-decodes value. On a malformed escape the error is
// returned along with a best-effort decoding: '+' becomes a space, valid
// %XX sequences are decoded and anything else is kept as sent.
func unescapeValue(value string) (string, error) {
	decoded, err := url.QueryUnescape(value)
	if err == nil {
		return decoded, nil
	}

	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		switch c := value[i]; {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(value) && isHex(value[i+1]) && isHex(value[i+2]):
			b.WriteByte(unhex(value[i+1])<<4 | unhex(value[i+2]))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), err
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// checkProtocol reports fields the interpreter expects but did not get
func checkProtocol(response domain.GatewayResponse) error {
	var missing []string
	for _, key := range []string{respStatusCode, respTransID} {
		if _, ok := response.Lookup(key); !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func isSuccess(response domain.GatewayResponse) bool {
	return successCodes[response.Get(respStatusCode)]
}

func messageFrom(response domain.GatewayResponse) string {
	if isSuccess(response) {
		return SuccessMessage
	}
	if msg, ok := response.Lookup(respAuthMsg); ok {
		return msg
	}
	return FailureMessage
}

// isTestResponse is true for test accounts and for replies the gateway
// flags with TEST in auth_msg
func (g *gateway) isTestResponse(response domain.GatewayResponse) bool {
	return g.config.IsTest() || strings.Contains(response.Get(respAuthMsg), "TEST")
}

// interpret turns a parsed reply into a normalized Result. A reply that
// failed checkProtocol is always declined with FailureMessage.
func (g *gateway) interpret(response domain.GatewayResponse, protocolErr error) *domain.Result {
	success := protocolErr == nil && isSuccess(response)
	message := FailureMessage
	if protocolErr == nil {
		message = messageFrom(response)
	}
	return domain.NewResult(
		success,
		message,
		response,
		g.isTestResponse(response),
		response.Get(respTransID),
		domain.NewAVSResult(response.Get(respAVSCode)),
		domain.NewCVVResult(response.Get(respCVV2Code)),
	)
}

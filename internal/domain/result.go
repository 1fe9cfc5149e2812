package domain

// GatewayResponse holds the decoded fields of a gateway reply
type GatewayResponse map[string]string

// Get returns the value for key, or "" when the field is absent
func (r GatewayResponse) Get(key string) string {
	return r[key]
}

// Lookup returns the value for key and whether it was present and non-empty
func (r GatewayResponse) Lookup(key string) (string, bool) {
	v, ok := r[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Result is the normalized outcome of one gateway round trip
type Result struct {
	Success bool
	Message string

	// Raw holds every field the gateway returned
	Raw GatewayResponse

	// Test is set for test-mode accounts and replies the gateway marks as test
	Test bool

	// Authorization is the gateway transaction id, used to capture or refund later
	Authorization string

	// AVS and CVV are nil when the gateway returned no verification data
	AVS *AVSResult
	CVV *CVVResult
}

// NewResult builds a Result; Raw is copied so the Result owns its data
func NewResult(success bool, message string, raw GatewayResponse, test bool, authorization string, avs *AVSResult, cvv *CVVResult) *Result {
	params := make(GatewayResponse, len(raw))
	for k, v := range raw {
		params[k] = v
	}
	return &Result{
		Success:       success,
		Message:       message,
		Raw:           params,
		Test:          test,
		Authorization: authorization,
		AVS:           avs,
		CVV:           cvv,
	}
}

// AVSCode returns the AVS code, or "" when none was returned
func (r *Result) AVSCode() string {
	if r.AVS == nil {
		return ""
	}
	return r.AVS.Code
}

// CVVCode returns the CVV result code, or "" when none was returned
func (r *Result) CVVCode() string {
	if r.CVV == nil {
		return ""
	}
	return r.CVV.Code
}

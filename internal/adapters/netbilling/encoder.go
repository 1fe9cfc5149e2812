package netbilling

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kevin07696/netbilling-gateway/internal/adapters/ports"
)

// payTypeCard marks the payment as a card-type payment
const payTypeCard = "C"

// transactionTypes maps each operation to its tran_type code
var transactionTypes = map[ports.Operation]string{
	ports.OperationAuthorization:      "A",
	ports.OperationPurchase:           "S",
	ports.OperationReferencedCredit:   "R",
	ports.OperationUnreferencedCredit: "C",
	ports.OperationCapture:            "D",
}

// TransactionType returns the tran_type code for op
func TransactionType(op ports.Operation) (string, bool) {
	code, ok := transactionTypes[op]
	return code, ok
}

// postData adds account and transaction-type fields to a copy of fields
// and returns the encoded body. The caller's FieldSet is left untouched.
func (g *gateway) postData(op ports.Operation, fields *FieldSet) ([]byte, error) {
	tranType, ok := TransactionType(op)
	if !ok {
		return nil, fmt.Errorf("unsupported operation: %s", op)
	}

	params := fields.Clone()
	params.Set(fieldAccountID, g.config.Login)
	params.Set(fieldSiteTag, g.config.SiteTag)
	params.Set(fieldPayType, payTypeCard)
	params.Set(fieldTranType, tranType)

	return []byte(encodeFields(stripBlank(params))), nil
}

// stripBlank returns the fields whose values are not blank
func stripBlank(fields *FieldSet) *FieldSet {
	out := NewFieldSet()
	for _, key := range fields.keys {
		if value := fields.values[key]; !isBlank(value) {
			out.Set(key, value)
		}
	}
	return out
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// encodeFields joins fields as key=value pairs in insertion order,
// form-escaping each value
func encodeFields(fields *FieldSet) string {
	var b strings.Builder
	for i, key := range fields.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(fields.values[key]))
	}
	return b.String()
}

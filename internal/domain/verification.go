package domain

import "strings"

// MatchResult is the outcome of one AVS component check
type MatchResult string

const (
	MatchYes         MatchResult = "Y"
	MatchNo          MatchResult = "N"
	MatchUnsupported MatchResult = "X"
	MatchUnknown     MatchResult = ""
)

// AVSResult is the address verification outcome returned by the gateway
type AVSResult struct {
	Code        string
	Message     string
	StreetMatch MatchResult
	PostalMatch MatchResult
}

// CVVResult is the card security code check returned by the gateway
type CVVResult struct {
	Code    string
	Message string
}

var avsMessages = map[string]string{
	"A": "Street address matches, but 5-digit and 9-digit postal code do not match.",
	"B": "Street address matches, but postal code not verified.",
	"C": "Street address and postal code do not match.",
	"D": "Street address and postal code match.",
	"E": "AVS data is invalid or AVS is not allowed for this card type.",
	"F": "Card member's name does not match, but billing postal code matches.",
	"G": "Non-U.S. issuing bank does not support AVS.",
	"H": "Card member's name does not match. Street address and postal code match.",
	"I": "Address not verified.",
	"J": "Card member's name, billing address, and postal code match. Shipping information verified and chargeback protection guaranteed through the Fraud Protection Program.",
	"K": "Card member's name matches but billing address and billing postal code do not match.",
	"L": "Card member's name and billing postal code match, but billing address does not match.",
	"M": "Street address and postal code match.",
	"N": "Street address and postal code do not match.",
	"O": "Card member's name and billing address match, but billing postal code does not match.",
	"P": "Postal code matches, but street address not verified.",
	"Q": "Card member's name, billing address, and postal code match. Shipping information verified but chargeback protection not guaranteed.",
	"R": "System unavailable.",
	"S": "U.S.-issuing bank does not support AVS.",
	"T": "Card member's name does not match, but street address matches.",
	"U": "Address information unavailable.",
	"V": "Card member's name, billing address, and billing postal code match.",
	"W": "Street address does not match, but 9-digit postal code matches.",
	"X": "Street address and 9-digit postal code match.",
	"Y": "Street address and 5-digit postal code match.",
	"Z": "Street address does not match, but 5-digit postal code matches.",
}

var avsStreetMatch = codeTable(map[MatchResult]string{
	MatchYes:         "ABDHJMOQTVXY",
	MatchNo:          "CKLNWZ",
	MatchUnsupported: "GS",
})

var avsPostalMatch = codeTable(map[MatchResult]string{
	MatchYes:         "DHFJLMPQVWXYZ",
	MatchNo:          "ACKNO",
	MatchUnsupported: "GS",
})

var cvvMessages = map[string]string{
	"D": "CVV check flagged transaction as suspicious",
	"I": "CVV failed data validation check",
	"M": "CVV matches",
	"N": "CVV does not match",
	"P": "CVV not processed",
	"S": "CVV should have been present",
	"U": "CVV request unable to be processed by issuer",
	"X": "Card does not support CVV",
}

func codeTable(groups map[MatchResult]string) map[string]MatchResult {
	table := make(map[string]MatchResult)
	for result, codes := range groups {
		for _, c := range codes {
			table[string(c)] = result
		}
	}
	return table
}

// NewAVSResult wraps a gateway AVS code. Returns nil for an empty code.
func NewAVSResult(code string) *AVSResult {
	if code == "" {
		return nil
	}
	key := strings.ToUpper(code)
	return &AVSResult{
		Code:        code,
		Message:     avsMessages[key],
		StreetMatch: avsStreetMatch[key],
		PostalMatch: avsPostalMatch[key],
	}
}

// NewCVVResult wraps a gateway CVV code. Returns nil for an empty code.
func NewCVVResult(code string) *CVVResult {
	if code == "" {
		return nil
	}
	return &CVVResult{
		Code:    code,
		Message: cvvMessages[strings.ToUpper(code)],
	}
}

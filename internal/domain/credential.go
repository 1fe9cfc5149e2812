package domain

import (
	"regexp"
	"strings"
)

// Credential is the funding source for a charge. It is a closed sum type:
// either a StoredToken or a CreditCard.
type Credential interface {
	credential()
}

// StoredToken references card data retained by the gateway from an earlier
// transaction, in the form "CS:<transaction-id>:<last-5-digits>".
// The value is opaque and is sent back to the gateway verbatim.
type StoredToken string

func (StoredToken) credential() {}

// String returns the raw token value
func (t StoredToken) String() string {
	return string(t)
}

// CardBrand identifies a card network
type CardBrand string

const (
	CardBrandVisa            CardBrand = "visa"
	CardBrandMaster          CardBrand = "master"
	CardBrandAmericanExpress CardBrand = "american_express"
	CardBrandDiscover        CardBrand = "discover"
	CardBrandJCB             CardBrand = "jcb"
	CardBrandDinersClub      CardBrand = "diners_club"
	CardBrandMaestro         CardBrand = "maestro"
)

// supportedCardBrands is the allow-list of brands the gateway accepts
var supportedCardBrands = map[CardBrand]bool{
	CardBrandVisa:            true,
	CardBrandMaster:          true,
	CardBrandAmericanExpress: true,
	CardBrandDiscover:        true,
	CardBrandJCB:             true,
	CardBrandDinersClub:      true,
}

// IsSupported reports whether the gateway accepts cards of this brand
func (b CardBrand) IsSupported() bool {
	return supportedCardBrands[b]
}

// brandPatterns is checked in order; the first match wins
var brandPatterns = []struct {
	brand   CardBrand
	pattern *regexp.Regexp
}{
	{CardBrandVisa, regexp.MustCompile(`^4\d{12}(\d{3})?(\d{3})?$`)},
	{CardBrandMaster, regexp.MustCompile(`^(5[1-5]\d{4}|677189|222[1-9]\d{2}|22[3-9]\d{3}|2[3-6]\d{4}|27[01]\d{3}|2720\d{2})\d{10}$`)},
	{CardBrandDiscover, regexp.MustCompile(`^(6011|65\d{2}|64[4-9]\d)\d{12,15}$`)},
	{CardBrandAmericanExpress, regexp.MustCompile(`^3[47]\d{13}$`)},
	{CardBrandDinersClub, regexp.MustCompile(`^3(0[0-5]|[68]\d)\d{11,16}$`)},
	{CardBrandJCB, regexp.MustCompile(`^35(28|29|[3-8]\d)\d{12}$`)},
	{CardBrandMaestro, regexp.MustCompile(`^(5018|5020|5038|6304|6759|676[1-3])\d{8,15}$`)},
}

// DetectCardBrand infers the brand from the card number prefix and length.
// Returns an empty brand when the number matches no known network.
func DetectCardBrand(number string) CardBrand {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, number)

	for _, bp := range brandPatterns {
		if bp.pattern.MatchString(digits) {
			return bp.brand
		}
	}
	return ""
}

// CreditCard carries raw card details for a first-time charge.
// Validation of the card itself (Luhn, expiry) is the caller's concern.
type CreditCard struct {
	FirstName         string
	LastName          string
	Number            string
	Month             int
	Year              int
	VerificationValue string

	// Brand may be left empty, in which case it is detected from Number
	Brand CardBrand
}

func (CreditCard) credential() {}

// CardBrand returns the explicit brand, falling back to detection from the number
func (c CreditCard) CardBrand() CardBrand {
	if c.Brand != "" {
		return CardBrand(strings.ToLower(string(c.Brand)))
	}
	return DetectCardBrand(c.Number)
}

// LastDigits returns the trailing n digits of the card number
func (c CreditCard) LastDigits(n int) string {
	if len(c.Number) <= n {
		return c.Number
	}
	return c.Number[len(c.Number)-n:]
}

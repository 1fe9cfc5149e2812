package netbilling

import (
	"fmt"

	"github.com/kevin07696/netbilling-gateway/internal/domain"
)

// FundingSource is the wire representation chosen for a credential
type FundingSource string

const (
	FundingSourceCreditCard  FundingSource = "credit_card"
	FundingSourceStoredToken FundingSource = "stored_token"

	// fundingSourceReference labels capture and refund calls in metrics;
	// they carry orig_id instead of a credential
	fundingSourceReference FundingSource = "reference"
)

// determineFundingSource picks the wire representation for credential.
// A StoredToken is always accepted; a card must be of a supported brand.
func determineFundingSource(credential domain.Credential) (FundingSource, error) {
	switch c := credential.(type) {
	case domain.StoredToken:
		return FundingSourceStoredToken, nil
	case domain.CreditCard:
		return cardFundingSource(c)
	case *domain.CreditCard:
		if c == nil {
			return "", domain.ErrInvalidCredential
		}
		return cardFundingSource(*c)
	default:
		return "", domain.ErrInvalidCredential.WithDetail("credential_type", fmt.Sprintf("%T", credential))
	}
}

func cardFundingSource(card domain.CreditCard) (FundingSource, error) {
	brand := card.CardBrand()
	if !brand.IsSupported() {
		return "", domain.ErrInvalidCredential.WithDetail("card_brand", string(brand))
	}
	return FundingSourceCreditCard, nil
}

// addPaymentSource resolves credential and writes its fields.
// Exactly one of the card or token representations is emitted.
func addPaymentSource(fields *FieldSet, credential domain.Credential, opts domain.PaymentOptions) (FundingSource, error) {
	source, err := determineFundingSource(credential)
	if err != nil {
		return "", err
	}

	switch source {
	case FundingSourceStoredToken:
		addStoredToken(fields, credential.(domain.StoredToken))
	case FundingSourceCreditCard:
		addCreditCard(fields, asCreditCard(credential), opts)
	}
	return source, nil
}

func asCreditCard(credential domain.Credential) domain.CreditCard {
	if c, ok := credential.(*domain.CreditCard); ok {
		return *c
	}
	return credential.(domain.CreditCard)
}

func addStoredToken(fields *FieldSet, token domain.StoredToken) {
	fields.Set(fieldCardNumber, token.String())
}

func addCreditCard(fields *FieldSet, card domain.CreditCard, opts domain.PaymentOptions) {
	fields.Set(fieldBillName1, card.FirstName)
	fields.Set(fieldBillName2, card.LastName)
	fields.Set(fieldCardNumber, card.Number)
	fields.Set(fieldCardExpire, expDate(card.Month, card.Year))
	fields.Set(fieldCardCVV2, card.VerificationValue)
	if opts.Store {
		fields.Set(fieldCISPStorage, "1")
	}
}

// expDate formats an expiry as MMYY: month zero-padded to two digits and
// the last two digits of the four-digit year, e.g. (3, 2026) -> "0326".
func expDate(month, year int) string {
	y := fmt.Sprintf("%04d", year)
	return fmt.Sprintf("%02d%s", month, y[len(y)-2:])
}

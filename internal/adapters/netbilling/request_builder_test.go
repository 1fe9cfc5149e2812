package netbilling

import (
	"testing"

	"github.com/kevin07696/netbilling-gateway/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullOptions() domain.PaymentOptions {
	return domain.PaymentOptions{
		Description: "Gold membership",
		Email:       "jane@example.com",
		IP:          "203.0.113.7",
		BillingAddress: &domain.Address{
			Street:  "456 My Street",
			City:    "Ottawa",
			State:   "ON",
			Zip:     "K1C2N6",
			Country: "CA",
			Phone:   "(555)555-5555",
		},
		ShippingAddress: &domain.ShippingAddress{
			Name:    "Jane Q Doe",
			Street:  "1 Ship Lane",
			City:    "Kingston",
			State:   "ON",
			Zip:     "K7L1A1",
			Country: "CA",
		},
	}
}

func TestBuildPaymentFields_CreditCard(t *testing.T) {
	fields, source, err := buildPaymentFields(decimal.RequireFromString("10.5"), testCard(), fullOptions())
	require.NoError(t, err)
	assert.Equal(t, FundingSourceCreditCard, source)

	want := map[string]string{
		fieldAmount:      "10.50",
		fieldDescription: "Gold membership",
		fieldCardNumber:  "4111111111111111",
		fieldCardExpire:  "0428",
		fieldCardCVV2:    "123",
		fieldBillName1:   "Longbob",
		fieldBillName2:   "Longsen",
		fieldBillStreet:  "456 My Street",
		fieldBillCity:    "Ottawa",
		fieldBillState:   "ON",
		fieldBillZip:     "K1C2N6",
		fieldBillCountry: "CA",
		fieldCustPhone:   "(555)555-5555",
		fieldShipName1:   "Jane Q",
		fieldShipName2:   "Doe",
		fieldShipStreet:  "1 Ship Lane",
		fieldShipCity:    "Kingston",
		fieldShipState:   "ON",
		fieldShipZip:     "K7L1A1",
		fieldShipCountry: "CA",
		fieldCustEmail:   "jane@example.com",
		fieldCustIP:      "203.0.113.7",
	}
	for key, value := range want {
		got, ok := fields.Get(key)
		assert.True(t, ok, key)
		assert.Equal(t, value, got, key)
	}
	assert.Equal(t, len(want), fields.size())
	assert.Equal(t, fieldAmount, fields.Keys()[0])
}

func TestBuildPaymentFields_AbsentOptionsNotSet(t *testing.T) {
	fields, _, err := buildPaymentFields(decimal.NewFromInt(10), testCard(), domain.PaymentOptions{})
	require.NoError(t, err)

	for _, key := range []string{fieldDescription, fieldCustEmail, fieldCustIP, fieldBillStreet, fieldShipName1} {
		assert.False(t, fields.has(key), key)
	}
}

func TestBuildPaymentFields_StoredTokenSkipsProfile(t *testing.T) {
	token := domain.StoredToken("CS:110081003940:11111")

	fields, source, err := buildPaymentFields(decimal.NewFromInt(10), token, fullOptions())
	require.NoError(t, err)
	assert.Equal(t, FundingSourceStoredToken, source)
	assert.Equal(t, []string{fieldAmount, fieldDescription, fieldCardNumber}, fields.Keys())
}

func TestBuildPaymentFields_StoredTokenRefreshesProfile(t *testing.T) {
	opts := fullOptions()
	opts.Store = true

	fields, _, err := buildPaymentFields(decimal.NewFromInt(10), domain.StoredToken("CS:1:11111"), opts)
	require.NoError(t, err)

	assert.True(t, fields.has(fieldBillStreet))
	assert.True(t, fields.has(fieldCustEmail))
	assert.False(t, fields.has(fieldCISPStorage), "storage flag is only sent with raw card data")
	assert.False(t, fields.has(fieldCardExpire))
}

func TestBuildPaymentFields_Errors(t *testing.T) {
	_, _, err := buildPaymentFields(decimal.NewFromInt(-1), testCard(), domain.PaymentOptions{})
	assert.ErrorIs(t, err, domain.ErrValidationAmountInvalid)

	_, _, err = buildPaymentFields(decimal.NewFromInt(1), unknownCredential{}, domain.PaymentOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidCredential)
}

func TestBuildReferenceFields(t *testing.T) {
	fields, err := buildReferenceFields(decimal.NewFromInt(5), "110270311543")
	require.NoError(t, err)
	assert.Equal(t, []string{fieldAmount, fieldOrigID}, fields.Keys())

	v, _ := fields.Get(fieldOrigID)
	assert.Equal(t, "110270311543", v)

	_, err = buildReferenceFields(decimal.NewFromInt(5), "  ")
	assert.ErrorIs(t, err, domain.ErrValidationMissingField)

	_, err = buildReferenceFields(decimal.NewFromInt(-5), "110270311543")
	assert.ErrorIs(t, err, domain.ErrValidationAmountInvalid)
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name      string
		wantFirst string
		wantLast  string
	}{
		{"Jane Doe", "Jane", "Doe"},
		{"Madonna", "", "Madonna"},
		{"Mary Ann van Dyke", "Mary Ann van", "Dyke"},
		{"  Jane   Doe  ", "Jane", "Doe"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := splitName(tt.name)
			assert.Equal(t, tt.wantFirst, first)
			assert.Equal(t, tt.wantLast, last)
		})
	}
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCardBrand(t *testing.T) {
	tests := []struct {
		number string
		want   CardBrand
	}{
		{"4111111111111111", CardBrandVisa},
		{"4222222222222", CardBrandVisa},
		{"4111 1111 1111 1111", CardBrandVisa},
		{"4111-1111-1111-1111", CardBrandVisa},
		{"5555555555554444", CardBrandMaster},
		{"2223000048400011", CardBrandMaster},
		{"378282246310005", CardBrandAmericanExpress},
		{"6011111111111117", CardBrandDiscover},
		{"30569309025904", CardBrandDinersClub},
		{"3530111333300000", CardBrandJCB},
		{"6759649826438453", CardBrandMaestro},
		{"1234567890123456", ""},
		{"", ""},
		{"4111x11111111111", ""},
	}

	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCardBrand(tt.number))
		})
	}
}

func TestCardBrand_IsSupported(t *testing.T) {
	for _, brand := range []CardBrand{
		CardBrandVisa, CardBrandMaster, CardBrandAmericanExpress,
		CardBrandDiscover, CardBrandJCB, CardBrandDinersClub,
	} {
		assert.True(t, brand.IsSupported(), brand)
	}
	assert.False(t, CardBrandMaestro.IsSupported())
	assert.False(t, CardBrand("").IsSupported())
	assert.False(t, CardBrand("laser").IsSupported())
}

func TestCreditCard_CardBrand(t *testing.T) {
	detected := CreditCard{Number: "4111111111111111"}
	assert.Equal(t, CardBrandVisa, detected.CardBrand())

	explicit := CreditCard{Number: "4111111111111111", Brand: "MASTER"}
	assert.Equal(t, CardBrandMaster, explicit.CardBrand())
}

func TestCreditCard_LastDigits(t *testing.T) {
	card := CreditCard{Number: "4111111111111234"}
	assert.Equal(t, "1234", card.LastDigits(4))
	assert.Equal(t, "11234", card.LastDigits(5))
	assert.Equal(t, "123", CreditCard{Number: "123"}.LastDigits(4))
}

func TestStoredToken_String(t *testing.T) {
	token := StoredToken("CS:110081003940:11111")
	assert.Equal(t, "CS:110081003940:11111", token.String())

	var cred Credential = token
	_, ok := cred.(StoredToken)
	assert.True(t, ok)
}

package netbilling

import (
	"strings"

	"github.com/kevin07696/netbilling-gateway/internal/domain"
	"github.com/shopspring/decimal"
)

// buildPaymentFields assembles the fields for a charge or credit against a credential
func buildPaymentFields(amount decimal.Decimal, credential domain.Credential, opts domain.PaymentOptions) (*FieldSet, FundingSource, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, "", err
	}

	fields := NewFieldSet()
	addAmount(fields, amount)
	addInvoice(fields, opts)

	source, err := addPaymentSource(fields, credential, opts)
	if err != nil {
		return nil, "", err
	}

	if sendsProfile(source, opts) {
		addAddress(fields, opts)
		addCustomerData(fields, opts)
	}
	return fields, source, nil
}

// buildReferenceFields assembles the fields for an operation on a prior transaction
func buildReferenceFields(amount decimal.Decimal, authorization string) (*FieldSet, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if strings.TrimSpace(authorization) == "" {
		return nil, domain.ErrValidationMissingField.WithDetail("field", fieldOrigID)
	}

	fields := NewFieldSet()
	addAmount(fields, amount)
	addReference(fields, authorization)
	return fields, nil
}

// sendsProfile reports whether contact and address data go on the wire.
// Reusing a stored token without Store relies on the profile the gateway
// already holds for it.
func sendsProfile(source FundingSource, opts domain.PaymentOptions) bool {
	return source != FundingSourceStoredToken || opts.Store
}

func addAmount(fields *FieldSet, amount decimal.Decimal) {
	fields.Set(fieldAmount, domain.FormatAmount(amount))
}

func addReference(fields *FieldSet, authorization string) {
	fields.Set(fieldOrigID, authorization)
}

func addInvoice(fields *FieldSet, opts domain.PaymentOptions) {
	if opts.Description != "" {
		fields.Set(fieldDescription, opts.Description)
	}
}

func addCustomerData(fields *FieldSet, opts domain.PaymentOptions) {
	if opts.Email != "" {
		fields.Set(fieldCustEmail, opts.Email)
	}
	if opts.IP != "" {
		fields.Set(fieldCustIP, opts.IP)
	}
}

func addAddress(fields *FieldSet, opts domain.PaymentOptions) {
	if billing := opts.BillingAddress; billing != nil {
		fields.Set(fieldBillStreet, billing.Street)
		fields.Set(fieldCustPhone, billing.Phone)
		fields.Set(fieldBillZip, billing.Zip)
		fields.Set(fieldBillCity, billing.City)
		fields.Set(fieldBillCountry, billing.Country)
		fields.Set(fieldBillState, billing.State)
	}

	if shipping := opts.ShippingAddress; shipping != nil {
		firstName, lastName := splitName(shipping.Name)
		fields.Set(fieldShipName1, firstName)
		fields.Set(fieldShipName2, lastName)
		fields.Set(fieldShipStreet, shipping.Street)
		fields.Set(fieldShipZip, shipping.Zip)
		fields.Set(fieldShipCity, shipping.City)
		fields.Set(fieldShipCountry, shipping.Country)
		fields.Set(fieldShipState, shipping.State)
	}
}

// splitName splits "first middle last" into ("first middle", "last").
// A single word is taken as the last name.
func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	last := parts[len(parts)-1]
	return strings.Join(parts[:len(parts)-1], " "), last
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kevin07696/netbilling-gateway/internal/adapters/ports"
	"github.com/kevin07696/netbilling-gateway/internal/domain"
)

// operations maps -op values to gateway operations
var operations = map[string]ports.Operation{
	"authorize": ports.OperationAuthorization,
	"purchase":  ports.OperationPurchase,
	"capture":   ports.OperationCapture,
	"refund":    ports.OperationReferencedCredit,
	"credit":    ports.OperationUnreferencedCredit,
}

type cliFlags struct {
	op     string
	amount string

	cardNumber string
	firstName  string
	lastName   string
	expMonth   int
	expYear    int
	cvv        string
	brand      string
	token      string

	authorization string

	description string
	email       string
	ip          string
	store       bool

	billStreet  string
	billCity    string
	billState   string
	billZip     string
	billCountry string
	phone       string

	shipName    string
	shipStreet  string
	shipCity    string
	shipState   string
	shipZip     string
	shipCountry string

	metricsAddr string
	hold        bool
	grace       time.Duration
}

// request is one parsed gateway call
type request struct {
	op            ports.Operation
	amount        decimal.Decimal
	credential    domain.Credential
	authorization string
	opts          domain.PaymentOptions
}

func parseFlags(args []string, output io.Writer) (*cliFlags, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("netbilling", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&f.op, "op", "", "operation: authorize, purchase, capture, refund, credit")
	fs.StringVar(&f.amount, "amount", "", "amount in major units, e.g. 10.00")

	fs.StringVar(&f.cardNumber, "card", "", "card number")
	fs.StringVar(&f.firstName, "first-name", "", "cardholder first name")
	fs.StringVar(&f.lastName, "last-name", "", "cardholder last name")
	fs.IntVar(&f.expMonth, "exp-month", 0, "card expiry month")
	fs.IntVar(&f.expYear, "exp-year", 0, "card expiry year (four digits)")
	fs.StringVar(&f.cvv, "cvv", "", "card verification value")
	fs.StringVar(&f.brand, "brand", "", "card brand, detected from the number when empty")
	fs.StringVar(&f.token, "token", "", "stored card token (CS:<trans_id>:<last5>)")

	fs.StringVar(&f.authorization, "authorization", "", "transaction id for capture and refund")

	fs.StringVar(&f.description, "description", "", "order description")
	fs.StringVar(&f.email, "email", "", "customer email")
	fs.StringVar(&f.ip, "ip", "", "customer IP address")
	fs.BoolVar(&f.store, "store", false, "ask the gateway to retain the card for later token use")

	fs.StringVar(&f.billStreet, "bill-street", "", "billing street")
	fs.StringVar(&f.billCity, "bill-city", "", "billing city")
	fs.StringVar(&f.billState, "bill-state", "", "billing state")
	fs.StringVar(&f.billZip, "bill-zip", "", "billing postal code")
	fs.StringVar(&f.billCountry, "bill-country", "", "billing country")
	fs.StringVar(&f.phone, "phone", "", "customer phone")

	fs.StringVar(&f.shipName, "ship-name", "", "shipping recipient full name")
	fs.StringVar(&f.shipStreet, "ship-street", "", "shipping street")
	fs.StringVar(&f.shipCity, "ship-city", "", "shipping city")
	fs.StringVar(&f.shipState, "ship-state", "", "shipping state")
	fs.StringVar(&f.shipZip, "ship-zip", "", "shipping postal code")
	fs.StringVar(&f.shipCountry, "ship-country", "", "shipping country")

	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "serve /metrics and /health on this address")
	fs.BoolVar(&f.hold, "hold", false, "keep the metrics server up after the call until interrupted")
	fs.DurationVar(&f.grace, "grace", 5*time.Second, "extra time allowed beyond the transport timeout")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// request validates the flag combination for the chosen operation
func (f *cliFlags) request() (*request, error) {
	op, ok := operations[f.op]
	if !ok {
		return nil, fmt.Errorf("unknown -op %q", f.op)
	}

	amount, err := decimal.NewFromString(f.amount)
	if err != nil {
		return nil, fmt.Errorf("invalid -amount %q: %w", f.amount, err)
	}

	req := &request{op: op, amount: amount}

	switch op {
	case ports.OperationCapture, ports.OperationReferencedCredit:
		if f.authorization == "" {
			return nil, fmt.Errorf("-authorization is required for %s", f.op)
		}
		req.authorization = f.authorization
		return req, nil
	}

	switch {
	case f.token != "" && f.cardNumber != "":
		return nil, errors.New("use either -card or -token, not both")
	case f.token != "":
		req.credential = domain.StoredToken(f.token)
	case f.cardNumber != "":
		req.credential = domain.CreditCard{
			FirstName:         f.firstName,
			LastName:          f.lastName,
			Number:            strings.ReplaceAll(f.cardNumber, " ", ""),
			Month:             f.expMonth,
			Year:              f.expYear,
			VerificationValue: f.cvv,
			Brand:             domain.CardBrand(f.brand),
		}
	default:
		return nil, fmt.Errorf("-card or -token is required for %s", f.op)
	}

	req.opts = f.options()
	return req, nil
}

func (f *cliFlags) options() domain.PaymentOptions {
	opts := domain.PaymentOptions{
		Description: f.description,
		Email:       f.email,
		IP:          f.ip,
		Store:       f.store,
	}
	if f.billStreet != "" || f.billCity != "" || f.billState != "" || f.billZip != "" || f.billCountry != "" || f.phone != "" {
		opts.BillingAddress = &domain.Address{
			Street:  f.billStreet,
			City:    f.billCity,
			State:   f.billState,
			Zip:     f.billZip,
			Country: f.billCountry,
			Phone:   f.phone,
		}
	}
	if f.shipName != "" || f.shipStreet != "" || f.shipCity != "" || f.shipState != "" || f.shipZip != "" || f.shipCountry != "" {
		opts.ShippingAddress = &domain.ShippingAddress{
			Name:    f.shipName,
			Street:  f.shipStreet,
			City:    f.shipCity,
			State:   f.shipState,
			Zip:     f.shipZip,
			Country: f.shipCountry,
		}
	}
	return opts
}

func execute(ctx context.Context, gateway ports.GatewayAdapter, req *request) (*domain.Result, error) {
	switch req.op {
	case ports.OperationAuthorization:
		return gateway.Authorize(ctx, req.amount, req.credential, req.opts)
	case ports.OperationPurchase:
		return gateway.Purchase(ctx, req.amount, req.credential, req.opts)
	case ports.OperationUnreferencedCredit:
		return gateway.Credit(ctx, req.amount, req.credential, req.opts)
	case ports.OperationCapture:
		return gateway.Capture(ctx, req.amount, req.authorization)
	case ports.OperationReferencedCredit:
		return gateway.Refund(ctx, req.amount, req.authorization)
	default:
		return nil, fmt.Errorf("unsupported operation: %s", req.op)
	}
}

type resultOutput struct {
	Success       bool              `json:"success"`
	Message       string            `json:"message"`
	Authorization string            `json:"authorization,omitempty"`
	Test          bool              `json:"test"`
	AVSCode       string            `json:"avs_code,omitempty"`
	AVSMessage    string            `json:"avs_message,omitempty"`
	CVVCode       string            `json:"cvv_code,omitempty"`
	CVVMessage    string            `json:"cvv_message,omitempty"`
	Raw           map[string]string `json:"raw"`
}

func writeResult(w io.Writer, result *domain.Result) error {
	out := resultOutput{
		Success:       result.Success,
		Message:       result.Message,
		Authorization: result.Authorization,
		Test:          result.Test,
		AVSCode:       result.AVSCode(),
		CVVCode:       result.CVVCode(),
		Raw:           result.Raw,
	}
	if result.AVS != nil {
		out.AVSMessage = result.AVS.Message
	}
	if result.CVV != nil {
		out.CVVMessage = result.CVV.Message
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

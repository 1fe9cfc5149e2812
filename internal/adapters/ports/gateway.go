package ports

import (
	"context"

	"github.com/kevin07696/netbilling-gateway/internal/domain"
	"github.com/shopspring/decimal"
)

// Operation is a NETbilling transaction type
type Operation string

const (
	OperationAuthorization      Operation = "authorization"
	OperationPurchase           Operation = "purchase"
	OperationReferencedCredit   Operation = "referenced_credit"
	OperationUnreferencedCredit Operation = "unreferenced_credit"
	OperationCapture            Operation = "capture"
)

// GatewayAdapter defines the port for the NETbilling direct-mode gateway.
// Declines are reported through Result.Success, never as errors. Errors are
// returned for:
//   - unsupported credentials or invalid amounts (before any network I/O)
//   - transport failures (returned unchanged from the Transport)
type GatewayAdapter interface {
	// Authorize places a hold for amount on the credential
	Authorize(ctx context.Context, amount decimal.Decimal, credential domain.Credential, opts domain.PaymentOptions) (*domain.Result, error)

	// Purchase authorizes and captures in one step
	Purchase(ctx context.Context, amount decimal.Decimal, credential domain.Credential, opts domain.PaymentOptions) (*domain.Result, error)

	// Capture settles a previous authorization identified by its transaction id
	Capture(ctx context.Context, amount decimal.Decimal, authorization string) (*domain.Result, error)

	// Refund credits back a previous transaction identified by its transaction id
	Refund(ctx context.Context, amount decimal.Decimal, authorization string) (*domain.Result, error)

	// Credit pays amount out to a credential without a prior transaction
	Credit(ctx context.Context, amount decimal.Decimal, credential domain.Credential, opts domain.PaymentOptions) (*domain.Result, error)
}

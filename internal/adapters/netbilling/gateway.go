package netbilling

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kevin07696/netbilling-gateway/internal/adapters/ports"
	"github.com/kevin07696/netbilling-gateway/internal/domain"
	"github.com/kevin07696/netbilling-gateway/pkg/observability"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// LiveURL is the NETbilling direct-mode endpoint
	LiveURL = "https://secure.netbilling.com:1402/gw/sas/direct3.1"

	// TestLogin is the account id NETbilling issues for integration testing
	TestLogin = "104901072025"
)

// Config contains the static account settings for the gateway
type Config struct {
	// Login is the NETbilling account id (required)
	Login string

	// SiteTag identifies the site within the account (optional)
	SiteTag string

	// Test forces test mode regardless of Login
	Test bool
}

// IsTest reports whether results from this account are test transactions
func (c Config) IsTest() bool {
	return c.Test || c.Login == TestLogin
}

// Validate checks the configuration for required fields
func (c Config) Validate() error {
	if strings.TrimSpace(c.Login) == "" {
		return domain.ErrLoginRequired
	}
	return nil
}

// gateway implements the GatewayAdapter port for NETbilling
type gateway struct {
	config    Config
	transport ports.Transport
	logger    *zap.Logger
}

// NewGateway creates a NETbilling gateway adapter. The adapter holds no
// per-call state and is safe for concurrent use if transport is.
func NewGateway(config Config, transport ports.Transport, logger *zap.Logger) (ports.GatewayAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if transport == nil {
		return nil, domain.ErrTransportRequired
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &gateway{
		config:    config,
		transport: transport,
		logger:    logger.Named("netbilling"),
	}, nil
}

// Authorize places a hold on the credential
func (g *gateway) Authorize(ctx context.Context, amount decimal.Decimal, credential domain.Credential, opts domain.PaymentOptions) (*domain.Result, error) {
	return g.charge(ctx, ports.OperationAuthorization, amount, credential, opts)
}

// Purchase authorizes and captures in one request
func (g *gateway) Purchase(ctx context.Context, amount decimal.Decimal, credential domain.Credential, opts domain.PaymentOptions) (*domain.Result, error) {
	return g.charge(ctx, ports.OperationPurchase, amount, credential, opts)
}

// Credit pays out to a credential without referencing a prior transaction
func (g *gateway) Credit(ctx context.Context, amount decimal.Decimal, credential domain.Credential, opts domain.PaymentOptions) (*domain.Result, error) {
	return g.charge(ctx, ports.OperationUnreferencedCredit, amount, credential, opts)
}

// Capture settles an earlier authorization
func (g *gateway) Capture(ctx context.Context, amount decimal.Decimal, authorization string) (*domain.Result, error) {
	return g.reference(ctx, ports.OperationCapture, amount, authorization)
}

// Refund credits back an earlier transaction
func (g *gateway) Refund(ctx context.Context, amount decimal.Decimal, authorization string) (*domain.Result, error) {
	return g.reference(ctx, ports.OperationReferencedCredit, amount, authorization)
}

func (g *gateway) charge(ctx context.Context, op ports.Operation, amount decimal.Decimal, credential domain.Credential, opts domain.PaymentOptions) (*domain.Result, error) {
	fields, source, err := buildPaymentFields(amount, credential, opts)
	if err != nil {
		g.logger.Error("Rejected NETbilling request",
			zap.String("operation", string(op)),
			zap.Error(err),
		)
		return nil, err
	}
	return g.commit(ctx, op, source, fields)
}

func (g *gateway) reference(ctx context.Context, op ports.Operation, amount decimal.Decimal, authorization string) (*domain.Result, error) {
	fields, err := buildReferenceFields(amount, authorization)
	if err != nil {
		g.logger.Error("Rejected NETbilling request",
			zap.String("operation", string(op)),
			zap.Error(err),
		)
		return nil, err
	}
	return g.commit(ctx, op, fundingSourceReference, fields)
}

// commit encodes fields, posts them and interprets the reply.
// Transport errors are returned unchanged.
func (g *gateway) commit(ctx context.Context, op ports.Operation, source FundingSource, fields *FieldSet) (*domain.Result, error) {
	body, err := g.postData(op, fields)
	if err != nil {
		return nil, err
	}

	requestID := ports.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = ports.WithRequestID(ctx, requestID)
	}
	amount, _ := fields.Get(fieldAmount)

	logger := g.logger.With(
		zap.String("request_id", requestID),
		zap.String("operation", string(op)),
	)
	logger.Info("Processing NETbilling transaction",
		zap.String("amount", amount),
		zap.String("funding_source", string(source)),
		zap.Bool("test", g.config.IsTest()),
	)

	startTime := time.Now()
	respBody, err := g.transport.Post(ctx, body)
	elapsed := time.Since(startTime)
	if err != nil {
		logger.Error("NETbilling request failed",
			zap.Error(err),
			zap.Duration("elapsed", elapsed),
		)
		observability.RecordGatewayTransaction(string(op), "error", string(source), elapsed.Seconds())
		return nil, err
	}

	response, parseErr := parseResponse(respBody)
	protocolErr := checkProtocol(response)
	if mismatch := errors.Join(parseErr, protocolErr); mismatch != nil {
		logger.Warn("Unexpected NETbilling response",
			zap.Error(domain.WrapError(domain.ErrorCodeGatewayProtocolMismatch, domain.ErrProtocolMismatch.Message, mismatch)),
			zap.Int("body_length", len(respBody)),
		)
		observability.RecordProtocolMismatch(string(op))
	}

	result := g.interpret(response, protocolErr)

	status := "declined"
	if result.Success {
		status = "approved"
	}
	observability.RecordGatewayTransaction(string(op), status, string(source), elapsed.Seconds())

	logger.Info("Processed NETbilling transaction",
		zap.String("status_code", response.Get(respStatusCode)),
		zap.Bool("success", result.Success),
		zap.String("message", result.Message),
		zap.String("authorization", result.Authorization),
		zap.String("avs_code", result.AVSCode()),
		zap.String("cvv_code", result.CVVCode()),
		zap.Bool("test", result.Test),
		zap.Duration("elapsed", elapsed),
	)

	return result, nil
}

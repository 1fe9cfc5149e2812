package secrets

import (
	"context"
	"fmt"

	"github.com/kevin07696/netbilling-gateway/internal/adapters/ports"
	"github.com/kevin07696/netbilling-gateway/internal/config"
	"go.uber.org/zap"
)

// NewSecretManager builds the secret backend selected by cfg.Provider
func NewSecretManager(ctx context.Context, cfg config.SecretsConfig, logger *zap.Logger) (ports.SecretManagerAdapter, error) {
	switch cfg.Provider {
	case "local":
		return NewLocalSecretManager(cfg.LocalPath, logger), nil
	case "aws":
		awsCfg := DefaultAWSSecretsManagerConfig(cfg.AWSRegion)
		awsCfg.Profile = cfg.AWSProfile
		awsCfg.Endpoint = cfg.AWSURL
		return NewAWSSecretsManagerAdapter(ctx, awsCfg, logger)
	case "vault":
		vaultCfg := DefaultVaultConfig(cfg.VaultAddr)
		vaultCfg.Token = cfg.VaultToken
		if cfg.VaultMount != "" {
			vaultCfg.MountPath = cfg.VaultMount
		}
		return NewVaultAdapter(ctx, vaultCfg, logger)
	default:
		return nil, fmt.Errorf("unsupported secret provider: %s", cfg.Provider)
	}
}

package ports

import (
	"context"
)

// Secret represents a retrieved secret with metadata
type Secret struct {
	Value     string            // The secret value (e.g., gateway login)
	Version   string            // Secret version identifier
	Metadata  map[string]string // Additional secret metadata
	CreatedAt string            // When this version was created
}

// SecretManagerAdapter defines the port for reading secrets at startup.
// Backends: local filesystem, AWS Secrets Manager, HashiCorp Vault.
type SecretManagerAdapter interface {
	// GetSecret retrieves a secret by its path/name
	// Path format depends on implementation:
	//   - Local: file path relative to the base directory
	//   - AWS: "netbilling/{environment}/login"
	//   - Vault: "netbilling/{environment}" (KV key "value")
	GetSecret(ctx context.Context, path string) (*Secret, error)
}

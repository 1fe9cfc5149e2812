package secrets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSecretValueGetter struct {
	output *secretsmanager.GetSecretValueOutput
	err    error
	calls  []string
}

func (f *fakeSecretValueGetter) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls = append(f.calls, aws.ToString(params.SecretId))
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

func TestAWSSecretsManagerAdapter_GetSecret(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	client := &fakeSecretValueGetter{
		output: &secretsmanager.GetSecretValueOutput{
			SecretString: aws.String("104901072025"),
			VersionId:    aws.String("v-7"),
			ARN:          aws.String("arn:aws:secretsmanager:us-east-1:123:secret:netbilling"),
			Name:         aws.String("netbilling/dev/login"),
			CreatedDate:  &created,
		},
	}
	adapter := newAWSSecretsManagerAdapter(client, DefaultAWSSecretsManagerConfig("us-east-1"), zap.NewNop())

	secret, err := adapter.GetSecret(context.Background(), "netbilling/dev/login")
	require.NoError(t, err)
	assert.Equal(t, "104901072025", secret.Value)
	assert.Equal(t, "v-7", secret.Version)
	assert.Equal(t, "2026-03-01T12:00:00Z", secret.CreatedAt)
	assert.Equal(t, "netbilling/dev/login", secret.Metadata["name"])
	assert.Contains(t, secret.Metadata["arn"], "secret:netbilling")

	// Second read is served from cache
	_, err = adapter.GetSecret(context.Background(), "netbilling/dev/login")
	require.NoError(t, err)
	assert.Equal(t, []string{"netbilling/dev/login"}, client.calls)
}

func TestAWSSecretsManagerAdapter_CacheDisabled(t *testing.T) {
	client := &fakeSecretValueGetter{
		output: &secretsmanager.GetSecretValueOutput{SecretString: aws.String("abc")},
	}
	cfg := DefaultAWSSecretsManagerConfig("us-east-1")
	cfg.EnableCache = false
	adapter := newAWSSecretsManagerAdapter(client, cfg, zap.NewNop())

	for i := 0; i < 2; i++ {
		_, err := adapter.GetSecret(context.Background(), "login")
		require.NoError(t, err)
	}
	assert.Len(t, client.calls, 2)
}

func TestAWSSecretsManagerAdapter_Error(t *testing.T) {
	client := &fakeSecretValueGetter{err: errors.New("ResourceNotFoundException")}
	adapter := newAWSSecretsManagerAdapter(client, DefaultAWSSecretsManagerConfig("us-east-1"), zap.NewNop())

	secret, err := adapter.GetSecret(context.Background(), "missing")
	require.Error(t, err)
	assert.Nil(t, secret)
	assert.Contains(t, err.Error(), "failed to get secret missing")
	assert.ErrorIs(t, err, client.err)
}

package firestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadCredentials(t *testing.T) {
	path := writeFile(t, "key.json", `{"type": "service_account", "project_id": "toki-take-home", "client_email": "dumper@toki-take-home.iam.gserviceaccount.com"}`)

	c, err := LoadCredentials(path)
	require.NoError(t, err)
	assert.Equal(t, "service_account", c.Type)
	assert.Equal(t, "toki-take-home", c.ProjectID)
	assert.Equal(t, "dumper@toki-take-home.iam.gserviceaccount.com", c.ClientEmail)
	assert.NotEmpty(t, c.JSON)
}

func TestLoadCredentialsErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(t.TempDir(), "does-not-exist.json")},
		{"malformed", writeFile(t, "bad.json", `{"type": `)},
		{"no type", writeFile(t, "untyped.json", `{"project_id": "p"}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCredentials(tt.path)
			var ae AuthenticationError
			assert.ErrorAs(t, err, &ae)
		})
	}
}

func TestNewClientMissingCredentials(t *testing.T) {
	client, err := NewClient(context.Background(), ClientConfig{
		CredentialsFile: filepath.Join(t.TempDir(), "toki-take-home-774e713e21c1.json"),
	})
	assert.Nil(t, client)
	var ae AuthenticationError
	assert.ErrorAs(t, err, &ae)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

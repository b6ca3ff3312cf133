package firestore

import (
	"context"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// ClientConfig names everything needed to open a Firestore client.
type ClientConfig struct {
	// CredentialsFile is a service-account key. If empty, Application Default Credentials are used.
	CredentialsFile string

	// ProjectID overrides the project named in the credential file.
	ProjectID string

	// DatabaseID selects a named database. If empty, the default database is used.
	DatabaseID string
}

// NewClient opens a Firestore client. Any construction failure is an AuthenticationError.
func NewClient(ctx context.Context, cfg ClientConfig) (*fs.Client, error) {
	var opts []option.ClientOption
	project := cfg.ProjectID
	if cfg.CredentialsFile != "" {
		creds, err := LoadCredentials(cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithCredentialsJSON(creds.JSON))
		if project == "" {
			project = creds.ProjectID
		}
	}
	if project == "" {
		project = fs.DetectProjectID
	}
	var client *fs.Client
	var err error
	// NewClientWithDatabase refuses the default database by name.
	if cfg.DatabaseID == "" || cfg.DatabaseID == fs.DefaultDatabaseID {
		client, err = fs.NewClient(ctx, project, opts...)
	} else {
		client, err = fs.NewClientWithDatabase(ctx, project, cfg.DatabaseID, opts...)
	}
	if err != nil {
		return nil, AuthenticationError{Err: err}
	}
	return client, nil
}

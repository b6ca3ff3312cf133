package firestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// DEFAULT_CREDENTIALS is the service-account key read when no other path is given.
const DEFAULT_CREDENTIALS = "../toki-take-home-774e713e21c1.json"

// Credentials is the subset of a service-account key that the client needs before dialing.
type Credentials struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`

	// JSON is the raw file contents, handed to the client untouched.
	JSON []byte `json:"-"`
}

// LoadCredentials reads a credential file. Every failure is an AuthenticationError.
func LoadCredentials(path string) (Credentials, error) {
	var c Credentials
	b, err := os.ReadFile(path)
	if err != nil {
		return c, AuthenticationError{Err: fmt.Errorf("unable to read credential file: %w", err)}
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return c, AuthenticationError{Err: fmt.Errorf("credential file %s is not valid JSON: %w", path, err)}
	}
	if c.Type == "" {
		return c, AuthenticationError{Err: errors.New("credential file " + path + " has no \"type\" field")}
	}
	c.JSON = b
	return c, nil
}

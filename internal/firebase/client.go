package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Client wraps the Firebase services the server depends on.
type Client struct {
	Firestore *firestore.Client
	Messaging *messaging.Client
}

// NewClient initializes the Firebase app and returns Firestore and Cloud
// Messaging clients. credJSON may be empty, in which case application
// default credentials are used.
func NewClient(ctx context.Context, projectID, credJSON string) (*Client, error) {
	var opts []option.ClientOption
	if credJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credJSON)))
	}

	config := &firebase.Config{
		ProjectID: projectID,
	}

	app, err := firebase.NewApp(ctx, config, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firestore client: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		firestoreClient.Close()
		return nil, fmt.Errorf("failed to get Messaging client: %w", err)
	}

	return &Client{
		Firestore: firestoreClient,
		Messaging: messagingClient,
	}, nil
}

// Close closes the underlying Firestore client.
func (c *Client) Close() error {
	if c.Firestore != nil {
		return c.Firestore.Close()
	}
	return nil
}

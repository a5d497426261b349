package fcm

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// NewMessagingClient builds the Firebase Cloud Messaging client from the
// service-account credentials file named by FIREBASE_CREDENTIALS. The handle
// is returned to the caller and injected where needed; there is no package
// global. A missing credentials path returns (nil, nil) so the server can run
// with push delivery disabled.
func NewMessagingClient(ctx context.Context) (*messaging.Client, error) {
	credentialsPath := os.Getenv("FIREBASE_CREDENTIALS")
	if credentialsPath == "" {
		return nil, nil
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize fcm client: %w", err)
	}
	return client, nil
}

package config

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// InitFirebase initializes the Firebase Admin SDK. It returns a nil app when
// no credentials are configured, which disables push notifications.
func InitFirebase(cfg *Config) (*firebase.App, error) {
	ctx := context.Background()
	fbConfig := &firebase.Config{ProjectID: cfg.FirebaseProjectID}

	// Check for base64 encoded credentials first
	if cfg.FirebaseCredentialsBase64 != "" {
		logrus.Printf("Using Firebase credentials from base64 environment variable")
		decoded, err := base64.StdEncoding.DecodeString(cfg.FirebaseCredentialsBase64)
		if err != nil {
			return nil, fmt.Errorf("error decoding base64 credentials: %w", err)
		}

		app, err := firebase.NewApp(ctx, fbConfig, option.WithCredentialsJSON(decoded))
		if err != nil {
			return nil, fmt.Errorf("error initializing firebase app: %w", err)
		}
		return app, nil
	}

	credFile := cfg.FirebaseCredentialsFile
	if credFile == "" {
		logrus.Warn("Firebase credentials not configured, push notifications disabled")
		return nil, nil
	}
	if _, err := os.Stat(credFile); err != nil {
		return nil, fmt.Errorf("firebase credentials file %s: %w", credFile, err)
	}

	logrus.Printf("Using Firebase credentials file: %s", credFile)
	app, err := firebase.NewApp(ctx, fbConfig, option.WithCredentialsFile(credFile))
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}
	return app, nil
}

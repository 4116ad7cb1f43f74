package firebase

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"firebase.google.com/go/v4/storage"
	"google.golang.org/api/option"

	"github.com/tastytalk/admin-backend/pkg/config"
)

// App holds the initialized Firebase app and the clients the admin uses
type App struct {
	FirebaseApp *firebase.App
	Firestore   *firestore.Client
	Database    *db.Client
	Storage     *storage.Client // nil unless a storage bucket is configured
}

// InitFirebase initializes the Firebase application with Firestore, Realtime Database and Storage clients
func InitFirebase(ctx context.Context, cfg config.FirebaseConfig) (*App, error) {
	if cfg.CredentialsPath == "" {
		return nil, fmt.Errorf("Firebase credentials path not provided")
	}

	// Check if the credentials file exists
	if _, err := os.Stat(cfg.CredentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("Firebase credentials file not found at %s", cfg.CredentialsPath)
	}

	opt := option.WithCredentialsFile(cfg.CredentialsPath)
	appConfig := &firebase.Config{
		DatabaseURL:   cfg.DatabaseURL,
		StorageBucket: cfg.StorageBucket,
	}

	firebaseApp, err := firebase.NewApp(ctx, appConfig, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	firestoreClient, err := firebaseApp.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firestore client: %w", err)
	}

	dbClient, err := firebaseApp.Database(ctx)
	if err != nil {
		firestoreClient.Close()
		return nil, fmt.Errorf("error getting realtime database client: %w", err)
	}

	app := &App{FirebaseApp: firebaseApp, Firestore: firestoreClient, Database: dbClient}

	if cfg.StorageBucket != "" {
		storageClient, err := firebaseApp.Storage(ctx)
		if err != nil {
			firestoreClient.Close()
			return nil, fmt.Errorf("error getting storage client: %w", err)
		}
		app.Storage = storageClient
	}

	log.Println("Firebase app, Firestore and Realtime Database clients initialized successfully!")
	return app, nil
}

// Close releases the Firestore connection
func (a *App) Close() {
	if a.Firestore == nil {
		return
	}
	if err := a.Firestore.Close(); err != nil {
		log.Printf("Error closing Firestore client: %v\n", err)
	} else {
		log.Println("Firestore client closed.")
	}
}

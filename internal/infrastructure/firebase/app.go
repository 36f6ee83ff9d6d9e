// Package firebase conecta con Firebase Admin: proveedor de identidad (Auth) y cliente Firestore.
package firebase

import (
	"context"
	"fmt"

	fb "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/jhoicas/tenant-admin/pkg/config"
)

// NewApp inicializa la app de Firebase Admin con el JSON del service account.
func NewApp(ctx context.Context, cfg config.FirebaseConfig) (*fb.App, error) {
	if cfg.AdminSDKKey == "" {
		return nil, fmt.Errorf("firebase: FIREBASE_ADMIN_SDK_KEY vacío")
	}
	conf := &fb.Config{ProjectID: cfg.ProjectID}
	app, err := fb.NewApp(ctx, conf, option.WithCredentialsJSON([]byte(cfg.AdminSDKKey)))
	if err != nil {
		return nil, fmt.Errorf("firebase: inicializar app: %w", err)
	}
	return app, nil
}

package backend

import (
	"log/slog"
	"time"

	"github.com/Rorical/BloodDesk/internal/config"
)

// FromConfig picks the backend for the active profile and describes it for
// display. Profiles without a base URL get the demo backend.
func FromConfig(cfg *config.Config, logger *slog.Logger) (Backend, string, error) {
	if !cfg.IsRemote() {
		return NewDemoBackend(time.Now()), cfg.ActiveProfile + " (demo data)", nil
	}
	client, err := NewHTTPClient(HTTPConfig{
		BaseURL:  cfg.GetBaseURL(),
		APIToken: cfg.GetAPIToken(),
		Operator: cfg.GetOperator(),
		Timeout:  cfg.GetTimeout(),
	}, logger)
	if err != nil {
		return nil, "", err
	}
	return client, cfg.ActiveProfile + " (" + cfg.GetBaseURL() + ")", nil
}

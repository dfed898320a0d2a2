package usecase

import (
	"context"
	"errors"
	"fmt"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/nguyentranbao-ct/support-desk/internal/models"
	"github.com/nguyentranbao-ct/support-desk/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedAgentEmail    = "sarah.johnson@company.com"
	seedAgentPassword = "password123"
)

// SeedDemoData creates the demo agent and her sample audit trail when the
// store has no such account yet. Idempotent; runs on every startup.
func SeedDemoData(ctx context.Context, users repo.UserRepository, activities repo.ActivityRepository) error {
	if _, err := users.GetByEmail(ctx, seedAgentEmail); err == nil {
		return nil
	} else if !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("check seed agent: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedAgentPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	agent := &models.User{
		FullName:           "Sarah Johnson",
		Email:              seedAgentEmail,
		Password:           string(hash),
		Role:               "support-agent",
		Department:         "customer-support",
		Avatar:             "https://storage.googleapis.com/uxpilot-auth.appspot.com/avatars/avatar-5.jpg",
		Language:           "en",
		EmailNotifications: true,
	}
	if err := users.Create(ctx, agent); err != nil {
		return fmt.Errorf("create seed agent: %w", err)
	}

	samples := []models.Activity{
		{
			Type:        models.ActivitySuccess,
			Title:       "Profile updated successfully",
			Description: "Changed email address and phone number",
		},
		{
			Type:        models.ActivityWarning,
			Title:       "Password changed",
			Description: "Successfully updated account password",
		},
		{
			Type:        models.ActivityInfo,
			Title:       "Logged in from new device",
			Description: "Chrome on MacOS from San Francisco, CA",
		},
	}
	for i := range samples {
		samples[i].UserID = &agent.ID
		if err := activities.Create(ctx, &samples[i]); err != nil {
			return fmt.Errorf("create seed activity: %w", err)
		}
	}

	log.Infow(ctx, "seeded demo data", "agent_id", agent.ID)
	return nil
}

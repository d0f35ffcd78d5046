package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	authDomain "github.com/cube/simple/internal/auth/domain"
	authService "github.com/cube/simple/internal/auth/service"
)

type issuedTokenOutput struct {
	Subject   string    `json:"subject"`
	Role      string    `json:"role"`
	Type      string    `json:"type"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RunIssueToken signs a token for subject with role outside the login flow,
// e.g. to bootstrap the first ADMIN. Output is "text" or "json".
func RunIssueToken(
	tokenService authService.TokenService,
	logger *slog.Logger,
	writer io.Writer,
	subject, role string,
	refresh bool,
	format string,
) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return fmt.Errorf("subject is required")
	}

	r := authDomain.Role(strings.ToUpper(role))
	if !r.Valid() {
		return fmt.Errorf("invalid role: %s (valid options: ADMIN, OWNER, USER)", role)
	}

	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}

	issue := tokenService.IssueAccessToken
	if refresh {
		issue = tokenService.IssueRefreshToken
	}

	issued, err := issue(subject, r)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	logger.Info("token issued",
		slog.String("subject", subject),
		slog.String("role", r.String()),
		slog.String("type", string(issued.Type)),
		slog.Time("expires_at", issued.ExpiresAt))

	out := issuedTokenOutput{
		Subject:   subject,
		Role:      r.String(),
		Type:      string(issued.Type),
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt.UTC(),
	}

	if format == "json" {
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	}

	_, err = fmt.Fprintf(writer, "Token: %s\nType: %s\nExpires At: %s\n",
		out.Token, out.Type, out.ExpiresAt.Format(time.RFC3339))
	return err
}

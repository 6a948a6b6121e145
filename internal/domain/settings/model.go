package settings

import (
	"fmt"
	"strings"
)

// UserSettings is the single-row configuration for the dashboard. ClubTeam
// names the club whose perspective every derived statistic is computed from.
type UserSettings struct {
	ClubTeam string
}

func (s UserSettings) Validate() error {
	if strings.TrimSpace(s.ClubTeam) == "" {
		return fmt.Errorf("club team is required")
	}
	return nil
}

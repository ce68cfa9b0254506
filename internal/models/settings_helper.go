package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/mozd/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Values follow the legacy encoding: the wage as a plain number, the flag as "true".
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		value = strings.TrimSpace(value)
		switch key {
		case constants.SettingDefaultWage:
			if value == "" || value == "null" {
				continue
			}
			wage, err := decimal.NewFromString(strings.Trim(value, `"`))
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.DefaultWage = &wage
		case constants.SettingOnboardingCompleted:
			settings.OnboardingCompleted = strings.Trim(value, `"`) == "true"
		}
	}
	return settings, nil
}

// SettingsToMap is the inverse of MapToSettings. An unset wage is omitted.
func SettingsToMap(settings Settings) map[string]string {
	data := map[string]string{
		constants.SettingOnboardingCompleted: fmt.Sprintf("%v", settings.OnboardingCompleted),
	}
	if settings.DefaultWage != nil {
		data[constants.SettingDefaultWage] = settings.DefaultWage.String()
	}
	return data
}

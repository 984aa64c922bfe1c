package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/docgestor/docgestor/internal/models"
	"github.com/docgestor/docgestor/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// appSettingName keys the single settings row.
const appSettingName = "app"

// AppSettings holds the user-editable application settings. DocAlertDays
// is the expiry alert window consumed by the dashboard aggregation.
type AppSettings struct {
	CompanyName  string `json:"companyName"`
	Theme        string `json:"theme"`
	DocAlertDays int    `json:"docAlertDays"`
}

// SettingsInput is a partial settings update.
type SettingsInput struct {
	CompanyName  *string           `json:"companyName"`
	Theme        *string           `json:"theme"`
	DocAlertDays *types.FlexUint64 `json:"docAlertDays"`
}

func defaultSettings() AppSettings {
	return AppSettings{Theme: "light", DocAlertDays: 30}
}

// GetSettings loads the application settings, falling back to defaults
// when no row exists yet.
func GetSettings(db *gorm.DB) (AppSettings, error) {
	settings := defaultSettings()

	var row models.Setting
	err := db.Where("setting_name = ?", appSettingName).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to load settings: %w", err)
	}

	if err := json.Unmarshal(row.SettingValue.JSON, &settings); err != nil {
		return settings, fmt.Errorf("failed to decode settings: %w", err)
	}
	if settings.DocAlertDays <= 0 {
		settings.DocAlertDays = 30
	}
	return settings, nil
}

// UpdateSettings merges the supplied fields into the stored settings and
// returns the result.
func UpdateSettings(db *gorm.DB, in SettingsInput) (AppSettings, error) {
	settings, err := GetSettings(db)
	if err != nil {
		return settings, err
	}

	if in.CompanyName != nil {
		settings.CompanyName = strings.TrimSpace(*in.CompanyName)
	}
	if in.Theme != nil {
		settings.Theme = strings.TrimSpace(*in.Theme)
	}
	if in.DocAlertDays != nil {
		if in.DocAlertDays.Uint64() == 0 {
			return settings, fmt.Errorf("%w: docAlertDays must be positive", ErrValidation)
		}
		settings.DocAlertDays = int(in.DocAlertDays.Uint64())
	}

	value, err := json.Marshal(settings)
	if err != nil {
		return settings, fmt.Errorf("failed to encode settings: %w", err)
	}

	row := models.Setting{SettingName: appSettingName}
	err = db.Where("setting_name = ?", appSettingName).
		Assign(map[string]interface{}{"setting_value": models.JSON{JSON: datatypes.JSON(value)}}).
		FirstOrCreate(&row).Error
	if err != nil {
		return settings, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}

// Package settings loads the user's dashboard preferences.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
)

// Settings lists the currencies and stocks shown on the dashboard.
type Settings struct {
	UserCurrencies []string `json:"user_currencies"`
	UserStocks     []string `json:"user_stocks"`
}

// Load reads settings from a JSON file.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings file: %w", err)
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("decode settings file %s: %w", path, err)
	}
	return s, nil
}

package dto

import "github.com/CristhianAlv-ing/HotelFind/internal/domain/prefs"

type PreferencesResponse struct {
	Language string `json:"language"`
	Theme    string `json:"theme"`
}

func NewPreferencesResponse(language prefs.Language, theme prefs.Theme) PreferencesResponse {
	return PreferencesResponse{Language: string(language), Theme: string(theme)}
}

// UpdatePreferencesRequest carries partial updates; empty fields are left
// untouched.
type UpdatePreferencesRequest struct {
	Language string `json:"language" validate:"omitempty,oneof=es en zh fr"`
	Theme    string `json:"theme" validate:"omitempty,oneof=light dark"`
}

func (r UpdatePreferencesRequest) Validate() error {
	return validate.Struct(r)
}

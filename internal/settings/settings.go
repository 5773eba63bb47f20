// Package settings holds the player-facing settings record. The state machine
// applies a new record only at the save transition, never mid-frame.
package settings

// RGB is a color in 0-255 components.
type RGB struct {
	R uint8 `yaml:"r" json:"r"`
	G uint8 `yaml:"g" json:"g"`
	B uint8 `yaml:"b" json:"b"`
}

// Crosshair styles recognized by render clients.
const (
	StyleDefault  = "default"
	StyleDot      = "dot"
	StyleCircle   = "circle"
	StyleValorant = "valorant"
)

type Settings struct {
	SoundEnabled     bool    `yaml:"sound_enabled" json:"sound_enabled"`
	MusicVolume      float64 `yaml:"music_volume" json:"music_volume"`
	SFXVolume        float64 `yaml:"sfx_volume" json:"sfx_volume"`
	CrosshairColor   RGB     `yaml:"crosshair_color" json:"crosshair_color"`
	CrosshairStyle   string  `yaml:"crosshair_style" json:"crosshair_style"`
	CrosshairSize    int     `yaml:"crosshair_size" json:"crosshair_size"`
	ShowFPS          bool    `yaml:"show_fps" json:"show_fps"`
	ShowStats        bool    `yaml:"show_stats" json:"show_stats"`
	Fullscreen       bool    `yaml:"fullscreen" json:"fullscreen"`
	MouseSensitivity float64 `yaml:"mouse_sensitivity" json:"mouse_sensitivity"`
	ClickThreshold   int     `yaml:"click_threshold" json:"click_threshold"`
}

func Default() Settings {
	return Settings{
		SoundEnabled:     true,
		MusicVolume:      0.5,
		SFXVolume:        0.7,
		CrosshairColor:   RGB{R: 255, G: 70, B: 85},
		CrosshairStyle:   StyleDefault,
		CrosshairSize:    16,
		ShowFPS:          true,
		ShowStats:        true,
		Fullscreen:       true,
		MouseSensitivity: 1.0,
		ClickThreshold:   5,
	}
}

// Normalize clamps out-of-range values and falls back to the default
// crosshair style for unrecognized ones.
func (s Settings) Normalize() Settings {
	s.MusicVolume = clamp01(s.MusicVolume)
	s.SFXVolume = clamp01(s.SFXVolume)
	switch s.CrosshairStyle {
	case StyleDefault, StyleDot, StyleCircle, StyleValorant:
	default:
		s.CrosshairStyle = StyleDefault
	}
	if s.CrosshairSize <= 0 {
		s.CrosshairSize = Default().CrosshairSize
	}
	if s.MouseSensitivity <= 0 {
		s.MouseSensitivity = 1.0
	}
	return s
}

// Effects reports what a settings change requires from the outer layers.
type Effects struct {
	NeedsDisplayReset bool `json:"needs_display_reset"` // fullscreen flipped; surface must be rebuilt
	NeedsAudioUpdate  bool `json:"needs_audio_update"`  // volumes or mute changed
	NeedsNewCrosshair bool `json:"needs_new_crosshair"` // crosshair style, color or size changed
}

// Apply diffs two settings records. The caller swaps in the new record at a
// single transition point and acts on the returned effects.
func Apply(old, new Settings) Effects {
	return Effects{
		NeedsDisplayReset: old.Fullscreen != new.Fullscreen,
		NeedsAudioUpdate: old.SoundEnabled != new.SoundEnabled ||
			old.MusicVolume != new.MusicVolume ||
			old.SFXVolume != new.SFXVolume,
		NeedsNewCrosshair: old.CrosshairStyle != new.CrosshairStyle ||
			old.CrosshairColor != new.CrosshairColor ||
			old.CrosshairSize != new.CrosshairSize,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

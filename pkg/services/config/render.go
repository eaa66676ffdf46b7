package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/med-tools/clinreport/pkg/services/pdf"
)

// RenderConfig is the YAML-tunable rendering profile: which sections to
// include and how the document should look.
type RenderConfig struct {
	PrimaryColor   []int              `mapstructure:"primary_color"`
	SecondaryColor []int              `mapstructure:"secondary_color"`
	Font           string             `mapstructure:"font"`
	Include        pdf.IncludeOptions `mapstructure:"include"`
}

// LoadRenderConfig reads a YAML render profile. A missing file is an
// error; missing keys fall back to the generator defaults.
func LoadRenderConfig(profilePath string) (*RenderConfig, error) {
	v := viper.New()
	v.SetConfigFile(profilePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read render config: %w", err)
	}

	cfg := RenderConfig{Include: pdf.AllSections()}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse render config: %w", err)
	}
	return &cfg, nil
}

// Options converts the loaded profile into generator options.
func (rc *RenderConfig) Options() pdf.Options {
	style := pdf.DefaultStyle()
	if c, ok := asRGB(rc.PrimaryColor); ok {
		style.PrimaryColor = c
	}
	if c, ok := asRGB(rc.SecondaryColor); ok {
		style.SecondaryColor = c
	}
	if rc.Font != "" {
		style.Font = rc.Font
	}
	return pdf.Options{
		Include: rc.Include,
		Style:   style,
	}
}

func asRGB(triple []int) (pdf.RGB, bool) {
	if len(triple) != 3 {
		return pdf.RGB{}, false
	}
	return pdf.RGB{triple[0], triple[1], triple[2]}, true
}

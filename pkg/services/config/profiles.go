package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"
)

// Endpoint is one remote service target (prediction API or report-delivery
// service) resolved from a profile file.
type Endpoint struct {
	Host  string
	Token string
}

// Registry resolves named profiles from an ini file, one section per
// profile with `host` and `token` keys.
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetEndpoint(ctx context.Context, profile string) (Endpoint, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetEndpoint(_ context.Context, profile string) (Endpoint, error) {
	section := cr.cfg.Section(profile)
	if section == nil || len(section.Keys()) == 0 {
		return Endpoint{}, fmt.Errorf("profile %s not found", profile)
	}

	host := section.Key("host").String()
	if host == "" {
		return Endpoint{}, fmt.Errorf("profile %s has no host", profile)
	}

	return Endpoint{
		Host:  host,
		Token: section.Key("token").String(),
	}, nil
}

package profile

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hunch/internal/answer"
	"hunch/internal/oracle"
)

//go:embed default_profile.yaml
var defaultProfileData []byte

// BandSpec is the YAML form of one table band.
type BandSpec struct {
	UpTo   float64       `yaml:"upto"`
	Answer answer.Answer `yaml:"answer"`
}

// Options holds miscellaneous toggles.
type Options struct {
	NoHistory bool `yaml:"no_history"`
}

// Profile represents the effective oracle configuration.
type Profile struct {
	Bands   []BandSpec `yaml:"bands"`
	Seed    int64      `yaml:"seed"`
	Options Options    `yaml:"options"`
}

// Load returns the effective profile, merging the embedded default with a
// user file if present. The resulting band table must validate.
func Load(path string) (Profile, error) {
	base, err := parse(defaultProfileData)
	if err != nil {
		return Profile{}, fmt.Errorf("parse default profile: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if !os.IsNotExist(err) {
				return Profile{}, fmt.Errorf("stat profile: %w", err)
			}
		} else {
			data, err := os.ReadFile(path)
			if err != nil {
				return Profile{}, fmt.Errorf("read profile: %w", err)
			}
			user, err := parse(data)
			if err != nil {
				return Profile{}, fmt.Errorf("parse profile: %w", err)
			}
			merge(&base, user)
		}
	}

	if err := base.Table().Validate(); err != nil {
		return Profile{}, fmt.Errorf("profile bands: %w", err)
	}
	return base, nil
}

func parse(data []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func merge(base *Profile, override Profile) {
	if len(override.Bands) > 0 {
		base.Bands = override.Bands
	}
	if override.Seed != 0 {
		base.Seed = override.Seed
	}
	base.Options.NoHistory = base.Options.NoHistory || override.Options.NoHistory
}

// Table converts the profile's bands into an oracle table.
func (p Profile) Table() oracle.Table {
	t := make(oracle.Table, 0, len(p.Bands))
	for _, b := range p.Bands {
		t = append(t, oracle.Band{UpTo: b.UpTo, Answer: b.Answer})
	}
	return t
}

// ToYAML renders the profile to YAML.
func (p Profile) ToYAML() (string, error) {
	out, err := yaml.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// DefaultYAML returns the embedded default profile YAML.
func DefaultYAML() string {
	return string(defaultProfileData)
}

package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

// CheckConfigCompatibility reports whether a configuration file written for configVersion
// can be read by a binary at binaryVersion.
//
//   - An empty config version or a "main" build on either side skips the check
//   - Major versions must match
//   - The config minor version must not be newer than the binary's, patches never matter
//
// Examples:
//   - binary 1.4.0, config 1.2.3 -> OK
//   - binary 1.2.0, config 1.3.0 -> error, the config may use newer fields
//   - binary 2.0.0, config 1.9.0 -> error
func CheckConfigCompatibility(binaryVersion string, configVersion string) error {
	binaryVersion = strings.TrimPrefix(binaryVersion, "v")
	configVersion = strings.TrimPrefix(configVersion, "v")

	if configVersion == "" || binaryVersion == "main" || configVersion == "main" {
		return nil
	}

	binary, err := semver.NewVersion(binaryVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid binary version %q", binaryVersion)
	}

	config, err := semver.NewVersion(configVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid config version %q", configVersion)
	}

	if binary.Major() != config.Major() {
		return errors.Newf(errors.ErrCodeInvalidConfiguration,
			"major version mismatch: binary is %d.x.x but config requires %d.x.x", binary.Major(), config.Major())
	}

	if config.Minor() > binary.Minor() {
		return errors.Newf(errors.ErrCodeInvalidConfiguration,
			"config requires %d.%d.x or newer, binary is %s", config.Major(), config.Minor(), binary.String())
	}

	return nil
}

package preflight

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/imamik/hostprep/internal/provisioning"
)

// osReleasePath is the os-release(5) file read on the target.
const osReleasePath = "/etc/os-release"

// ParseOSRelease parses os-release(5) content. The format is a shell-compatible
// list of KEY=value assignments, which is what dotenv files are.
func ParseOSRelease(data []byte) (provisioning.OSRelease, error) {
	fields, err := godotenv.UnmarshalBytes(data)
	if err != nil {
		return provisioning.OSRelease{}, fmt.Errorf("failed to parse os-release: %w", err)
	}

	rel := provisioning.OSRelease{
		ID:         fields["ID"],
		VersionID:  fields["VERSION_ID"],
		Codename:   fields["VERSION_CODENAME"],
		PrettyName: fields["PRETTY_NAME"],
	}
	if rel.Codename == "" {
		rel.Codename = fields["UBUNTU_CODENAME"]
	}
	if rel.PrettyName == "" {
		rel.PrettyName = fields["NAME"]
	}
	if rel.ID == "" {
		return rel, fmt.Errorf("os-release has no ID field")
	}
	return rel, nil
}

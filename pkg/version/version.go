// Package version parses and compares MPD protocol versions, the
// "major.minor.patch" string a server announces in its greeting, and knows
// which protocol version introduced selected commands.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a parsed protocol version.
type Version struct {
	Major uint16
	Minor uint16
	Patch uint16
}

// Parse parses "major.minor" or "major.minor.patch".
func Parse(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return Version{}, fmt.Errorf("invalid version %q: expected major.minor[.patch]", s)
	}

	var nums [3]uint16
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil || p == "" {
			return Version{}, fmt.Errorf("invalid version %q: bad component %q", s, p)
		}
		nums[i] = uint16(n)
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String returns the version as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or +1.
func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		return cmp(v.Major, other.Major)
	case v.Minor != other.Minor:
		return cmp(v.Minor, other.Minor)
	default:
		return cmp(v.Patch, other.Patch)
	}
}

// AtLeast reports whether v is other or newer.
func (v Version) AtLeast(other Version) bool {
	return v.Compare(other) >= 0
}

func cmp(a, b uint16) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// introduced maps commands to the protocol version that added them.
// Commands older than 0.17 are not listed.
var introduced = map[string]Version{
	"albumart":       {0, 21, 0},
	"binarylimit":    {0, 22, 4},
	"channels":       {0, 17, 0},
	"getvol":         {0, 23, 0},
	"listpartitions": {0, 22, 0},
	"newpartition":   {0, 22, 0},
	"partition":      {0, 22, 0},
	"prio":           {0, 17, 0},
	"prioid":         {0, 17, 0},
	"rangeid":        {0, 19, 0},
	"readmessages":   {0, 17, 0},
	"readpicture":    {0, 22, 0},
	"sendmessage":    {0, 17, 0},
	"subscribe":      {0, 17, 0},
	"unsubscribe":    {0, 17, 0},
}

// Introduced returns the protocol version that added command.
// ok is false for commands that predate the table.
func Introduced(command string) (v Version, ok bool) {
	v, ok = introduced[command]
	return v, ok
}

// Supports reports whether a server announcing server knows command.
// Unparseable server versions and unlisted commands are assumed supported.
func Supports(server, command string) bool {
	need, ok := introduced[command]
	if !ok {
		return true
	}
	have, err := Parse(server)
	if err != nil {
		return true
	}
	return have.AtLeast(need)
}

package kernel

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
)

// Region is the geographic partition that scopes restaurants, orders and the
// visibility of managers and members.
type Region string

const (
	RegionIndia   Region = "INDIA"
	RegionAmerica Region = "AMERICA"
)

// Regions lists every supported region.
func Regions() []Region {
	return []Region{RegionIndia, RegionAmerica}
}

// ParseRegion accepts region names case-insensitively.
func ParseRegion(s string) (Region, error) {
	r := Region(strings.ToUpper(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// Validate rejects the empty region and any unsupported name.
func (r Region) Validate() error {
	for _, known := range Regions() {
		if r == known {
			return nil
		}
	}
	if r == "" {
		return errs.NewValueIsRequiredError("region")
	}
	return errs.NewValueIsInvalidErrorWithCause("region", fmt.Errorf("%q is not a supported region", string(r)))
}

func (r Region) String() string {
	return string(r)
}

// Package product exposes build-time product metadata and host feature flags.
package product

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Build-time values, set via -ldflags "-X github.com/jmylchreest/desknotify/internal/product.version=...".
var (
	title           = "desknotify"
	description     = "Virtual desktop switch notifications"
	company         = "jmylchreest"
	productName     = "desknotify"
	copyright       = "Copyright (c) jmylchreest"
	trademark       = ""
	version         = "0.1.0"
	extraVersion    = ""
	originalCompany = ""
	originalProduct = ""
	beta            = "false"
	debug           = "false"
)

// OS build thresholds for build-gated features.
const (
	Windows11Build        = 22000
	NameSupportBuild      = 18975
	WallpaperSupportBuild = 21337
)

// ErrMissingMetadata is returned when a required build value is absent.
var ErrMissingMetadata = errors.New("missing product metadata")

// Version is a four-part product version.
type Version struct {
	Major    int `json:"major" yaml:"major"`
	Minor    int `json:"minor" yaml:"minor"`
	Patch    int `json:"patch" yaml:"patch"`
	Revision int `json:"revision" yaml:"revision"`
}

// ParseVersion parses "1", "1.2", "1.2.3" or "1.2.3.4", with an optional leading "v".
func ParseVersion(s string) (Version, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	if s == "" {
		return Version{}, fmt.Errorf("%w: empty version", ErrMissingMetadata)
	}

	parts := strings.Split(s, ".")
	if len(parts) > 4 {
		return Version{}, fmt.Errorf("invalid version %q: too many components", s)
	}

	var nums [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid version %q: component %q", s, p)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2], Revision: nums[3]}, nil
}

// String returns the full four-part version.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Patch, v.Revision)
}

// Features holds the host feature flags, computed once from the OS build.
type Features struct {
	Windows11OrLater bool `json:"windows11_or_later" yaml:"windows11_or_later"`
	NameSupport      bool `json:"name_support" yaml:"name_support"`
	WallpaperSupport bool `json:"wallpaper_support" yaml:"wallpaper_support"`
	Reordering       bool `json:"reordering" yaml:"reordering"`
}

// FeaturesForBuild returns the feature flags for an OS build number.
func FeaturesForBuild(build int) Features {
	wallpaper := build >= WallpaperSupportBuild
	return Features{
		Windows11OrLater: build >= Windows11Build,
		NameSupport:      build >= NameSupportBuild,
		WallpaperSupport: wallpaper,
		Reordering:       wallpaper,
	}
}

// Info is the immutable product metadata. Build it once with Load and pass it by value.
type Info struct {
	Title           string   `json:"title" yaml:"title"`
	Description     string   `json:"description" yaml:"description"`
	Company         string   `json:"company" yaml:"company"`
	Product         string   `json:"product" yaml:"product"`
	Copyright       string   `json:"copyright" yaml:"copyright"`
	Trademark       string   `json:"trademark,omitempty" yaml:"trademark,omitempty"`
	Version         Version  `json:"version" yaml:"version"`
	ExtraVersion    string   `json:"extra_version,omitempty" yaml:"extra_version,omitempty"`
	OriginalCompany string   `json:"original_company,omitempty" yaml:"original_company,omitempty"`
	OriginalProduct string   `json:"original_product,omitempty" yaml:"original_product,omitempty"`
	Beta            bool     `json:"beta" yaml:"beta"`
	Debug           bool     `json:"debug" yaml:"debug"`
	OSBuild         int      `json:"os_build" yaml:"os_build"`
	Features        Features `json:"features" yaml:"features"`
}

// Load reads the build-time values and the host OS build.
func Load() (Info, error) {
	return build(buildValues{
		title:           title,
		description:     description,
		company:         company,
		product:         productName,
		copyright:       copyright,
		trademark:       trademark,
		version:         version,
		extraVersion:    extraVersion,
		originalCompany: originalCompany,
		originalProduct: originalProduct,
		beta:            beta,
		debug:           debug,
	}, hostBuild())
}

type buildValues struct {
	title, description, company, product, copyright, trademark string
	version, extraVersion, originalCompany, originalProduct     string
	beta, debug                                                 string
}

func build(v buildValues, osBuild int) (Info, error) {
	if strings.TrimSpace(v.title) == "" {
		return Info{}, fmt.Errorf("%w: title", ErrMissingMetadata)
	}

	ver, err := ParseVersion(v.version)
	if err != nil {
		return Info{}, err
	}

	return Info{
		Title:           v.title,
		Description:     v.description,
		Company:         v.company,
		Product:         v.product,
		Copyright:       v.copyright,
		Trademark:       v.trademark,
		Version:         ver,
		ExtraVersion:    v.extraVersion,
		OriginalCompany: v.originalCompany,
		OriginalProduct: v.originalProduct,
		Beta:            parseFlag(v.beta),
		Debug:           parseFlag(v.debug),
		OSBuild:         osBuild,
		Features:        FeaturesForBuild(osBuild),
	}, nil
}

func parseFlag(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

// VersionString returns the user-facing version, e.g. "1.2.3 β rev.4".
func (i Info) VersionString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d", i.Version.Major, i.Version.Minor, i.Version.Patch)
	if i.Beta {
		b.WriteString(" β")
	}
	if i.Version.Revision != 0 {
		fmt.Fprintf(&b, " rev.%d", i.Version.Revision)
	}
	return b.String()
}

package harvest

import "strings"

// ProductSelectors maps each product field to a CSS selector.
// An empty selector leaves that field empty.
type ProductSelectors struct {
	Title          string `yaml:"title"`
	Price          string `yaml:"price"`
	Rating         string `yaml:"rating"`
	Reviews        string `yaml:"reviews"`
	Availability   string `yaml:"availability"`
	Image          string `yaml:"image"`
	Seller         string `yaml:"seller"`
	Specifications string `yaml:"specifications"`
}

// SiteProfile is a named set of selectors tailored to one site's markup.
type SiteProfile struct {
	Name string `yaml:"name"`

	// Match is the substring that identifies the site in a URL.
	// Defaults to Name when empty.
	Match string `yaml:"match"`

	Selectors ProductSelectors `yaml:"selectors"`
}

func (p SiteProfile) key() string {
	if p.Match != "" {
		return strings.ToLower(p.Match)
	}
	return strings.ToLower(p.Name)
}

// SiteProfiles is an immutable, ordered set of site profiles. It is built
// once at startup and shared by reference.
type SiteProfiles struct {
	profiles []SiteProfile
}

// NewSiteProfiles returns a profile set. Detection checks profiles in the
// order given.
func NewSiteProfiles(profiles ...SiteProfile) *SiteProfiles {
	cp := make([]SiteProfile, len(profiles))
	copy(cp, profiles)
	return &SiteProfiles{profiles: cp}
}

// Detect returns the first profile whose match key occurs in the URL.
//
// Detection is a plain case-insensitive substring test, so a URL that merely
// mentions a site name in its path also matches.
func (s *SiteProfiles) Detect(url string) (*SiteProfile, bool) {
	if s == nil {
		return nil, false
	}
	lower := strings.ToLower(url)
	for i := range s.profiles {
		if key := s.profiles[i].key(); key != "" && strings.Contains(lower, key) {
			p := s.profiles[i]
			return &p, true
		}
	}
	return nil, false
}

// List returns a copy of the profiles in detection order.
func (s *SiteProfiles) List() []SiteProfile {
	if s == nil {
		return nil
	}
	cp := make([]SiteProfile, len(s.profiles))
	copy(cp, s.profiles)
	return cp
}

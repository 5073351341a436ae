package goquery

import (
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/harvest"
)

// GenericSelectors read every product candidate on pages of unknown sites.
var GenericSelectors = harvest.ProductSelectors{
	Title:          ".product-title, .item-title, h2, h3",
	Price:          `.price, .product-price, [class*="price"]`,
	Rating:         `.rating, .stars, [class*="rating"]`,
	Reviews:        `.reviews-count, [class*="review"]`,
	Availability:   `.availability, .stock-status, [class*="stock"]`,
	Image:          "img",
	Seller:         `.seller, .vendor, [class*="seller"]`,
	Specifications: ".specifications li, .specs li, .details li",
}

// DefaultSiteProfiles returns the built-in e-commerce site profiles.
func DefaultSiteProfiles() *harvest.SiteProfiles {
	return harvest.NewSiteProfiles(
		harvest.SiteProfile{
			Name: "amazon",
			Selectors: harvest.ProductSelectors{
				Title:        "#productTitle",
				Price:        "#priceblock_ourprice, .a-price-whole",
				Rating:       "#acrPopover",
				Reviews:      "#acrCustomerReviewText",
				Availability: "#availability span",
			},
		},
		harvest.SiteProfile{
			Name: "ebay",
			Selectors: harvest.ProductSelectors{
				Title:        ".x-item-title",
				Price:        ".x-price-primary",
				Rating:       ".stars-ratings",
				Reviews:      ".review-ratings-count",
				Availability: ".quantity-available",
			},
		},
		harvest.SiteProfile{
			Name: "daraz",
			Selectors: harvest.ProductSelectors{
				Title:          ".pdp-mod-product-badge-title",
				Price:          ".pdp-price",
				Rating:         ".score",
				Reviews:        ".count",
				Availability:   ".stock",
				Image:          ".gallery-preview-panel__image",
				Seller:         ".pdp-product-brand a",
				Specifications: ".specification-keys li",
			},
		},
	)
}

// ValidateProfiles compiles every non-empty selector of every profile.
// Returns EINVALID naming the first selector that does not compile.
func ValidateProfiles(profiles []harvest.SiteProfile) error {
	for _, p := range profiles {
		for _, f := range selectorFields(p.Selectors) {
			if f.selector == "" {
				continue
			}
			if _, err := cascadia.Compile(f.selector); err != nil {
				return harvest.Errorf(harvest.EINVALID, "site %q: invalid %s selector %q: %v", p.Name, f.name, f.selector, err)
			}
		}
	}
	return nil
}

type selectorField struct {
	name     string
	selector string
}

func selectorFields(s harvest.ProductSelectors) []selectorField {
	return []selectorField{
		{"title", s.Title},
		{"price", s.Price},
		{"rating", s.Rating},
		{"reviews", s.Reviews},
		{"availability", s.Availability},
		{"image", s.Image},
		{"seller", s.Seller},
		{"specifications", s.Specifications},
	}
}

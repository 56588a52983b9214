package catalog

var defaultCatalog = MustNew(
	Platform{
		ID:      Facebook,
		Name:    "Facebook",
		AdTypes: []string{"Feed", "Stories", "Carousel"},
		Sizes: []SizeSpec{
			{Width: 1080, Height: 1080, Placement: "Feed"},
			{Width: 1080, Height: 1920, Placement: "Stories"},
			{Width: 1200, Height: 628, Placement: "Link"},
		},
	},
	Platform{
		ID:      Instagram,
		Name:    "Instagram",
		AdTypes: []string{"Feed", "Stories", "Reels"},
		Sizes: []SizeSpec{
			{Width: 1080, Height: 1080, Placement: "Feed"},
			{Width: 1080, Height: 1920, Placement: "Stories"},
		},
	},
	Platform{
		ID:      Google,
		Name:    "Google Ads",
		AdTypes: []string{"Display", "Banner", "Responsive"},
		Sizes: []SizeSpec{
			{Width: 300, Height: 300, Placement: "Display"},
			{Width: 728, Height: 90, Placement: "Banner"},
			{Width: 300, Height: 250, Placement: "Display"},
			{Width: 320, Height: 50, Placement: "Banner"},
			{Width: 970, Height: 90, Placement: "Banner"},
			{Width: 970, Height: 250, Placement: "Display"},
		},
	},
	Platform{
		ID:      Pinterest,
		Name:    "Pinterest",
		AdTypes: []string{"Standard", "Video Pins"},
		Sizes: []SizeSpec{
			{Width: 1000, Height: 1500, Placement: "Standard"},
			{Width: 1000, Height: 1000, Placement: "Standard"},
		},
	},
	Platform{
		ID:      TikTok,
		Name:    "TikTok",
		AdTypes: []string{"In-Feed", "TopView"},
		Sizes: []SizeSpec{
			{Width: 1080, Height: 1920, Placement: "In-Feed"},
			{Width: 1080, Height: 1920, Placement: "TopView"},
		},
	},
	Platform{
		ID:      LinkedIn,
		Name:    "LinkedIn",
		AdTypes: []string{"Feed", "Message Ads"},
		Sizes: []SizeSpec{
			{Width: 1200, Height: 628, Placement: "Feed"},
			{Width: 1200, Height: 1200, Placement: "Feed"},
		},
	},
	Platform{
		ID:      Twitter,
		Name:    "Twitter",
		AdTypes: []string{"Image", "Carousel"},
		Sizes: []SizeSpec{
			{Width: 1200, Height: 675, Placement: "Image"},
			{Width: 1200, Height: 1200, Placement: "Carousel"},
		},
	},
	Platform{
		ID:      Snapchat,
		Name:    "Snapchat",
		AdTypes: []string{"Story Ads", "Filters"},
		Sizes: []SizeSpec{
			{Width: 1080, Height: 1920, Placement: "Story Ads"},
		},
	},
)

// Default returns the built-in platform catalog.
func Default() *Catalog {
	return defaultCatalog
}

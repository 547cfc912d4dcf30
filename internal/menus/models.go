package menus

import prismmenus "github.com/prismcms/prism/menus"

type (
	Menu       = prismmenus.Menu
	Item       = prismmenus.Item
	Location   = prismmenus.Location
	LinkTarget = prismmenus.LinkTarget
)

const (
	LocationHeaderPrimary   = prismmenus.LocationHeaderPrimary
	LocationHeaderSecondary = prismmenus.LocationHeaderSecondary
	LocationFooterPrimary   = prismmenus.LocationFooterPrimary
	LocationFooterSecondary = prismmenus.LocationFooterSecondary
	LocationSidebar         = prismmenus.LocationSidebar

	TargetSelf  = prismmenus.TargetSelf
	TargetBlank = prismmenus.TargetBlank
)

// IsValidLocation reports whether the value names a known chrome slot.
func IsValidLocation(location Location) bool {
	return prismmenus.IsValidLocation(location)
}

package treekv

// Visibility is the traffic-light style classification tag of a node.
// The tree only stores it; enforcement is up to outer layers
type Visibility string

const (
	VisibilityRed   Visibility = "RED"
	VisibilityAmber Visibility = "AMBER"
	VisibilityGreen Visibility = "GREEN"
	VisibilityWhite Visibility = "WHITE"
)

// ParseVisibility maps a textual name to its Visibility. Unknown or empty
// input falls back to [VisibilityRed], the most restrictive tag
func ParseVisibility(s string) Visibility {
	switch Visibility(s) {
	case VisibilityRed, VisibilityAmber, VisibilityGreen, VisibilityWhite:
		return Visibility(s)
	default:
		return VisibilityRed
	}
}

func (v Visibility) String() string {
	return string(v)
}

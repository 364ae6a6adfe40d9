package domain

// View is one of the three mutually exclusive screens.
type View string

const (
	ViewHome    View = "home"
	ViewSearch  View = "search"
	ViewCabinet View = "cabinet"
)

// Views lists every screen, starting with the initial one.
func Views() []View {
	return []View{ViewHome, ViewSearch, ViewCabinet}
}

func (v View) Valid() bool {
	switch v {
	case ViewHome, ViewSearch, ViewCabinet:
		return true
	default:
		return false
	}
}

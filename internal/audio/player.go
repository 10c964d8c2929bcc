// Package audio synthesizes the ambient soundscapes played during a session.
package audio

// Player starts and stops ambient tracks.
type Player interface {
	Play(trackID int)
	Stop()
	SetVolume(v float64)
}

// Soundscape is the synthesis recipe behind a track id.
type Soundscape int

const (
	Drone Soundscape = iota
	Ocean
	Rain
	Bowls
	Wind
)

// SoundscapeFor maps a track id to its recipe. Ids without a dedicated
// recipe get the drone.
func SoundscapeFor(trackID int) Soundscape {
	switch trackID {
	case 1:
		return Ocean
	case 2, 6:
		return Rain
	case 3, 7:
		return Bowls
	case 5, 8:
		return Wind
	default:
		return Drone
	}
}

func (s Soundscape) String() string {
	switch s {
	case Ocean:
		return "ocean"
	case Rain:
		return "rain"
	case Bowls:
		return "bowls"
	case Wind:
		return "wind"
	default:
		return "drone"
	}
}

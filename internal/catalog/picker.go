package catalog

import (
	"math/rand"
	"time"
)

// Picker selects random catalog entries.
type Picker struct {
	rnd *rand.Rand
}

// NewPicker returns a Picker seeded with the current time.
func NewPicker() *Picker {
	return NewSeededPicker(time.Now().UnixNano())
}

// NewSeededPicker returns a Picker with a fixed seed.
func NewSeededPicker(seed int64) *Picker {
	return &Picker{rnd: rand.New(rand.NewSource(seed))}
}

// Affirmation picks one affirmation uniformly.
func (p *Picker) Affirmation() string {
	return affirmations[p.rnd.Intn(len(affirmations))]
}

package audio

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

const (
	// DefaultSampleRate is used when NewSynth gets a non-positive rate.
	DefaultSampleRate = 44100

	masterGain   = 0.3
	volumeFactor = 0.5

	bowlAttack = 2.0
	bowlPeak   = 0.15
	bowlFloor  = 0.01
)

var (
	bowlFreqs  = []float64{256, 384, 512, 768}
	droneFreqs = []float64{200, 300, 400}
)

type voice struct {
	// noise source through filter when filter is set, sine at freq otherwise
	filter *biquad
	freq   float64
	phase  float64

	gain float64
	// envelope overrides gain until SetVolume pins it
	envelope func(t float64) float64
}

// Synth renders ambient tracks as mono samples in [-1, 1]. It is safe to
// call Render from an audio goroutine while Play, Stop and SetVolume are
// called elsewhere.
type Synth struct {
	mu      sync.Mutex
	rate    float64
	rng     *rand.Rand
	voices  []*voice
	track   int
	playing bool
	// samples rendered since the last Play
	pos int
}

// NewSynth returns a silent synth rendering at sampleRate.
func NewSynth(sampleRate int) *Synth {
	return NewSeededSynth(sampleRate, time.Now().UnixNano())
}

// NewSeededSynth returns a synth whose noise sources are deterministic.
func NewSeededSynth(sampleRate int, seed int64) *Synth {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Synth{
		rate: float64(sampleRate),
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// SampleRate is the render rate in Hz.
func (s *Synth) SampleRate() int {
	return int(s.rate)
}

// Play replaces whatever is playing with trackID's soundscape.
func (s *Synth) Play(trackID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.voices = s.build(SoundscapeFor(trackID))
	s.track = trackID
	s.playing = true
}

// Stop silences and discards every voice.
func (s *Synth) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// SetVolume pins every voice gain to v*0.5, with v clamped to [0, 1].
func (s *Synth) SetVolume(v float64) {
	v = math.Max(0, math.Min(v, 1))
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, vc := range s.voices {
		vc.gain = v * volumeFactor
		vc.envelope = nil
	}
}

// Playing reports whether a track is active.
func (s *Synth) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// Track returns the id passed to the last Play.
func (s *Synth) Track() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.track
}

// Voices returns the number of live voices.
func (s *Synth) Voices() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.voices)
}

// Render fills buf with the next samples. Silence when stopped.
func (s *Synth) Render(buf []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range buf {
		if len(s.voices) == 0 {
			buf[i] = 0
			continue
		}
		t := float64(s.pos) / s.rate
		var sum float64
		for _, vc := range s.voices {
			sum += s.sample(vc) * vc.level(t)
		}
		s.pos++
		buf[i] = float32(math.Max(-1, math.Min(sum*masterGain, 1)))
	}
}

// Level renders n samples and returns their RMS, for meters.
func (s *Synth) Level(n int) float64 {
	if n <= 0 {
		return 0
	}
	buf := make([]float32, n)
	s.Render(buf)
	var sum float64
	for _, v := range buf {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum / float64(n))
}

func (s *Synth) stopLocked() {
	s.voices = nil
	s.playing = false
	s.pos = 0
}

func (s *Synth) build(scape Soundscape) []*voice {
	switch scape {
	case Ocean:
		return []*voice{s.noise(lowpass, 800, 0.5)}
	case Rain:
		return []*voice{s.noise(bandpass, 2000, 0.4)}
	case Wind:
		return []*voice{s.noise(lowpass, 1200, 0.3)}
	case Bowls:
		voices := make([]*voice, len(bowlFreqs))
		for i, f := range bowlFreqs {
			voices[i] = &voice{freq: f, envelope: bowlEnvelope(8 + 2*float64(i))}
		}
		return voices
	default:
		voices := make([]*voice, len(droneFreqs))
		for i, f := range droneFreqs {
			voices[i] = &voice{freq: f, gain: 0.08}
		}
		return voices
	}
}

func (s *Synth) noise(kind filterKind, freq, gain float64) *voice {
	return &voice{filter: newBiquad(kind, freq, s.rate), gain: gain}
}

func (s *Synth) sample(vc *voice) float64 {
	if vc.filter != nil {
		return vc.filter.process(s.rng.Float64()*2 - 1)
	}
	v := math.Sin(2 * math.Pi * vc.phase)
	vc.phase += vc.freq / s.rate
	if vc.phase >= 1 {
		vc.phase -= math.Floor(vc.phase)
	}
	return v
}

func (vc *voice) level(t float64) float64 {
	if vc.envelope != nil {
		return vc.envelope(t)
	}
	return vc.gain
}

// bowlEnvelope ramps linearly to the peak over the attack, then decays
// exponentially to the floor at end seconds and holds there.
func bowlEnvelope(end float64) func(t float64) float64 {
	return func(t float64) float64 {
		switch {
		case t < bowlAttack:
			return bowlPeak * t / bowlAttack
		case t < end:
			return bowlPeak * math.Pow(bowlFloor/bowlPeak, (t-bowlAttack)/(end-bowlAttack))
		default:
			return bowlFloor
		}
	}
}

package catalog

import (
	"strconv"
	"strings"
)

// Track is an ambient soundscape entry.
type Track struct {
	ID       int
	Name     string
	Category string
	Emoji    string
}

// Mood is a labelled point on the 1-5 mood scale.
type Mood struct {
	Emoji string
	Label string
	Value int
}

// LearnContent is an article in the discover library.
type LearnContent struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
	Icon        string `json:"icon" yaml:"icon"`
	FullContent string `json:"fullContent" yaml:"fullContent"`
}

var tracks = []Track{
	{ID: 1, Name: "Ocean Waves", Category: "nature", Emoji: "🌊"},
	{ID: 2, Name: "Rainforest Ambience", Category: "nature", Emoji: "🌧️"},
	{ID: 3, Name: "Tibetan Singing Bowls", Category: "meditation", Emoji: "🕉️"},
	{ID: 4, Name: "Piano & Strings", Category: "instrumental", Emoji: "🎹"},
	{ID: 5, Name: "Wind & Birds", Category: "nature", Emoji: "🌿"},
	{ID: 6, Name: "Soft Rain", Category: "nature", Emoji: "☔"},
	{ID: 7, Name: "Crystal Bowls", Category: "meditation", Emoji: "💎"},
	{ID: 8, Name: "Forest Stream", Category: "nature", Emoji: "🏞️"},
}

var moods = []Mood{
	{Emoji: "😊", Label: "Happy", Value: 5},
	{Emoji: "😌", Label: "Calm", Value: 4},
	{Emoji: "😐", Label: "Neutral", Value: 3},
	{Emoji: "😟", Label: "Anxious", Value: 2},
	{Emoji: "😢", Label: "Sad", Value: 1},
	{Emoji: "🙏", Label: "Grateful", Value: 5},
}

var affirmations = []string{
	"I am present in this moment",
	"Peace begins with me",
	"I trust the journey of my life",
	"Every breath brings calm",
	"I am worthy of inner peace",
	"My mind is clear and focused",
	"I release what I cannot control",
	"I am grateful for this moment",
	"Stillness is my natural state",
	"I honor my healing process",
}

// Tracks returns the ambient track list.
func Tracks() []Track {
	return append([]Track(nil), tracks...)
}

// TrackByID looks up a track. The first track is returned when id is unknown.
func TrackByID(id int) (Track, bool) {
	for _, t := range tracks {
		if t.ID == id {
			return t, true
		}
	}
	return tracks[0], false
}

// MoodFor returns the first mood entry for a value.
func MoodFor(value int) (Mood, bool) {
	for _, m := range moods {
		if m.Value == value {
			return m, true
		}
	}
	return Mood{}, false
}

// Greeting returns the salutation for an hour of the day (0-23).
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "🌅 Good Morning"
	case hour < 17:
		return "☀️ Good Afternoon"
	case hour < 21:
		return "🌆 Good Evening"
	default:
		return "🌙 Good Night"
	}
}

// LearnContents returns the discover library.
func LearnContents() []LearnContent {
	return append([]LearnContent(nil), learnContents...)
}

// FindContent looks up an article by case-insensitive title or 1-based index string.
func FindContent(key string) (LearnContent, bool) {
	key = strings.TrimSpace(key)
	for i, c := range learnContents {
		if strings.EqualFold(c.Title, key) || key == strconv.Itoa(i+1) {
			return c, true
		}
	}
	return LearnContent{}, false
}

var learnContents = []LearnContent{
	{
		Title:       "How Meditation Calms the Nervous System",
		Description: "Understanding the science behind mindful breathing and stress reduction",
		Category:    "Science",
		Icon:        "🧠",
		FullContent: `Meditation activates the parasympathetic nervous system, which is responsible for the body "rest and digest" response. When you meditate:

 "Your heart rate slows down"
 "Blood pressure decreases"
 "Stress hormones like cortisol are reduced"
 "The amygdala (fear center) becomes less reactive"
 "The prefrontal cortex (reasoning center) becomes more active"

Regular practice can actually change the structure of your brain, increasing gray matter in areas associated with emotional regulation, learning, and memory. Even 10 minutes a day can make a significant difference in how your nervous system responds to stress.`,
	},
	{
		Title:       "Self-Realization through Chakra Meditation",
		Description: "Ancient practices for balancing your energy centers",
		Category:    "Spiritual",
		Icon:        "🕉️",
		FullContent: `The chakra system represents seven energy centers in your body, from the base of your spine to the crown of your head:

1. Root Chakra (Muladhara) - Grounding and survival
2. Sacral Chakra (Svadhisthana) - Creativity and emotions
3. Solar Plexus (Manipura) - Personal power and confidence
4. Heart Chakra (Anahata) - Love and compassion
5. Throat Chakra (Vishuddha) - Communication and truth
6. Third Eye (Ajna) - Intuition and insight
7. Crown Chakra (Sahasrara) - Spiritual connection

To practice: Sit comfortably, focus on each chakra location, visualize its associated color, and breathe into that area. Notice any sensations, emotions, or blockages.`,
	},
	{
		Title:       "Grounding Techniques for Anxiety",
		Description: "Quick exercises to return to the present moment",
		Category:    "Practice",
		Icon:        "🌱",
		FullContent: `When anxiety strikes, these grounding techniques can bring you back to the present:

5-4-3-2-1 Method:
 "Name 5 things you can see"
 "4 things you can touch"
 "3 things you can hear"
 "2 things you can smell"
 "1 thing you can taste"

Physical Grounding:
 "Press your feet firmly into the floor"
 "Hold ice cubes in your hands"
 "Splash cold water on your face"
 "Do progressive muscle relaxation"`,
	},
	{
		Title:       "The Art of Body Scan Meditation",
		Description: "Progressive relaxation for deep healing",
		Category:    "Technique",
		Icon:        "✨",
		FullContent: `Body scan meditation is a systematic way to release tension and develop body awareness:

How to Practice:
1. Lie down or sit comfortably
2. Close your eyes and take several deep breaths
3. Start at the top of your head
4. Slowly move attention down through each body part
5. Notice sensations without judgment
6. Breathe into areas of tension
7. Continue down to your toes

Practice for 10-30 minutes daily.`,
	},
	{
		Title:       "Loving-Kindness Meditation",
		Description: "Cultivate compassion for yourself and others",
		Category:    "Heart",
		Icon:        "💗",
		FullContent: `Loving-kindness (Metta) meditation develops unconditional love and compassion:

Phrases to repeat:
 1. May I/you be safe
 2. May I/you be healthy
 3. May I/you be happy
 4. May I/you live with ease

Begin with yourself, then extend to loved ones, neutral people, difficult people, and all beings.`,
	},
}

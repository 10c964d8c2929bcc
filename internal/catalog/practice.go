// Package catalog holds the static practice, track, and content tables.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPractice is returned when a practice id is not in the catalog.
var ErrUnknownPractice = errors.New("unknown practice")

// Practice identifies a guided meditation category.
type Practice string

// Known practices, in display order.
const (
	Calm      Practice = "calm"
	Focus     Practice = "focus"
	Healing   Practice = "healing"
	Awareness Practice = "awareness"
	Gratitude Practice = "gratitude"
	Balance   Practice = "balance"
	Sleep     Practice = "sleep"
	Energy    Practice = "energy"
	Release   Practice = "release"
)

var practiceOrder = []Practice{Calm, Focus, Healing, Awareness, Gratitude, Balance, Sleep, Energy, Release}

// Guide is the instruction sequence and mantra for a practice.
type Guide struct {
	Title        string
	Instructions []string
	Mantra       string
}

// Practices returns all known practices in display order.
func Practices() []Practice {
	return append([]Practice(nil), practiceOrder...)
}

// ParsePractice resolves a practice id, case-insensitively.
func ParsePractice(s string) (Practice, error) {
	p := Practice(strings.ToLower(strings.TrimSpace(s)))
	if !p.Known() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPractice, s)
	}
	return p, nil
}

// Known reports whether p is one of the catalog practices.
func (p Practice) Known() bool {
	switch p {
	case Calm, Focus, Healing, Awareness, Gratitude, Balance, Sleep, Energy, Release:
		return true
	default:
		return false
	}
}

// Name returns the display name, or the raw id for unknown practices.
func (p Practice) Name() string {
	switch p {
	case Calm:
		return "Calm"
	case Focus:
		return "Focus"
	case Healing:
		return "Healing"
	case Awareness:
		return "Awareness"
	case Gratitude:
		return "Gratitude"
	case Balance:
		return "Balance"
	case Sleep:
		return "Sleep"
	case Energy:
		return "Energy Boost"
	case Release:
		return "Emotional Release"
	default:
		return string(p)
	}
}

// Description returns the one-line tagline.
func (p Practice) Description() string {
	switch p {
	case Calm:
		return "Find inner peace"
	case Focus:
		return "Sharpen your mind"
	case Healing:
		return "Restore balance"
	case Awareness:
		return "Expand consciousness"
	case Gratitude:
		return "Cultivate thankfulness"
	case Balance:
		return "Find equilibrium"
	case Sleep:
		return "Deep rest"
	case Energy:
		return "Revitalize yourself"
	case Release:
		return "Let go of tension"
	default:
		return ""
	}
}

// Icon returns the emoji shown next to the practice.
func (p Practice) Icon() string {
	switch p {
	case Calm:
		return "🌊"
	case Focus:
		return "🎯"
	case Healing:
		return "💚"
	case Awareness:
		return "👁️"
	case Gratitude:
		return "🙏"
	case Balance:
		return "⚖️"
	case Sleep:
		return "🌙"
	case Energy:
		return "⚡"
	case Release:
		return "🌸"
	default:
		return "•"
	}
}

// Guide returns the guide for p. Unknown practices get an empty guide.
func (p Practice) Guide() Guide {
	switch p {
	case Calm:
		return Guide{
			Title: "Calm Meditation Guide",
			Instructions: []string{
				"Find a comfortable seated position with your spine straight but relaxed",
				"Close your eyes gently or maintain a soft downward gaze",
				"Take three deep breaths - inhale through your nose, exhale through your mouth",
				"Let your breathing return to its natural rhythm",
				"Focus your attention on the sensation of breath at your nostrils or chest",
				"When your mind wanders (and it will), gently bring it back to your breath",
				"Notice the pause between inhale and exhale",
				"Allow any thoughts to pass like clouds in the sky",
				"Rest in the stillness between thoughts",
				"Feel the waves of calm washing over you with each exhale",
			},
			Mantra: "I am calm. I am peace. I am stillness.",
		}
	case Focus:
		return Guide{
			Title: "Focus Meditation Guide",
			Instructions: []string{
				"Sit upright with alertness in your posture",
				"Choose a single point of focus - your breath, a candle flame, or a mantra",
				"Set your intention: 'I dedicate this time to developing concentration'",
				"Gently place your full attention on your chosen object",
				"Count your breaths from 1 to 10, then start again",
				"When distracted, acknowledge the thought and return to counting",
				"Strengthen your focus like training a muscle",
				"Notice when your mind is sharp versus dull",
				"Maintain steady, continuous awareness",
				"End by noticing your enhanced mental clarity",
			},
			Mantra: "One breath. One moment. One point of focus.",
		}
	case Healing:
		return Guide{
			Title: "Healing Meditation Guide",
			Instructions: []string{
				"Settle into a position that feels nurturing and safe",
				"Place one hand on your heart, one on your belly",
				"Breathe deeply into your hands, feeling them rise and fall",
				"Visualize a warm, golden light at your heart center",
				"With each inhale, draw in healing energy",
				"With each exhale, release pain, tension, and what no longer serves you",
				"Let the golden light expand through your entire body",
				"Send healing energy to any area that needs it",
				"Acknowledge your wounds with compassion",
				"Affirm: 'I am healing. I am whole. I am enough.'",
			},
			Mantra: "Every breath heals me. Every moment restores me.",
		}
	case Awareness:
		return Guide{
			Title: "Awareness Meditation Guide",
			Instructions: []string{
				"Sit in a position of dignified presence",
				"Open your awareness like the vast sky",
				"Notice whatever arises - sounds, sensations, thoughts, emotions",
				"Don't focus on anything specifically; remain open to everything",
				"Observe without labeling or judging",
				"Notice the spacious awareness that contains all experiences",
				"Recognize that you are the awareness, not the content",
				"Expand your consciousness beyond the boundaries of your body",
				"Rest as pure witnessing presence",
				"Simply be aware that you are aware",
			},
			Mantra: "I am the witness. I am consciousness itself.",
		}
	case Gratitude:
		return Guide{
			Title: "Gratitude Meditation Guide",
			Instructions: []string{
				"Settle into your seat with a gentle smile",
				"Place your hands over your heart",
				"Take a moment to feel the gift of this breath",
				"Bring to mind three things you're grateful for today",
				"Really feel the appreciation in your body",
				"Thank your body for carrying you through life",
				"Appreciate someone who has helped you",
				"Feel gratitude for challenges that helped you grow",
				"Extend thanks to the air you breathe, the earth beneath you",
				"Let your heart overflow with appreciation for this precious life",
			},
			Mantra: "Thank you. I am grateful. I am blessed.",
		}
	case Balance:
		return Guide{
			Title: "Balance Meditation Guide",
			Instructions: []string{
				"Find your center - physically and mentally",
				"Notice the balance between effort and ease in your posture",
				"Breathe equally through both nostrils if possible",
				"Visualize yourself as a mountain - stable yet flexible",
				"Acknowledge both light and shadow within you",
				"Balance acceptance with aspiration",
				"Honor rest as much as action",
				"Find equilibrium between giving and receiving",
				"Notice the still point at the center of all movement",
				"Rest in the balance of being",
			},
			Mantra: "I am centered. I am balanced. I am whole.",
		}
	case Sleep:
		return Guide{
			Title: "Sleep Meditation Guide",
			Instructions: []string{
				"Lie down in a comfortable position for sleep",
				"Let your body sink into the surface beneath you",
				"Take several deep, slow breaths, releasing tension with each exhale",
				"Progressively relax each part of your body from head to toes",
				"Let go of the day - all tasks, worries, and thoughts",
				"Imagine yourself floating on calm, warm water",
				"With each breath, drift deeper into relaxation",
				"Allow thoughts to dissolve like mist",
				"Trust that sleep will come naturally",
				"Surrender completely to rest",
			},
			Mantra: "I release the day. I welcome deep, peaceful sleep.",
		}
	case Energy:
		return Guide{
			Title: "Energy Boost Meditation Guide",
			Instructions: []string{
				"Sit upright with an energized posture",
				"Take several quick, energizing breaths (breath of fire)",
				"Visualize bright, vibrant light entering your body",
				"Feel energy gathering at your solar plexus",
				"With each inhale, draw in vitality and life force",
				"Imagine roots growing from your feet, drawing energy from the earth",
				"Feel your spine as a channel of flowing energy",
				"Clench and release your fists to activate your body",
				"Affirm your strength and vitality",
				"End with lion's breath - exhale forcefully with tongue out",
			},
			Mantra: "I am alive. I am energized. I am powerful.",
		}
	case Release:
		return Guide{
			Title: "Emotional Release Meditation Guide",
			Instructions: []string{
				"Find a private space where you can express freely",
				"Allow yourself to feel whatever emotions are present",
				"Take deep breaths into the center of the emotion",
				"Don't suppress or judge - just feel and observe",
				"Visualize the emotion as a color or energy",
				"With each exhale, imagine releasing this energy",
				"You might cry, shake, or feel waves of sensation - this is healing",
				"Place your hands on any area holding tension",
				"Speak or write what needs to be expressed",
				"Conclude by filling the space with light and peace",
			},
			Mantra: "I release what no longer serves me. I am free.",
		}
	default:
		return Guide{}
	}
}

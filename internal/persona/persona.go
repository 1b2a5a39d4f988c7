// Package persona holds the closed set of conversation personas and the
// system instructions each one selects.
package persona

import "strings"

type Persona string

const (
	General   Persona = "general"
	Senior    Persona = "senior"
	Child     Persona = "child"
	Anxious   Persona = "anxious"
	Caregiver Persona = "caregiver"
)

// Info describes a persona for persona pickers.
type Info struct {
	ID          Persona `json:"id"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
}

const baseInstructions = `You are InteliMed, an AI healthcare assistant. You provide helpful, accurate health information but always remind users to consult healthcare professionals for medical decisions. You cannot diagnose or prescribe medications.`

const seniorInstructions = `You are speaking with a senior citizen. Use:
- Simple, clear language
- Larger conceptual explanations
- Patient, respectful tone
- References to traditional healthcare practices when appropriate
- Emphasis on medication management and regular check-ups
- Acknowledgment of their life experience and wisdom`

const childInstructions = `You are speaking with a child or their parent about pediatric health. Use:
- Simple, age-appropriate language
- Encouraging and positive tone
- Fun analogies and comparisons
- Focus on prevention and healthy habits
- Reassuring language to reduce anxiety
- Involve parents/guardians in health decisions`

const anxiousInstructions = `You are speaking with someone who may have health anxiety. Use:
- Calm, reassuring tone
- Avoid alarming language
- Provide clear, factual information
- Acknowledge their concerns as valid
- Suggest breathing exercises or relaxation techniques when appropriate
- Emphasize when symptoms are common and manageable`

const caregiverInstructions = `You are speaking with a caregiver (family member, nurse, etc.). Use:
- Professional yet compassionate tone
- Detailed information about care management
- Resources for caregiver support
- Information about patient advocacy
- Stress management for caregivers
- Coordination with healthcare teams`

const generalInstructions = `Provide general healthcare guidance with a professional yet friendly tone.`

// Parse maps free-form input onto the closed set. Unknown and empty values
// become General.
func Parse(raw string) Persona {
	switch p := Persona(strings.ToLower(strings.TrimSpace(raw))); p {
	case Senior, Child, Anxious, Caregiver, General:
		return p
	}
	return General
}

// Known reports whether raw names one of the personas, ignoring case.
func Known(raw string) bool {
	switch Persona(strings.ToLower(strings.TrimSpace(raw))) {
	case Senior, Child, Anxious, Caregiver, General:
		return true
	}
	return false
}

func (p Persona) String() string {
	return string(p)
}

// Instructions returns the full system instruction for p.
func (p Persona) Instructions() string {
	return baseInstructions + "\n\n" + p.style()
}

func (p Persona) style() string {
	switch p {
	case Senior:
		return seniorInstructions
	case Child:
		return childInstructions
	case Anxious:
		return anxiousInstructions
	case Caregiver:
		return caregiverInstructions
	default:
		return generalInstructions
	}
}

// InstructionsFor is total over strings: anything unrecognised gets the
// general instruction.
func InstructionsFor(raw string) string {
	return Parse(raw).Instructions()
}

func All() []Info {
	return []Info{
		{ID: General, Label: "General", Description: "Balanced, professional yet friendly guidance."},
		{ID: Senior, Label: "Senior", Description: "Plain language with a focus on medications and check-ups."},
		{ID: Child, Label: "Child & Parent", Description: "Age-appropriate, encouraging explanations."},
		{ID: Anxious, Label: "Health Anxiety", Description: "Calm, reassuring answers that avoid alarming language."},
		{ID: Caregiver, Label: "Caregiver", Description: "Detailed care management with a clinical framing."},
	}
}

package wizard

import (
	"errors"
	"fmt"
	"strings"

	"rep-score-portal/internal/models"
)

// Step is one stop in the linear submission flow.
type Step int

const (
	// StepSeenBefore offers to autofill the draft from a previously
	// submitted version of the same asset. Rendered only when the user
	// has history to autofill from.
	StepSeenBefore Step = iota
	StepIdentity
	StepMarketing
	StepAgency
	StepReview
	StepUpload
	// StepSummary is terminal. Entering it means the submission side
	// effect already happened; there is no marker for it.
	StepSummary
)

func (s Step) String() string {
	switch s {
	case StepSeenBefore:
		return "seen_before"
	case StepIdentity:
		return "identity"
	case StepMarketing:
		return "marketing"
	case StepAgency:
		return "agency"
	case StepReview:
		return "review"
	case StepUpload:
		return "upload"
	case StepSummary:
		return "summary"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Completion markers in canonical order. markerOrder[i] is appended when
// Step(i) is confirmed; StepSummary never gets one.
var markerOrder = []string{
	"page_zero_complete",
	"page_one_complete",
	"page_two_complete",
	"page_three_complete",
	"page_four_complete",
	"page_five_complete",
}

// Marker returns the completion marker appended when s is confirmed, or
// "" for the terminal step.
func (s Step) Marker() string {
	if s < StepSeenBefore || s >= StepSummary {
		return ""
	}
	return markerOrder[s]
}

var ErrTerminalStep = errors.New("submission flow already complete")

// ValidationError reports the required fields missing from a draft when a
// forward transition was attempted. It never mutates wizard state.
type ValidationError struct {
	Step    Step
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %s: missing required fields: %s", e.Step, strings.Join(e.Missing, ", "))
}

// completionChecks lists, per step, the required fields that must be
// non-empty before the step's forward transition is allowed. Steps absent
// from the list have no required fields.
var completionChecks = map[Step]func(*models.AssetDraft) []string{
	StepIdentity: func(d *models.AssetDraft) []string {
		var missing []string
		if strings.TrimSpace(d.Name) == "" {
			missing = append(missing, "name")
		}
		if strings.TrimSpace(d.Brand) == "" {
			missing = append(missing, "brand")
		}
		if strings.TrimSpace(d.Product) == "" {
			missing = append(missing, "product")
		}
		if len(d.CountriesAiring) == 0 {
			missing = append(missing, "countries_airing")
		}
		if strings.TrimSpace(d.PointOfContact) == "" {
			missing = append(missing, "point_of_contact")
		}
		if strings.TrimSpace(d.CreativeBriefFilename) == "" {
			missing = append(missing, "creative_brief")
		}
		return missing
	},
	StepUpload: func(d *models.AssetDraft) []string {
		var missing []string
		if !d.ContentType.Valid() {
			missing = append(missing, "content_type")
		}
		if d.Version < 1 {
			missing = append(missing, "version")
		}
		if strings.TrimSpace(d.AssetFilename) == "" {
			missing = append(missing, "asset")
		}
		return missing
	},
}

// Machine decides which wizard step to render from the completion markers
// accumulated in session state, and applies forward and backward
// transitions. The marker list is the durable representation; the current
// step is always derivable from it.
type Machine struct {
	step          Step
	markers       []string
	offerAutofill bool
}

// New starts a fresh flow. The seen-before branch is only rendered when
// there is submission history to autofill from.
func New(offerAutofill bool) *Machine {
	return FromMarkers(nil, offerAutofill)
}

// FromMarkers reconstructs the machine from a stored marker list. The
// current step is one past the last canonical marker present; marker sets
// that are not a clean prefix resolve the same way, matching how the page
// renderer walks the list from the back.
func FromMarkers(markers []string, offerAutofill bool) *Machine {
	m := &Machine{offerAutofill: offerAutofill}

	present := make(map[string]bool, len(markers))
	for _, marker := range markers {
		present[marker] = true
	}

	last := -1
	for i, marker := range markerOrder {
		if present[marker] {
			last = i
		}
	}

	switch {
	case last >= 0:
		m.step = Step(last) + 1
		m.markers = append([]string(nil), markerOrder[:last+1]...)
	case offerAutofill:
		m.step = StepSeenBefore
	default:
		m.step = StepIdentity
	}

	return m
}

// Step returns the step to render.
func (m *Machine) Step() Step {
	return m.step
}

// Markers returns a copy of the completion marker list.
func (m *Machine) Markers() []string {
	return append([]string(nil), m.markers...)
}

// Advance confirms the current step. Required-field validation failures
// are returned without mutating state; on success the step's completion
// marker is appended and the next step becomes current.
func (m *Machine) Advance(draft *models.AssetDraft) error {
	if m.step == StepSummary {
		return ErrTerminalStep
	}

	if check, ok := completionChecks[m.step]; ok {
		if missing := check(draft); len(missing) > 0 {
			return &ValidationError{Step: m.step, Missing: missing}
		}
	}

	m.markers = append(m.markers, m.step.Marker())
	m.step++
	return nil
}

// Back removes the single most recent completion marker and makes the
// previous step current. Field values already entered are untouched. At
// the entry step, or once the flow is terminal, Back is a no-op.
func (m *Machine) Back() {
	if m.step == StepSummary || len(m.markers) == 0 {
		return
	}
	m.markers = m.markers[:len(m.markers)-1]
	m.step--
}

// Reset clears every marker, returning to the entry step.
func (m *Machine) Reset() {
	m.markers = nil
	if m.offerAutofill {
		m.step = StepSeenBefore
	} else {
		m.step = StepIdentity
	}
}

// Progress reports how far along the in-flight draft is on the same scale
// the tracker uses, where a freshly submitted asset sits at 1/3.
func (m *Machine) Progress() float64 {
	completed := 0
	for _, marker := range m.markers {
		if marker != markerOrder[StepSeenBefore] {
			completed++
		}
	}
	if completed >= len(markerOrder)-1 {
		return 1.0 / 3.0
	}
	return float64(completed) / 6.0 / 3.0
}

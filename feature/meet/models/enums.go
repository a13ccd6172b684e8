package models

// Stroke is the discipline of an event.
type Stroke int

const (
	StrokeUnmapped Stroke = iota
	StrokeFreestyle
	StrokeBackstroke
	StrokeBreaststroke
	StrokeButterfly
	StrokeIndividualMedley
)

var strokeCodes = map[string]Stroke{
	"A": StrokeFreestyle,
	"B": StrokeBackstroke,
	"C": StrokeBreaststroke,
	"D": StrokeButterfly,
	"E": StrokeIndividualMedley,
}

var strokeNames = map[Stroke]string{
	StrokeFreestyle:        "Freestyle",
	StrokeBackstroke:       "Backstroke",
	StrokeBreaststroke:     "Breaststroke",
	StrokeButterfly:        "Butterfly",
	StrokeIndividualMedley: "Individual Medley",
}

// ParseStroke maps a legacy stroke code.
func ParseStroke(code string) Stroke {
	return strokeCodes[code]
}

// Discipline returns the discipline name, empty when unmapped.
func (s Stroke) Discipline() string {
	return strokeNames[s]
}

// Course is the pool length a meet is swum in.
type Course int

const (
	CourseUnmapped Course = iota
	CourseLong
	CourseShort
)

// ParseCourse maps a legacy course code: 1 is long course, 2 short course.
func ParseCourse(code int) Course {
	switch code {
	case 1:
		return CourseLong
	case 2:
		return CourseShort
	default:
		return CourseUnmapped
	}
}

// Token returns "LC" or "SC", empty when unmapped.
func (c Course) Token() string {
	switch c {
	case CourseLong:
		return "LC"
	case CourseShort:
		return "SC"
	default:
		return ""
	}
}

// EventKind separates individual from relay events.
type EventKind int

const (
	KindUnmapped EventKind = iota
	KindIndividual
	KindRelay
)

// ParseEventKind maps the legacy individual/relay flag.
func ParseEventKind(code string) EventKind {
	switch code {
	case "I":
		return KindIndividual
	case "R":
		return KindRelay
	default:
		return KindUnmapped
	}
}

// Gender is the gender an event is open to.
type Gender int

const (
	GenderUnmapped Gender = iota
	GenderMen
	GenderWomen
	GenderMixed
)

// ParseGender maps a legacy event gender code.
func ParseGender(code string) Gender {
	switch code {
	case "M":
		return GenderMen
	case "F":
		return GenderWomen
	case "X":
		return GenderMixed
	default:
		return GenderUnmapped
	}
}

// MeetClassMasters is the legacy meet class of masters meets.
const MeetClassMasters = 6

package models

import "fmt"

// Category classifies prompts, tools and training modules.
type Category string

const (
	CategoryWriting      Category = "Writing"
	CategoryCoding       Category = "Coding"
	CategoryMarketing    Category = "Marketing"
	CategoryBusiness     Category = "Business"
	CategoryEducation    Category = "Education"
	CategoryProductivity Category = "Productivity"
	CategoryCreative     Category = "Creative"
	CategoryResearch     Category = "Research"
	CategoryOther        Category = "Other"
)

var categories = []Category{
	CategoryWriting, CategoryCoding, CategoryMarketing, CategoryBusiness, CategoryEducation,
	CategoryProductivity, CategoryCreative, CategoryResearch, CategoryOther,
}

// Categories lists the known categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory validates a raw category value.
func ParseCategory(raw string) (Category, error) {
	c := Category(raw)
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown category %q", ErrValidation, raw)
	}
	return c, nil
}

// Framework is a prompt-structuring framework key such as "R-T-F".
type Framework string

const (
	FrameworkRTF  Framework = "R-T-F"
	FrameworkTAG  Framework = "T-A-G"
	FrameworkBAB  Framework = "B-A-B"
	FrameworkCARE Framework = "C-A-R-E"
	FrameworkRISE Framework = "R-I-S-E"
)

// FrameworkSpec describes how a framework restructures a prompt.
type FrameworkSpec struct {
	Key         Framework
	Name        string
	Instruction string
}

var frameworkSpecs = map[Framework]FrameworkSpec{
	FrameworkRTF: {
		Key:         FrameworkRTF,
		Name:        "Role, Task, Format",
		Instruction: "Rewrite the prompt so it first assigns the AI a Role, then states the Task, then specifies the output Format.",
	},
	FrameworkTAG: {
		Key:         FrameworkTAG,
		Name:        "Task, Action, Goal",
		Instruction: "Rewrite the prompt so it defines the Task, the Action the AI should take and the Goal the result must achieve.",
	},
	FrameworkBAB: {
		Key:         FrameworkBAB,
		Name:        "Before, After, Bridge",
		Instruction: "Rewrite the prompt so it describes the current situation (Before), the desired outcome (After) and asks the AI for the Bridge between them.",
	},
	FrameworkCARE: {
		Key:         FrameworkCARE,
		Name:        "Context, Action, Result, Example",
		Instruction: "Rewrite the prompt so it gives Context, requests an Action, states the expected Result and includes an Example.",
	},
	FrameworkRISE: {
		Key:         FrameworkRISE,
		Name:        "Role, Input, Steps, Expectation",
		Instruction: "Rewrite the prompt so it assigns a Role, lists the Input, lays out the Steps and states the Expectation for the answer.",
	},
}

// Frameworks lists the known framework keys in ordinal order.
func Frameworks() []Framework {
	return []Framework{FrameworkBAB, FrameworkCARE, FrameworkRISE, FrameworkRTF, FrameworkTAG}
}

func (f Framework) Valid() bool {
	_, ok := frameworkSpecs[f]
	return ok
}

// ParseFramework validates a raw framework key.
func ParseFramework(raw string) (FrameworkSpec, error) {
	spec, ok := frameworkSpecs[Framework(raw)]
	if !ok {
		return FrameworkSpec{}, fmt.Errorf("%w: unknown framework %q", ErrValidation, raw)
	}
	return spec, nil
}

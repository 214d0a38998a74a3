package project

import "fmt"

// StepKind identifies the compiler behind a compile step.
type StepKind string

// Known compile step kinds.
const (
	KindJava   StepKind = "java"
	KindKotlin StepKind = "kotlin"
)

// ParseStepKind validates a step kind string.
func ParseStepKind(s string) (StepKind, error) {
	switch k := StepKind(s); k {
	case KindJava, KindKotlin:
		return k, nil
	default:
		return "", fmt.Errorf("unknown compile step kind %q (want java or kotlin)", s)
	}
}

// CompileStep is a single compile task of a project.
type CompileStep struct {
	Name string
	Kind StepKind
	// SourceVersion is only meaningful for Java steps.
	SourceVersion string
	TargetVersion string
}

// Pin sets the step's target to version. Java steps also get their
// source compatibility aligned. It returns the previous target.
func (s *CompileStep) Pin(version string) string {
	previous := s.TargetVersion
	s.TargetVersion = version
	if s.Kind == KindJava {
		s.SourceVersion = version
	}
	return previous
}

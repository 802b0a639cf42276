package record

//go:generate go tool stringer -type=DefaultMode -linecomment -output=mode_string.go

// DefaultMode tells how a field obtains a value when no argument is given.
type DefaultMode int

const (
	ModeNone    DefaultMode = iota // none
	ModeLiteral                    // literal
	ModeFactory                    // factory
)

package devtalk

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	User    int // User message accent
	AI      int // AI reply accent
	System  int // System notices (resolve toggles)
	Error   int // Failure notices and FAILED replies
	Success int // Resolved status
	Muted   int // Status bar, placeholders, timestamps
	CodeBg  int // Code block background
	Accent  int // Headings, links, session titles
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		User:    4,
		AI:      6,
		System:  3,
		Error:   1,
		Success: 2,
		Muted:   8,
		CodeBg:  0,
		Accent:  5,
	}
}

package devtalk

// Role represents the author of a message.
type Role string

const (
	RoleUser   Role = "USER"
	RoleAI     Role = "AI"
	RoleSystem Role = "SYSTEM"
)

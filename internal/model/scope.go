package model

// Scope carries the per-request user context through the use cases.
type Scope struct {
	UserID   string
	Username string
	// Timezone is the user's IANA zone, when the client supplied one.
	Timezone string
}

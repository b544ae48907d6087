package entities

import "time"

// Member is a council seat. Energy only ever decreases (vote cost) and
// damage only ever increases (dissent scarring); members are never deleted.
type Member struct {
	MemberID string
	Name     string
	Energy   uint64
	Damage   uint64
	JoinedAt time.Time
}

// MemberStanding is the read-model row rendered by roster consumers.
type MemberStanding struct {
	MemberID string
	Name     string
	Energy   uint64
	Damage   uint64
}

package snapshots

import "time"

// FeedSnapshot is a point-in-time record of the feed. Snapshots are history
// only and are never read back into an aggregation.
type FeedSnapshot struct {
	ID          string          `firestore:"id" json:"id"`
	TakenAt     time.Time       `firestore:"takenAt" json:"takenAt"`
	TakenBy     string          `firestore:"takenBy,omitempty" json:"takenBy,omitempty"`
	Date        string          `firestore:"date" json:"date"`
	Live        int             `firestore:"live" json:"live"`
	Upcoming    int             `firestore:"upcoming" json:"upcoming"`
	Completed   int             `firestore:"completed" json:"completed"`
	MedalEvents []SnapshotEvent `firestore:"medalEvents" json:"medalEvents"`
}

type SnapshotEvent struct {
	ID          string               `firestore:"id" json:"id"`
	Discipline  string               `firestore:"discipline" json:"discipline"`
	Event       string               `firestore:"event" json:"event"`
	Venue       string               `firestore:"venue" json:"venue"`
	EndDate     time.Time            `firestore:"endDate" json:"endDate"`
	Competitors []SnapshotCompetitor `firestore:"competitors" json:"competitors"`
}

type SnapshotCompetitor struct {
	Country string `firestore:"country" json:"country"`
	Name    string `firestore:"name" json:"name"`
	Outcome string `firestore:"outcome" json:"outcome"`
	Mark    string `firestore:"mark,omitempty" json:"mark,omitempty"`
}

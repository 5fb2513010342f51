package core

import "time"

// Scheduler arms one retention timer per appended message, keyed by
// (room id, message id). Timers are independent and never canceled;
// a fire against a vanished room or message is absorbed as a no-op
// by the expire path.
type Scheduler struct {
	retention time.Duration
	fire      func(roomID string, messageID int64)
}

// NewScheduler builds a scheduler that invokes fire after retention.
func NewScheduler(retention time.Duration, fire func(roomID string, messageID int64)) *Scheduler {
	return &Scheduler{retention: retention, fire: fire}
}

// Schedule arms a one-shot timer for the given message.
func (s *Scheduler) Schedule(roomID string, messageID int64) {
	time.AfterFunc(s.retention, func() {
		s.fire(roomID, messageID)
	})
}

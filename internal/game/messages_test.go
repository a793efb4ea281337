package game

import "testing"

func TestMessageFallsBackToID(t *testing.T) {
	ids := []string{
		msgEnter,
		msgTurnLeft,
		msgTurnRight,
		msgBlocked,
		msgWalked,
		msgTreasure,
		msgAmbushed,
		msgExit,
		"100% lost",
	}
	for _, id := range ids {
		if got := message(id); got != id {
			t.Errorf("message(%q) = %q, want the id unchanged", id, got)
		}
	}
}

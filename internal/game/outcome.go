package game

// Outcome is the result of a single player action.
type Outcome int

const (
	// OutcomeTurned - the player rotated in place
	OutcomeTurned Outcome = iota
	// OutcomeBlocked - a wall or the map edge stopped the move
	OutcomeBlocked
	// OutcomeMoved - the player stepped onto a corridor tile
	OutcomeMoved
	// OutcomeTreasure - the player stepped into a treasure room
	OutcomeTreasure
	// OutcomeEncounter - the player was ambushed and a battle should start
	OutcomeEncounter
	// OutcomeExit - the player found the door and a new level was generated
	OutcomeExit
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeTurned:
		return "turned"
	case OutcomeBlocked:
		return "blocked"
	case OutcomeMoved:
		return "moved"
	case OutcomeTreasure:
		return "treasure"
	case OutcomeEncounter:
		return "encounter"
	case OutcomeExit:
		return "exit"
	default:
		return "unknown"
	}
}

// StartsBattle returns true if the outcome should hand control to the battle screen.
func (o Outcome) StartsBattle() bool {
	return o == OutcomeEncounter
}

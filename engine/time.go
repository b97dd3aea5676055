package engine

import "time"

// TimeHandler manages how long a single search is allowed to run, grounded on
// engine/time_management.go's fraction-of-remaining/panic-threshold scheme.
type TimeHandler struct {
	remainingTime    int
	madeMoveCount    int
	increment        int
	timeForMove      time.Time
	stopSearch       bool
	isInitialized    bool
	usingCustomDepth bool
}

var timeHandler TimeHandler

func (th *TimeHandler) initTimemanagement(remainingTime, increment, madeMoveCount int, useCustomDepth bool) {
	th.remainingTime = remainingTime
	th.increment = increment
	th.madeMoveCount = madeMoveCount
	th.stopSearch = false
	th.isInitialized = true
	th.usingCustomDepth = useCustomDepth
}

// StartTime computes the deadline for the move about to be searched from the
// remaining clock, increment, and estimated game phase (moveNumber stands in
// for the board access the teacher used only to read Fullmoveno).
func (th *TimeHandler) StartTime(moveNumber int, piecePhase int) {
	th.madeMoveCount = moveNumber
	th.stopSearch = false

	movesLeft := estimateMovesRemaining(piecePhase) // 20..45

	const overheadMs = 30
	const minMoveMs = 5
	const maxFrac = 0.7
	const panicThreshMs = 1000
	const panicFrac = 0.90

	rem := th.remainingTime
	inc := th.increment

	var moveTime int
	if inc > 0 {
		if rem < panicThreshMs {
			moveTime = int(float64(inc) * panicFrac)
		} else {
			moveTime = rem/movesLeft + inc
		}
	} else {
		moveTime = rem / 40
	}

	if moveTime < minMoveMs {
		moveTime = minMoveMs
	}
	if moveTime > int(float64(rem)*maxFrac) {
		moveTime = int(float64(rem) * maxFrac)
	}
	if moveTime > rem-overheadMs {
		moveTime = rem - overheadMs
	}
	if moveTime < minMoveMs {
		moveTime = minMoveMs
	}

	th.timeForMove = time.Now().Add(time.Duration(moveTime) * time.Millisecond)
}

// Update moves the deadline to extraTimeMs milliseconds from now; the search
// itself does not call it.
func (th *TimeHandler) Update(extraTimeMs int64) {
	th.timeForMove = time.Now().Add(time.Duration(extraTimeMs) * time.Millisecond)
}

// TimeStatus reports whether the search must stop now.
func (th *TimeHandler) TimeStatus() bool {
	return th.timeForMove.Before(time.Now()) && !th.usingCustomDepth
}

func estimateMovesRemaining(phase int) int {
	return (phase*25)/24 + 20
}

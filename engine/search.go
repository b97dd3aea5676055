package engine

import (
	"fmt"
	"time"

	bd "ravenfish/board"
)

// Score constants.
const (
	MaxScore  int32 = 32500
	Checkmate int32 = 20000
	DrawScore int32 = 0
)

// Pruning/reduction margins, carried verbatim from the teacher's tuned tables.
var (
	FutilityMargins        = [8]int32{0, 120, 220, 320, 420, 520, 620, 720}
	RFPMargins              = [8]int32{0, 100, 200, 300, 400, 500, 600, 700}
	RazoringMargins         = [4]int32{0, 125, 225, 325}
	LateMovePruningMargins  = [9]int{0, 3, 5, 9, 14, 20, 27, 35, 44}
)

const (
	lmrDepthLimit      int8 = 2
	lmrMoveLimit            = 2
	nullMoveMinDepth   int8 = 2
	deltaMargin        int32 = 200
	aspirationWindowSize int32 = 35
)

var prevSearchScore int32

// globalTT is the search's transposition table, sized by SetHashSizeMB (UCI
// "setoption name Hash") before a game starts.
var globalTT = NewTransTable(defaultTTSizeMB)

// SetHashSizeMB resizes the transposition table, discarding its contents.
func SetHashSizeMB(mb int) { globalTT.Resize(mb) }

var globalStop bool
var searchShouldStop bool

// Stop signals any in-progress search to return its current best move as
// soon as it next polls, the engine side of UCI's "stop" command.
func Stop() { globalStop = true }

// cutStats counts how search nodes resolved, surfaced for diagnostics only.
type cutStatsT struct {
	TTCutoffs, StaticNullCutoffs, NullMoveCutoffs  int64
	LateMovePrunes, FutilityPrunes, BetaCutoffs    int64
	QStandPatCutoffs, QBetaCutoffs                int64
}

var cutStats cutStatsT

// StatusReporter receives one call per completed iterative-deepening
// iteration, generalizing the teacher's direct fmt.Println("info depth", ...)
// into a typed callback so callers (cmd/uci, tests) don't have to scrape
// stdout to observe search progress.
type StatusReporter func(depth int, score int32, nodes int, timeMs int64, nps uint64, pv string)

// reporter is invoked by rootsearch after each completed iteration. The
// default writes a UCI "info" line to stdout, matching the teacher's
// behavior when no reporter has been installed.
var reporter StatusReporter = func(depth int, score int32, nodes int, timeMs int64, nps uint64, pv string) {
	fmt.Println("info depth", depth, "score", getMateOrCPScore(score), "nodes", nodes,
		"time", timeMs, "nps", nps, "pv", pv)
}

// SetStatusReporter installs the callback used to report search progress.
func SetStatusReporter(r StatusReporter) {
	if r == nil {
		return
	}
	reporter = r
}

// StartSearch runs iterative deepening from p out to depth plies (or until
// the time budget for gameTime/increment milliseconds runs out, unless
// useCustomDepth pins the search to exactly depth) and returns the best
// move found in UCI notation.
func StartSearch(p *bd.Position, depth uint8, gameTime, increment int, useCustomDepth bool) string {
	ensureStateStackSynced(p)
	globalTT.NewSearch()

	globalStop = false
	timeHandler.initTimemanagement(gameTime, increment, p.FullmoveNumber(), useCustomDepth)
	timeHandler.StartTime(p.FullmoveNumber(), piecePhase(p))

	_, bestMove := rootsearch(p, depth, useCustomDepth)
	if bestMove == bd.NoMove {
		if moves := p.GenerateMoves(); len(moves) > 0 {
			bestMove = moves[0]
		}
	}
	return bestMove.String()
}

func rootsearch(p *bd.Position, depth uint8, useCustomDepth bool) (int32, bd.Move) {
	var timeSpent int64
	alpha, beta := -MaxScore, MaxScore
	var bestScore int32 = -MaxScore
	rootIndex := len(stateStack) - 1

	if prevSearchScore != 0 {
		alpha = prevSearchScore - aspirationWindowSize
		beta = prevSearchScore + aspirationWindowSize
	}

	var noMove bd.Move
	var pvLine, prevPVLine PVLine
	currentWindow := aspirationWindowSize

	for i := uint8(1); i <= depth; i++ {
		if !useCustomDepth && i > 1 && timeHandler.TimeStatus() {
			break
		}

		pvLine.Clear()
		mateFound := false

		start := time.Now()
		score := alphabeta(p, alpha, beta, int8(i), 0, &pvLine, noMove, false, rootIndex)
		timeSpent += time.Since(start).Milliseconds()

		if searchShouldStop || timeHandler.TimeStatus() || globalStop {
			if len(prevPVLine.Moves) == 0 && len(pvLine.Moves) > 0 {
				bestScore = score
				prevSearchScore = bestScore
				prevPVLine = pvLine.Clone()
			}
			break
		}

		if score <= alpha || score >= beta {
			if alpha <= -MaxScore && beta >= MaxScore {
				currentWindow *= 2
			} else if currentWindow < MaxScore {
				currentWindow *= 2
			}
			alpha, beta = score-currentWindow, score+currentWindow
			if alpha < -MaxScore {
				alpha = -MaxScore
			}
			if beta > MaxScore {
				beta = MaxScore
			}
			i--
			continue
		}

		if (score > Checkmate || score < -Checkmate) && len(pvLine.Moves) > 0 {
			mateFound = true
		}

		alpha, beta = score-aspirationWindowSize, score+aspirationWindowSize
		bestScore = score
		currentWindow = aspirationWindowSize
		prevSearchScore = bestScore
		prevPVLine = pvLine.Clone()

		if timeSpent == 0 {
			timeSpent = 1
		}
		nps := uint64(float64(nodesChecked*1000) / float64(timeSpent))
		reporter(int(i), score, nodesChecked, timeSpent, nps, pvLine.String())

		if mateFound {
			break
		}
	}

	nodesChecked = 0
	searchShouldStop = false

	return bestScore, prevPVLine.GetPVMove()
}

func alphabeta(p *bd.Position, alpha, beta int32, depth, ply int8, pvLine *PVLine, prevMove bd.Move, didNull bool, rootIndex int) int32 {
	nodesChecked++
	if nodesChecked&1023 == 0 && timeHandler.TimeStatus() {
		searchShouldStop = true
	}
	if ply >= MaxDepth {
		return sideRelativeEval(p)
	}
	if globalStop || searchShouldStop {
		return 0
	}

	var bestMove bd.Move
	var childPVLine PVLine
	isPVNode := (beta - alpha) > 1
	isRoot := ply == 0

	if !isRoot {
		if isDraw(int(ply), rootIndex) {
			return DrawScore
		}
		if alpha < DrawScore && upcomingRepetition(int(ply), rootIndex) {
			alpha = DrawScore
		}
	}

	inCheck := p.InCheck(p.SideToMove())
	if inCheck {
		depth++
	}
	if !inCheck && !p.HasLegalMoves() {
		return DrawScore
	}

	if depth <= 0 {
		return quiescence(p, alpha, beta, &childPVLine, 0, ply, rootIndex)
	}

	posHash := p.Hash()

	ttEntry, ttHit := globalTT.ProbeEntry(posHash)
	usable, ttScore := globalTT.UseEntry(ttEntry, ttHit, depth, alpha, beta, ply)
	if usable && !isRoot && !isPVNode {
		cutStats.TTCutoffs++
		return ttScore
	}

	var ttMove bd.Move
	if ttHit {
		ttMove = ttEntry.Move
	}

	// Internal iterative deepening: PV nodes with no TT move get a shallow,
	// reduced-depth search first so move ordering has something to try
	// before the real full-depth move loop runs.
	const iidDepthThreshold int8 = 4
	const iidReduction int8 = 2
	if isPVNode && !isRoot && ttMove == bd.NoMove && depth >= iidDepthThreshold {
		var iidPVLine PVLine
		alphabeta(p, alpha, beta, depth-iidReduction, ply, &iidPVLine, prevMove, didNull, rootIndex)
		ttMove = iidPVLine.GetPVMove()
	}

	var staticScore int32
	if ttHit {
		staticScore = int32(ttEntry.Score)
	} else {
		staticScore = sideRelativeEval(p)
	}

	improving := ply >= 2 && !inCheck && staticScore > alpha

	wCount, bCount := hasMinorOrMajorPiece(p)
	sideHasPieces := (p.SideToMove() == bd.White && wCount > 0) || (p.SideToMove() == bd.Black && bCount > 0)

	if !inCheck && !isPVNode && depth >= 1 && depth <= 7 && abs32(beta) < Checkmate && !isRoot {
		margin := RFPMargins[depth]
		if !improving {
			margin -= 50
		}
		if staticScore-margin >= beta {
			cutStats.StaticNullCutoffs++
			globalTT.StoreEntry(posHash, depth, ply, ttMove, staticScore-margin, BetaFlag)
			return staticScore - margin
		}
	}

	if !inCheck && !isPVNode && !didNull && sideHasPieces && depth >= nullMoveMinDepth && !isRoot {
		nullUndo := p.MakeNullMove()
		pushState(p)

		R := int8(3) + depth/3
		if depth > 6 {
			R++
		}
		if R > depth-1 {
			R = depth - 1
		}
		score := -alphabeta(p, -beta, -beta+1, depth-1-R, ply+1, &childPVLine, bestMove, true, rootIndex)

		popState()
		p.UnmakeNullMove(nullUndo)

		if score >= beta && score < Checkmate {
			cutStats.NullMoveCutoffs++
			globalTT.StoreEntry(posHash, depth, ply, ttMove, score, BetaFlag)
			if depth > 10 {
				verify := alphabeta(p, beta-1, beta, depth-1-R, ply, &childPVLine, prevMove, true, rootIndex)
				if verify >= beta {
					return verify
				}
			} else {
				return score
			}
		}
	}

	allMoves := p.GenerateMoves()
	if len(allMoves) == 0 {
		if inCheck {
			return -MaxScore + int32(ply)
		}
		return DrawScore
	}

	bestScore := int32(-MaxScore)
	moveList := scoreMovesList(p, allMoves, ply, ttMove, prevMove)
	ttFlag := int8(AlphaFlag)
	legalMoves := 0
	side := p.SideToMove()
	quietMovesTried := make([]bd.Move, 0, 16)

	for index := 0; index < len(moveList.moves); index++ {
		orderNextMove(index, &moveList)
		move := moveList.moves[index].move
		isCapture := p.PieceAt(move.To()) != bd.NoPiece || move.IsEnPassant()
		isPromotion := move.IsPromotion()
		legalMoves++

		if depth <= 8 && !isPVNode && !isRoot && legalMoves > 1 && !isCapture && !isPromotion {
			margin := LateMovePruningMargins[Min(int(depth), len(LateMovePruningMargins)-1)]
			if !improving {
				margin = margin * 2 / 3
			}
			if margin > 0 && legalMoves > margin {
				cutStats.LateMovePrunes++
				continue
			}
		}

		if depth >= 1 && depth <= 7 && !isPVNode && !isRoot && !isCapture && !isPromotion && abs32(alpha) < Checkmate {
			margin := FutilityMargins[depth]
			if !improving {
				margin -= 50
			}
			if staticScore+margin <= alpha {
				cutStats.FutilityPrunes++
				continue
			}
		}

		if !isCapture {
			quietMovesTried = append(quietMovesTried, move)
		}

		ok, undo := p.MakeMove(move)
		if !ok {
			continue
		}
		pushState(p)

		moveGivesCheck := p.InCheck(p.SideToMove())
		tactical := isCapture || isPromotion || moveGivesCheck

		var score int32
		if legalMoves == 1 {
			score = -alphabeta(p, -beta, -alpha, depth-1, ply+1, &childPVLine, move, false, rootIndex)
		} else {
			historyScore := historyMove[int(side)][move.From()][move.To()]
			var reduct int8
			if depth >= lmrDepthLimit && legalMoves >= lmrMoveLimit && !moveGivesCheck && !tactical {
				reduct = computeLMRReduction(depth, legalMoves, index, isPVNode, tactical, historyScore)
			}
			score = searchMoveWithPVS(p, depth-1, reduct, alpha, beta, ply, rootIndex, move, &childPVLine)
		}

		popState()
		p.UnmakeMove(undo)

		if score > bestScore {
			bestScore = score
			bestMove = move
		}

		if score >= beta {
			cutStats.BetaCutoffs++
			ttFlag = BetaFlag
			if !isCapture {
				InsertKiller(move, ply, &killerTable)
				storeCounter(side, prevMove, move)
				incrementHistoryScore(side, move, depth)
				for _, failed := range quietMovesTried {
					if failed != move {
						decrementHistoryScore(side, failed)
					}
				}
			}
			break
		}

		if score > alpha {
			alpha = score
			ttFlag = ExactFlag
			pvLine.Update(move, childPVLine)
			if !isCapture {
				incrementHistoryScore(side, move, depth)
			}
		}
	}

	childPVLine.Clear()

	if !globalStop && !searchShouldStop {
		globalTT.StoreEntry(posHash, depth, ply, bestMove, bestScore, ttFlag)
	}

	return bestScore
}

func quiescence(p *bd.Position, alpha, beta int32, pvLine *PVLine, qply, ply int8, rootIndex int) int32 {
	nodesChecked++
	if nodesChecked&1023 == 0 && timeHandler.TimeStatus() {
		searchShouldStop = true
	}
	if globalStop || searchShouldStop {
		return 0
	}

	inCheck := p.InCheck(p.SideToMove())
	var childPVLine PVLine
	standpat := sideRelativeEval(p)

	if !inCheck {
		if standpat >= beta {
			cutStats.QStandPatCutoffs++
			return standpat
		}
		if standpat > alpha {
			alpha = standpat
		}
	}

	bestScore := standpat
	if inCheck {
		bestScore = -MaxScore
	}

	var list moveList
	switch {
	case inCheck:
		list = scoreMovesList(p, p.GenerateMoves(), 0, bd.NoMove, bd.NoMove)
	case qply == 0:
		// The first quiescence ply also searches checks, a capability the
		// teacher's quiescence() does not have; catches simple mating nets
		// that a captures-only search would otherwise miss.
		moves := p.GenerateCaptures()
		for _, m := range p.GenerateChecks() {
			if p.PieceAt(m.To()) == bd.NoPiece && !m.IsEnPassant() {
				moves = append(moves, m)
			}
		}
		list = scoreMovesList(p, moves, 0, bd.NoMove, bd.NoMove)
	default:
		list, _ = scoreMovesListCaptures(p, p.GenerateCaptures(), bd.NoMove)
	}

	for index := 0; index < len(list.moves); index++ {
		orderNextMove(index, &list)
		move := list.moves[index].move

		isCapture := p.PieceAt(move.To()) != bd.NoPiece || move.IsEnPassant()

		if !inCheck && isCapture {
			if p.SEE(move) < 0 {
				continue
			}

			moveGain := int32(0)
			if captured := p.PieceAt(move.To()); captured != bd.NoPiece {
				moveGain = int32(pieceValueMG[captured.Type()])
			}
			if move.IsPromotion() {
				moveGain += int32(pieceValueMG[move.PromotionType()] - pieceValueMG[bd.PieceTypePawn])
			}
			if standpat+moveGain+deltaMargin < alpha {
				continue
			}
		}

		ok, undo := p.MakeMove(move)
		if !ok {
			continue
		}
		score := -quiescence(p, -beta, -alpha, &childPVLine, qply+1, ply+1, rootIndex)
		p.UnmakeMove(undo)

		if score > bestScore {
			bestScore = score
		}
		if score >= beta {
			cutStats.QBetaCutoffs++
			return score
		}
		if score > alpha {
			alpha = score
			pvLine.Update(move, childPVLine)
		}
		childPVLine.Clear()
	}

	return bestScore
}

// sideRelativeEval returns a score from the perspective of the side to move,
// as alphabeta/quiescence expect (Evaluate itself is already side-relative).
func sideRelativeEval(p *bd.Position) int32 { return Evaluate(p) }

func calculateSearchDepth(baseDepth, reduction int8) int8 {
	return baseDepth - reduction
}

// searchMoveWithPVS runs the standard 3-stage principal-variation search: a
// reduced null-window probe, a full-depth null-window re-search if that
// beat alpha, then a full-window search if the result lands inside
// (alpha, beta).
func searchMoveWithPVS(p *bd.Position, baseDepth, reduction int8, alpha, beta int32, ply int8, rootIndex int, move bd.Move, childPVLine *PVLine) int32 {
	nextDepth := calculateSearchDepth(baseDepth, reduction)
	score := -alphabeta(p, -(alpha + 1), -alpha, nextDepth, ply+1, childPVLine, move, false, rootIndex)

	if score > alpha && reduction > 0 {
		nextDepth = calculateSearchDepth(baseDepth, 0)
		score = -alphabeta(p, -(alpha + 1), -alpha, nextDepth, ply+1, childPVLine, move, false, rootIndex)
	}

	if score > alpha && score < beta {
		nextDepth = calculateSearchDepth(baseDepth, 0)
		score = -alphabeta(p, -beta, -alpha, nextDepth, ply+1, childPVLine, move, false, rootIndex)
	}

	return score
}

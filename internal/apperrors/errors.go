package apperrors

// 错误码
const (
	ErrCodeNotYourTurn = iota + 1
	ErrCodeWrongPhase
	ErrCodeCardNotInHand
	ErrCodeCardNotPlayable
	ErrCodeNotPickingSuit
	ErrCodeInvalidSuit
	ErrCodeGameInProgress
)

// GameError 游戏错误。引擎拒绝非法操作时返回，状态不会被修改。
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrNotYourTurn     = &GameError{Code: ErrCodeNotYourTurn, Message: "还没轮到这一方行动"}
	ErrWrongPhase      = &GameError{Code: ErrCodeWrongPhase, Message: "当前阶段不能执行该操作"}
	ErrCardNotInHand   = &GameError{Code: ErrCodeCardNotInHand, Message: "手牌中没有这张牌"}
	ErrCardNotPlayable = &GameError{Code: ErrCodeCardNotPlayable, Message: "这张牌现在不能出"}
	ErrNotPickingSuit  = &GameError{Code: ErrCodeNotPickingSuit, Message: "现在不需要选择花色"}
	ErrInvalidSuit     = &GameError{Code: ErrCodeInvalidSuit, Message: "无效的花色"}
	ErrGameInProgress  = &GameError{Code: ErrCodeGameInProgress, Message: "牌堆还有牌，不能重新开始"}
)

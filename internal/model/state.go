package model

// EmotionalState 用户自述状态，闭集
type EmotionalState string

const (
	StateAngry    EmotionalState = "angry"
	StateConfused EmotionalState = "confused"
	StateStrange  EmotionalState = "strange"
	StateAnxious  EmotionalState = "anxious"
	StateSad      EmotionalState = "sad"
	StateTired    EmotionalState = "tired"
	StateCalm     EmotionalState = "calm"
	StateGood     EmotionalState = "good"
)

var validStates = map[EmotionalState]bool{
	StateAngry:    true,
	StateConfused: true,
	StateStrange:  true,
	StateAnxious:  true,
	StateSad:      true,
	StateTired:    true,
	StateCalm:     true,
	StateGood:     true,
}

func (s EmotionalState) Valid() bool {
	return validStates[s]
}

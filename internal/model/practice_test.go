package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestPracticeStepList(t *testing.T) {
	p := &Practice{Steps: datatypes.JSON(`["шаг один","шаг два"]`)}
	assert.Equal(t, []string{"шаг один", "шаг два"}, p.StepList())

	p = &Practice{}
	assert.Nil(t, p.StepList())

	p = &Practice{Steps: datatypes.JSON(`{"oops":1}`)}
	assert.Nil(t, p.StepList())
}

func TestEmotionalStateValid(t *testing.T) {
	for _, s := range []EmotionalState{
		StateAngry, StateConfused, StateStrange, StateAnxious,
		StateSad, StateTired, StateCalm, StateGood,
	} {
		assert.True(t, s.Valid(), string(s))
	}

	assert.False(t, EmotionalState("furious").Valid())
	assert.False(t, EmotionalState("").Valid())
}

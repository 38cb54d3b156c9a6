package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConstraints(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		want      []Constraint
	}{
		{
			name:      "spice increase",
			utterance: "Can you make it spicy?",
			want:      []Constraint{{Type: "spice_level", Action: ActionIncrease, Degree: DegreeMedium}},
		},
		{
			name:      "korean spice decrease",
			utterance: "덜 매운 걸로 해주세요",
			want: []Constraint{
				{Type: "spice_level", Action: ActionDecrease, Degree: DegreeLight},
				{Type: "spice_level", Action: ActionIncrease, Degree: DegreeMedium},
			},
		},
		{
			name:      "allergy with value",
			utterance: "I have a peanut allergy",
			want: []Constraint{
				{Type: "allergy", Action: ActionRemove, Value: "nuts"},
				{Type: "allergy", Action: ActionRemove, Value: "peanut"},
			},
		},
		{
			name:      "multiple independent constraints",
			utterance: "vegan and with less oil please",
			want: []Constraint{
				{Type: "oil", Action: ActionDecrease, Degree: DegreeMedium},
				{Type: "vegan", Action: ActionEnforce, Degree: DegreeStrong},
			},
		},
		{
			name:      "no constraints",
			utterance: "how long should I boil this?",
			want:      nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseConstraints(tt.utterance))
		})
	}
}

func TestParseConstraintsDeterministicOrder(t *testing.T) {
	first := ParseConstraints("make it less spicy but extra spicy somehow")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ParseConstraints("make it less spicy but extra spicy somehow"))
	}
	require.NotEmpty(t, first)
}

func TestIsNextCommand(t *testing.T) {
	for _, u := range []string{
		"next", "Next", "NEXT.", " next ", "next,",
		"다음", "다음.", "다음 단계", "다음단계로", "다음으로", "넥스트",
	} {
		assert.True(t, IsNextCommand(u), "expected %q to be a next command", u)
	}

	for _, u := range []string{
		"what is the next step about",
		"다음에 뭐 넣어요?",
		"",
		"nexttime",
	} {
		assert.False(t, IsNextCommand(u), "expected %q not to be a next command", u)
	}
}

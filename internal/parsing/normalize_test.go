package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkill_Variants(t *testing.T) {
	cases := map[string]string{
		"React.js":     "reactjs",
		"react js":     "reactjs",
		"REACT-JS":     "reactjs",
		"node_js":      "nodejs",
		"  Python  ":   "python",
		"scikit-learn": "scikitlearn",
		"":             "",
	}
	for input, expected := range cases {
		assert.Equal(t, expected, NormalizeSkill(input), "input %q", input)
	}
}

func TestNormalizeSkill_Idempotent(t *testing.T) {
	inputs := []string{"React.js", "Node.js", "machine learning", "C++", "", "a-b_c d.e"}
	for _, input := range inputs {
		once := NormalizeSkill(input)
		assert.Equal(t, once, NormalizeSkill(once), "input %q", input)
	}
}
